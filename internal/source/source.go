// Package source provides the content sources a view reads from: inline
// text, a file (optionally followed as it grows) and the merged output of a
// running script.
//
// Every source is polled from the frame loop and must never block. Sources
// that do I/O in the background (followed files, processes) hand their data
// to Poll through a bounded channel fed by a single goroutine; Poll only
// drains what is already queued.
package source

import (
	"github.com/Iron-Ham/tvview/internal/logging"
)

// State is the lifecycle state of a Source.
type State int

const (
	// Running means more data may still arrive.
	Running State = iota
	// Finished means every byte was delivered.
	Finished
	// Failed means the source could not be read or started. The explanation
	// is delivered as content.
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Source is a non-blocking supplier of raw content.
type Source interface {
	// Poll returns up to limit bytes that are available right now, which may be
	// none. more is false once the source will never produce data again.
	Poll(limit int) (chunk []byte, more bool)
	// State reports the lifecycle state.
	State() State
	// ExitStatus returns the exit code of a finished process. ok is false for
	// sources without a process and while the process is still running.
	ExitStatus() (code int, ok bool)
	// Close releases the source. It terminates a child process that is still
	// running. Close is idempotent.
	Close() error
}

// Options configures the sources that do background I/O.
type Options struct {
	// Shell runs scripts as `<Shell> -c <script>`. Empty executes the script
	// path directly.
	Shell string
	// UsePTY attaches the script to a pseudo-terminal instead of a pipe.
	UsePTY bool
	// Follow keeps a file source open and delivers appended data.
	Follow bool
	// ReadBufferSize is the size of each background read.
	ReadBufferSize int
	// QueueDepth is the capacity of the channel between the reader goroutine
	// and Poll.
	QueueDepth int
	// Logger receives lifecycle events. Nil discards them.
	Logger *logging.Logger
}

// DefaultOptions returns Options matching the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Shell:          "/bin/sh",
		ReadBufferSize: 4096,
		QueueDepth:     256,
	}
}

func (o Options) normalized() Options {
	if o.ReadBufferSize <= 0 {
		o.ReadBufferSize = 4096
	}
	if o.QueueDepth <= 0 {
		o.QueueDepth = 256
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger()
	}
	return o
}

// queue is the consumer side of a background reader. It is only touched by
// the goroutine that calls Poll.
type queue struct {
	ch      <-chan []byte
	pending []byte
	eof     bool
}

// drain takes up to limit bytes without blocking. A chunk larger than the
// remaining budget is split and its tail kept for the next call.
func (q *queue) drain(limit int) []byte {
	if limit <= 0 {
		return nil
	}

	var out []byte
	for len(out) < limit {
		if len(q.pending) == 0 {
			if q.eof || q.ch == nil {
				q.eof = true
				break
			}
			select {
			case b, ok := <-q.ch:
				if !ok {
					q.eof = true
					continue
				}
				q.pending = b
			default:
				return out
			}
		}

		n := min(limit-len(out), len(q.pending))
		out = append(out, q.pending[:n]...)
		q.pending = q.pending[n:]
	}
	return out
}

// drained reports whether the producer finished and everything was taken.
func (q *queue) drained() bool {
	return q.eof && len(q.pending) == 0
}
