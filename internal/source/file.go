package source

import (
	"io"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/tvview/internal/errors"
	"github.com/Iron-Ham/tvview/internal/logging"
)

// File serves the contents of a file. With Options.Follow it keeps
// delivering data appended to the file until it is closed, removed or
// renamed.
type File struct {
	path   string
	q      queue
	failed bool
	logger *logging.Logger

	watcher   *fsnotify.Watcher
	stop      chan struct{}
	watchDone chan struct{}
	closeOnce sync.Once
}

// OpenFile reads path and returns a File source. A file that cannot be read
// yields a Failed source whose content explains the problem.
func OpenFile(path string, opts Options) *File {
	opts = opts.normalized()
	f := &File{
		path:   path,
		logger: opts.Logger.WithSource(string(errors.KindFile)).With("path", path),
	}

	// Watch before reading so that writes racing the initial read are seen;
	// the offset keeps them from being delivered twice.
	var watcher *fsnotify.Watcher
	if opts.Follow {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			f.logger.Warn("file watcher unavailable, not following", "error", err)
		} else if err := w.Add(path); err != nil {
			f.logger.Warn("failed to watch file, not following", "error", err)
			_ = w.Close()
		} else {
			watcher = w
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if watcher != nil {
			_ = watcher.Close()
		}
		srcErr := errors.NewSourceError(errors.KindFile, path, errors.ErrSourceUnreadable).WithCause(err)
		f.logger.Error("failed to read file", "error", srcErr)
		f.failed = true
		f.q = queue{pending: []byte(srcErr.Explain()), eof: true}
		return f
	}

	f.logger.Info("file loaded", "bytes", len(data), "follow", watcher != nil)
	f.q.pending = data

	if watcher == nil {
		f.q.eof = true
		return f
	}

	ch := make(chan []byte, opts.QueueDepth)
	f.q.ch = ch
	f.watcher = watcher
	f.stop = make(chan struct{})
	f.watchDone = make(chan struct{})
	go f.watch(int64(len(data)), opts.ReadBufferSize, ch)

	return f
}

// watch delivers appended data until the source is closed or the file goes
// away.
func (f *File) watch(offset int64, bufSize int, ch chan<- []byte) {
	defer close(f.watchDone)
	defer close(ch)

	for {
		select {
		case <-f.stop:
			return
		case ev, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			switch {
			case ev.Has(fsnotify.Write):
				var stopped bool
				offset, stopped = f.readFrom(offset, bufSize, ch)
				if stopped {
					return
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				f.logger.Info("followed file went away", "op", ev.Op.String())
				return
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Warn("file watcher error", "error", err)
		}
	}
}

// readFrom sends everything after offset and returns the new offset.
// stopped is true when the source was closed mid-read.
func (f *File) readFrom(offset int64, bufSize int, ch chan<- []byte) (int64, bool) {
	file, err := os.Open(f.path)
	if err != nil {
		f.logger.Warn("failed to reopen followed file", "error", err)
		return offset, false
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		f.logger.Warn("failed to stat followed file", "error", err)
		return offset, false
	}
	if info.Size() < offset {
		f.logger.Warn("followed file truncated, reading from the start",
			"old_size", offset, "new_size", info.Size())
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		f.logger.Warn("failed to seek followed file", "error", err)
		return offset, false
	}

	for {
		buf := make([]byte, bufSize)
		n, err := file.Read(buf)
		if n > 0 {
			select {
			case ch <- buf[:n]:
				offset += int64(n)
			case <-f.stop:
				return offset, true
			}
		}
		if err != nil {
			if err != io.EOF {
				f.logger.Warn("error reading followed file", "error", err)
			}
			return offset, false
		}
	}
}

// Poll implements Source.
func (f *File) Poll(limit int) ([]byte, bool) {
	chunk := f.q.drain(limit)
	return chunk, !f.q.drained()
}

// State implements Source.
func (f *File) State() State {
	switch {
	case f.failed:
		return Failed
	case f.q.drained():
		return Finished
	default:
		return Running
	}
}

// ExitStatus implements Source.
func (f *File) ExitStatus() (int, bool) { return 0, false }

// Close stops following the file.
func (f *File) Close() error {
	var err error
	f.closeOnce.Do(func() {
		if f.watcher == nil {
			return
		}
		close(f.stop)
		err = f.watcher.Close()
		<-f.watchDone
		f.logger.Debug("stopped following file")
	})
	return err
}
