package source

import (
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"

	"github.com/Iron-Ham/tvview/internal/errors"
	"github.com/Iron-Ham/tvview/internal/logging"
)

// closeWaitTimeout bounds how long Close waits for a killed child to be reaped.
const closeWaitTimeout = 2 * time.Second

// Process runs a script and serves its stdout and stderr as one stream.
type Process struct {
	script string
	cmd    *exec.Cmd
	output io.ReadCloser
	q      queue
	logger *logging.Logger

	failed bool

	mu       sync.Mutex
	exitCode int

	stop      chan struct{} // closed by Close to release the reader
	waitDone  chan struct{} // closed once the child was reaped
	closeOnce sync.Once
}

// StartProcess launches script and returns a Process source. If the script
// cannot be started, the returned source is Failed and its content explains
// why.
func StartProcess(script string, opts Options) *Process {
	opts = opts.normalized()
	p := &Process{
		script:   script,
		logger:   opts.Logger.WithSource(string(errors.KindProcess)).With("script", script),
		stop:     make(chan struct{}),
		waitDone: make(chan struct{}),
	}

	var cmd *exec.Cmd
	if opts.Shell != "" {
		cmd = exec.Command(opts.Shell, "-c", script)
	} else {
		cmd = exec.Command(script)
	}

	var output io.ReadCloser
	err := resolveCommand(script, opts.Shell)
	if err == nil {
		output, err = p.start(cmd, opts.UsePTY)
	}
	if err != nil {
		srcErr := errors.NewSourceError(errors.KindProcess, script, errors.ErrSpawnFailed).WithCause(err)
		p.logger.Error("failed to start script", "error", srcErr)
		p.failed = true
		p.q = queue{pending: []byte(srcErr.Explain()), eof: true}
		close(p.waitDone)
		return p
	}

	p.cmd = cmd
	p.output = output
	p.logger.Info("script started", "pid", cmd.Process.Pid, "pty", opts.UsePTY)

	ch := make(chan []byte, opts.QueueDepth)
	p.q.ch = ch
	go p.readLoop(opts.ReadBufferSize, ch)
	go p.waitLoop()

	return p
}

// shellWords are builtins and keywords a shell runs without looking them up.
var shellWords = map[string]bool{
	".": true, ":": true, "!": true, "{": true, "alias": true, "break": true,
	"case": true, "cd": true, "command": true, "continue": true, "echo": true,
	"eval": true, "exec": true, "exit": true, "export": true, "false": true,
	"for": true, "if": true, "kill": true, "local": true, "printf": true,
	"pwd": true, "read": true, "readonly": true, "return": true, "set": true,
	"shift": true, "source": true, "test": true, "time": true, "trap": true,
	"true": true, "type": true, "ulimit": true, "umask": true, "unset": true,
	"until": true, "wait": true, "while": true,
}

// resolveCommand checks that the program a script starts with exists and
// is executable, so that a missing script fails instead of leaving the
// shell to exit with 127. Without a shell exec reports this itself. Words
// that need shell expansion are not checked.
func resolveCommand(script, shell string) error {
	if shell == "" {
		return nil
	}
	fields := strings.Fields(script)
	if len(fields) == 0 {
		return nil
	}
	word := strings.TrimRight(fields[0], ";&|")
	if word == "" || shellWords[word] || strings.ContainsAny(word, "=$`'\"\\(){}<>*?[]~#") {
		return nil
	}

	if !strings.Contains(word, "/") {
		_, err := exec.LookPath(word)
		return err
	}
	info, err := os.Stat(word)
	if err != nil {
		return err
	}
	if info.IsDir() || !isExecutable(info) {
		return &fs.PathError{Op: "exec", Path: word, Err: fs.ErrPermission}
	}
	return nil
}

// start launches cmd with stdout and stderr attached to a single reader.
func (p *Process) start(cmd *exec.Cmd, usePTY bool) (io.ReadCloser, error) {
	if usePTY {
		// pty.Start puts the child in a new session, which also makes it a
		// process group leader.
		return pty.Start(cmd)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	setProcessGroup(cmd)
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}
	// The child holds its own copy; the reader sees EOF once every writer
	// has exited.
	_ = w.Close()
	return r, nil
}

// readLoop is the single producer feeding Poll.
func (p *Process) readLoop(bufSize int, ch chan<- []byte) {
	defer close(ch)

	total := 0
	for {
		buf := make([]byte, bufSize)
		n, err := p.output.Read(buf)
		if n > 0 {
			select {
			case ch <- buf[:n]:
				total += n
			case <-p.stop:
				return
			}
		}
		if err != nil {
			select {
			case <-p.stop:
			default:
				if err != io.EOF && !isTerminalHangup(err) {
					srcErr := errors.NewSourceError(errors.KindProcess, p.script, errors.ErrReadFailed).
						WithCause(err).WithSeverity(errors.SeverityWarning)
					p.logger.Warn("output stream ended with error", "error", srcErr)
				}
			}
			p.logger.Debug("output stream closed", "bytes", total)
			return
		}
	}
}

// waitLoop reaps the child and records its exit status.
func (p *Process) waitLoop() {
	err := p.cmd.Wait()

	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
			p.logger.Warn("failed to wait for script", "error", err)
		}
	}

	p.mu.Lock()
	p.exitCode = code
	p.mu.Unlock()

	p.logger.Info("script exited", "exit_code", code)
	close(p.waitDone)
}

func (p *Process) exited() bool {
	select {
	case <-p.waitDone:
		return true
	default:
		return false
	}
}

// Poll implements Source. more stays true until the child exited and all
// of its output was drained.
func (p *Process) Poll(limit int) ([]byte, bool) {
	chunk := p.q.drain(limit)
	return chunk, !(p.q.drained() && p.exited())
}

// State implements Source.
func (p *Process) State() State {
	switch {
	case p.failed:
		return Failed
	case p.q.drained() && p.exited():
		return Finished
	default:
		return Running
	}
}

// ExitStatus implements Source.
func (p *Process) ExitStatus() (int, bool) {
	if p.failed || !p.exited() {
		return 0, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, true
}

// Close kills the child's process group if it is still running and closes
// the output stream.
func (p *Process) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.stop)
		if p.failed {
			return
		}

		if !p.exited() {
			p.logger.Info("terminating running script", "pid", p.cmd.Process.Pid)
			if kerr := killProcessGroup(p.cmd); kerr != nil {
				p.logger.Warn("failed to kill script", "error", kerr)
				err = kerr
			}
		}
		if cerr := p.output.Close(); cerr != nil && err == nil {
			err = cerr
		}

		select {
		case <-p.waitDone:
		case <-time.After(closeWaitTimeout):
			p.logger.Warn("script did not exit after kill")
		}
	})
	return err
}
