//go:build unix

package source

import (
	"io/fs"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/Iron-Ham/tvview/internal/errors"
)

// setProcessGroup starts the child in its own process group so that Close
// can take down anything the script spawned.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(cmd *exec.Cmd) error {
	err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return cmd.Process.Kill()
}

// isTerminalHangup reports the error a pty master returns once the child
// side is closed.
func isTerminalHangup(err error) bool {
	return errors.Is(err, unix.EIO)
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
