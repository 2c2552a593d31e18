//go:build !unix

package source

import (
	"io/fs"
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

func killProcessGroup(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

func isTerminalHangup(error) bool { return false }

func isExecutable(fs.FileInfo) bool { return true }
