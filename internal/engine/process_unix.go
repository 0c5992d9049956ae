//go:build unix

package engine

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the editor in its own process group and makes
// cancellation kill the whole group, so helpers the editor spawned do not
// outlive a timeout.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		pgid, err := syscall.Getpgid(cmd.Process.Pid)
		if err != nil {
			return cmd.Process.Kill()
		}
		return syscall.Kill(-pgid, syscall.SIGKILL)
	}
}
