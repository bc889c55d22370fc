//go:build linux

package vswhere

import (
	"os"
	"os/exec"
	"syscall"
)

func configureChild(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Pdeathsig: syscall.SIGKILL}
}

// bindToParent is a no-op: Pdeathsig already ties the child to us.
func bindToParent(*os.Process) (func(), error) {
	return func() {}, nil
}
