//go:build !windows && !linux

package vswhere

import (
	"errors"
	"os"
	"os/exec"
)

func configureChild(*exec.Cmd) {}

func bindToParent(*os.Process) (func(), error) {
	return nil, errors.New("binding a child to its parent is not supported on this platform")
}
