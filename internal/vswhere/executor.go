package vswhere

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/osdeverr/find-msvc/internal/ctxlog"
	"github.com/osdeverr/find-msvc/internal/fault"
)

// Args asks for the latest installation as uncolored UTF-8 JSON.
var Args = []string{"-latest", "-nocolor", "-utf8", "-format", "json"}

// Run executes vswhere and returns its standard output once it has exited.
// There is no timeout: the call blocks for as long as vswhere runs. The child
// is tied to this process and is killed if we die first.
func Run(ctx context.Context, exe string) ([]byte, error) {
	log := ctxlog.FromContext(ctx)

	cmd := exec.Command(exe, Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	configureChild(cmd)

	log.Debug("Starting vswhere.", "path", exe, "args", Args)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", exe, err)
	}

	release, err := bindToParent(cmd.Process)
	if err != nil {
		// The child still runs to completion; it just may outlive us.
		log.Debug("Could not tie vswhere to this process.", "error", err)
	} else {
		defer release()
	}

	err = cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug("vswhere exited with an error.", "code", exitErr.ExitCode())
		return nil, fault.Newf(fault.CodeVSWhereFailed, "vswhere failed: %s", stderr.String())
	}
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", exe, err)
	}

	log.Debug("vswhere finished.", "stdout_bytes", stdout.Len())
	return stdout.Bytes(), nil
}
