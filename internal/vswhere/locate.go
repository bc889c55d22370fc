// Package vswhere locates and runs the Visual Studio Installer's vswhere tool.
package vswhere

import (
	"context"
	"os"
	"path/filepath"

	"github.com/osdeverr/find-msvc/internal/ctxlog"
	"github.com/osdeverr/find-msvc/internal/fault"
	"github.com/osdeverr/find-msvc/internal/model"
)

// ExeName is the file name of the locator executable.
const ExeName = "vswhere.exe"

// ProgramFilesEnv names the environment variable holding the 32-bit
// Program Files directory, where the Visual Studio Installer lives.
const ProgramFilesEnv = "ProgramFiles(x86)"

// Locator finds and runs vswhere.
type Locator struct {
	// ProgramPath is argv[0]; a vswhere.exe next to it takes precedence.
	ProgramPath string
	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Resolve returns the path of the vswhere executable: the copy bundled next
// to the program if present, otherwise the one installed with the Visual
// Studio Installer.
func (l Locator) Resolve(ctx context.Context) (string, error) {
	log := ctxlog.FromContext(ctx)

	bundled := filepath.Join(filepath.Dir(l.ProgramPath), ExeName)
	if model.Exists(bundled) {
		log.Debug("Using bundled vswhere.", "path", bundled)
		return bundled, nil
	}
	log.Debug("No bundled vswhere.", "path", bundled)

	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if programFiles, ok := lookup(ProgramFilesEnv); ok && programFiles != "" {
		global := filepath.Join(programFiles, "Microsoft Visual Studio", "Installer", ExeName)
		if model.Exists(global) {
			log.Debug("Using installer vswhere.", "path", global)
			return global, nil
		}
		log.Debug("No installer vswhere.", "path", global)
	} else {
		log.Debug("Environment variable not set.", "name", ProgramFilesEnv)
	}

	return "", fault.New(fault.CodeVSWhereNotFound,
		"Failed to find 'vswhere.exe'! You probably don't have Visual Studio.")
}

// Installations resolves vswhere, runs it and parses its report.
func (l Locator) Installations(ctx context.Context) ([]model.Installation, error) {
	exe, err := l.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	out, err := Run(ctx, exe)
	if err != nil {
		return nil, err
	}
	return Parse(out)
}
