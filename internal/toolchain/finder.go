// Package toolchain discovers the Visual Studio C++ toolset and Windows SDK
// and describes them as paths and build environment variables.
package toolchain

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/osdeverr/find-msvc/internal/ctxlog"
	"github.com/osdeverr/find-msvc/internal/fault"
	"github.com/osdeverr/find-msvc/internal/model"
	"github.com/osdeverr/find-msvc/internal/vswhere"
	"github.com/osdeverr/find-msvc/internal/winsdk"
)

// ToolsVersionFile holds the default toolset version of an installation,
// relative to the installation path.
const ToolsVersionFile = "VC/Auxiliary/Build/Microsoft.VCToolsVersion.default.txt"

// InstallationSource lists Visual Studio installations, most relevant first.
type InstallationSource interface {
	Installations(ctx context.Context) ([]model.Installation, error)
}

// MissingFieldError reports a vswhere record without a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("vswhere record has no %q field", e.Field)
}

// Finder runs the discovery pipeline.
type Finder struct {
	Source   InstallationSource
	SDK      winsdk.Reader
	Analyzer *Analyzer
}

// NewFinder returns a Finder using vswhere and the system registry.
// programPath is argv[0]; a vswhere.exe next to it is preferred.
func NewFinder(programPath string) *Finder {
	return &Finder{
		Source:   vswhere.Locator{ProgramPath: programPath},
		SDK:      winsdk.Registry{},
		Analyzer: NewAnalyzer(),
	}
}

// Find locates the latest installation and the Windows SDK. Anticipated
// failures are returned as *fault.Error; anything else is returned as is.
func (f *Finder) Find(ctx context.Context) (*model.Discovery, error) {
	log := ctxlog.FromContext(ctx)

	installs, err := f.Source.Installations(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("Installations reported.", "count", len(installs))

	inst, err := selectInstallation(installs)
	if err != nil {
		return nil, err
	}
	log.Debug("Selected installation.", "path", inst.InstallationPath, "name", inst.DisplayName)

	toolsVersion, err := model.FirstLine(filepath.Join(inst.InstallationPath, filepath.FromSlash(ToolsVersionFile)))
	if err != nil {
		return nil, fmt.Errorf("reading default toolset version: %w", err)
	}
	log.Debug("Default toolset version.", "version", toolsVersion)

	sdk, err := f.SDK.ReadSDK(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading Windows SDK: %w", err)
	}

	analyzer := f.Analyzer
	if analyzer == nil {
		analyzer = NewAnalyzer()
	}
	d, err := analyzer.Analyze(inst, toolsVersion, sdk)
	if err != nil {
		return nil, err
	}
	log.Debug("Include directories resolved.",
		"candidates", len(d.Candidates), "existing", len(d.Result.VCIncludeDirs))
	return d, nil
}

// selectInstallation trusts vswhere's ordering: with -latest the first record
// is the one to use.
func selectInstallation(installs []model.Installation) (model.Installation, error) {
	if len(installs) == 0 {
		return model.Installation{}, fault.New(fault.CodeVSNotFound,
			"No Visual Studio installations were found on this computer")
	}
	inst := installs[0]
	if inst.InstallationPath == "" {
		return model.Installation{}, &MissingFieldError{Field: "installationPath"}
	}
	return inst, nil
}
