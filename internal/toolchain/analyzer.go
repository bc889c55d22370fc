package toolchain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/osdeverr/find-msvc/internal/model"
	"github.com/osdeverr/find-msvc/internal/winsdk"
)

// Analyzer turns the raw values found on the machine into a Discovery.
type Analyzer struct {
	// Exists reports whether a path exists. Defaults to model.Exists.
	Exists func(string) bool
	// ListDir lists a directory in enumeration order. Defaults to model.ListDir.
	ListDir func(string) ([]model.DirEntry, error)
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{Exists: model.Exists, ListDir: model.ListDir}
}

// Analyze builds the result for an installation, its default toolset version
// and the Windows SDK descriptor.
func (a *Analyzer) Analyze(inst model.Installation, toolsVersion string, sdk model.SDK) (*model.Discovery, error) {
	vsPath := inst.InstallationPath
	vcToolsDir := filepath.Join(vsPath, "VC", "Tools", "MSVC", toolsVersion)

	sdkDir := sdk.InstallationFolder
	sdkVersion := winsdk.Version(sdk.ProductVersion)
	sdkIncludeRoot := filepath.Join(sdkDir, "include", sdkVersion)
	sdkBinRoot := filepath.Join(sdkDir, "bin", sdkVersion)

	candidates := []string{
		filepath.Join(vcToolsDir, "include"),
		filepath.Join(vcToolsDir, "ATLMFC", "include"),
		filepath.Join(vsPath, "VC", "Auxiliary", "VS", "include"),
	}

	// Every directory under the versioned SDK include root (ucrt, um, shared,
	// winrt, cppwinrt...). The root itself must exist.
	entries, err := a.ListDir(sdkIncludeRoot)
	if err != nil {
		return nil, fmt.Errorf("listing Windows SDK includes: %w", err)
	}
	for _, e := range entries {
		if e.IsDir {
			candidates = append(candidates, filepath.Join(sdkIncludeRoot, e.Name))
		}
	}

	// Missing optional directories (ATL/MFC is a separate workload) are
	// dropped without complaint.
	includeDirs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if a.Exists(c) {
			includeDirs = append(includeDirs, filepath.ToSlash(c))
		}
	}

	result := model.Result{
		VSInstallDir:    filepath.ToSlash(vsPath),
		VCToolsVersion:  toolsVersion,
		VCToolsDir:      filepath.ToSlash(vcToolsDir),
		WinSDKDirectory: filepath.ToSlash(sdkDir),
		WinSDKVersion:   sdkVersion,
		WinSDKBin:       filepath.ToSlash(sdkBinRoot),
		VCIncludeDirs:   includeDirs,
	}
	result.Environment = model.Environment{
		model.EnvVCToolsInstallDir:    result.VCToolsDir,
		model.EnvVCToolsVersion:       result.VCToolsVersion,
		model.EnvWindowsSdkDir:        result.WinSDKDirectory,
		model.EnvWindowsSDKLibVersion: result.WinSDKVersion,
		model.EnvWindowsSDKVersion:    result.WinSDKVersion,
		model.EnvWindowsSdkBinPath:    filepath.ToSlash(filepath.Join(sdkDir, "bin")),
		model.EnvWindowsSdkVerBinPath: result.WinSDKBin,
		model.EnvInclude:              strings.Join(includeDirs, ";"),
	}

	return &model.Discovery{
		Installation: inst,
		SDK:          sdk,
		Result:       result,
		Candidates:   candidates,
	}, nil
}
