package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osdeverr/find-msvc/internal/model"
)

func TestRelease(t *testing.T) {
	tests := map[string]string{
		"14.0.24215":  "Visual Studio 2015",
		"14.16.27023": "Visual Studio 2017",
		"14.29.30133": "Visual Studio 2019",
		"14.38.33130": "Visual Studio 2022",
		"14.44.35207": "Visual Studio 2022",
		"14.50.35717": "Visual Studio 2026",
		"12.0":        "",
		"garbage":     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Release(in), "Release(%q)", in)
	}
}

func TestToolsetReleases_ParsedOnce(t *testing.T) {
	require.Len(t, toolsetReleases, 5)
	for _, r := range toolsetReleases {
		assert.NotEmpty(t, r.constraints, r.name)
	}
}

func TestSDKBuild(t *testing.T) {
	assert.Equal(t, "22621", SDKBuild("10.0.22621.0"))
	assert.Equal(t, "19041", SDKBuild("10.0.19041.0"))
	assert.Equal(t, "", SDKBuild(".0"))
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	include := filepath.Join(root, "VC", "Tools", "MSVC", "14.38.33130", "include")
	require.NoError(t, os.MkdirAll(include, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(include, "vector"), nil, 0o644))
	atl := filepath.Join(root, "VC", "Tools", "MSVC", "14.38.33130", "ATLMFC", "include")

	d := &model.Discovery{
		Installation: model.Installation{
			DisplayName:         "Visual Studio Community 2022",
			InstallationVersion: "17.8.34330.188",
			InstallationPath:    root,
		},
		SDK: model.SDK{InstallationFolder: "C:/SDK/", ProductVersion: "10.0.22621"},
		Result: model.Result{
			VSInstallDir:    filepath.ToSlash(root),
			VCToolsVersion:  "14.38.33130",
			VCToolsDir:      filepath.ToSlash(filepath.Dir(include)),
			WinSDKDirectory: "C:/SDK/",
			WinSDKVersion:   "10.0.22621.0",
			WinSDKBin:       "C:/SDK/bin/10.0.22621.0",
			VCIncludeDirs:   []string{filepath.ToSlash(include)},
			Environment: model.Environment{
				model.EnvInclude:        filepath.ToSlash(include),
				model.EnvVCToolsVersion: "14.38.33130",
			},
		},
		Candidates: []string{include, atl},
	}

	out := Generate(d, true)

	assert.Contains(t, out, "Visual Studio Community 2022")
	assert.Contains(t, out, "14.38.33130 (Visual Studio 2022)")
	assert.Contains(t, out, "10.0.22621.0 (build 22621)")
	assert.Contains(t, out, "Include directories (1 of 2 found)")
	assert.Contains(t, out, filepath.ToSlash(include)+"  [1 entries]")
	assert.Contains(t, out, filepath.ToSlash(atl)+" (missing)")

	// Environment is listed in name order.
	iInclude := strings.Index(out, "INCLUDE=")
	iTools := strings.Index(out, "VCToolsVersion=")
	require.NotEqual(t, -1, iInclude)
	require.NotEqual(t, -1, iTools)
	assert.Less(t, iInclude, iTools)
}
