package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osdeverr/find-msvc/internal/fault"
	"github.com/osdeverr/find-msvc/internal/model"
)

type fakeSource struct {
	installs []model.Installation
	err      error
}

func (s fakeSource) Installations(context.Context) ([]model.Installation, error) {
	return s.installs, s.err
}

type fakeSDK struct {
	sdk model.SDK
	err error
	n   *int
}

func (s fakeSDK) ReadSDK(context.Context) (model.SDK, error) {
	if s.n != nil {
		*s.n++
	}
	return s.sdk, s.err
}

// machine is a fake Visual Studio + Windows SDK layout on disk.
type machine struct {
	vs  string
	sdk string
}

const (
	testToolsVersion = "14.38.33130"
	testSDKVersion   = "10.0.22621"
)

func newMachine(t *testing.T) machine {
	t.Helper()
	m := machine{vs: t.TempDir(), sdk: t.TempDir()}

	writeFile(t, filepath.Join(m.vs, filepath.FromSlash(ToolsVersionFile)), testToolsVersion+"\r\n")
	mkdir(t, m.vs, "VC", "Tools", "MSVC", testToolsVersion, "include")
	mkdir(t, m.sdk, "include", testSDKVersion+".0", "ucrt")
	mkdir(t, m.sdk, "include", testSDKVersion+".0", "um")
	writeFile(t, filepath.Join(m.sdk, "include", testSDKVersion+".0", "README.txt"), "not a directory")
	return m
}

func (m machine) finder() *Finder {
	return &Finder{
		Source: fakeSource{installs: []model.Installation{{InstallationPath: m.vs}}},
		SDK: fakeSDK{sdk: model.SDK{
			InstallationFolder: m.sdk,
			ProductVersion:     testSDKVersion,
		}},
		Analyzer: NewAnalyzer(),
	}
}

func mkdir(t *testing.T, elem ...string) string {
	t.Helper()
	dir := filepath.Join(elem...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func slash(elem ...string) string {
	return filepath.ToSlash(filepath.Join(elem...))
}

func TestFind_Scenario(t *testing.T) {
	m := newMachine(t)

	d, err := m.finder().Find(context.Background())
	require.NoError(t, err)

	r := d.Result
	assert.Equal(t, testToolsVersion, r.VCToolsVersion)
	assert.Equal(t, "10.0.22621.0", r.WinSDKVersion)
	assert.Equal(t, filepath.ToSlash(m.vs), r.VSInstallDir)
	assert.Equal(t, slash(m.vs, "VC", "Tools", "MSVC", testToolsVersion), r.VCToolsDir)
	assert.Equal(t, filepath.ToSlash(m.sdk), r.WinSDKDirectory)
	assert.Equal(t, slash(m.sdk, "bin", "10.0.22621.0"), r.WinSDKBin)

	// ATLMFC and the auxiliary include dir do not exist and are dropped.
	require.Len(t, r.VCIncludeDirs, 3)
	assert.Equal(t, slash(m.vs, "VC", "Tools", "MSVC", testToolsVersion, "include"), r.VCIncludeDirs[0])
	assert.ElementsMatch(t, []string{
		slash(m.sdk, "include", "10.0.22621.0", "ucrt"),
		slash(m.sdk, "include", "10.0.22621.0", "um"),
	}, r.VCIncludeDirs[1:])
}

func TestFind_EnvironmentMirrorsResult(t *testing.T) {
	m := newMachine(t)

	d, err := m.finder().Find(context.Background())
	require.NoError(t, err)
	r := d.Result

	want := model.Environment{
		"VCToolsInstallDir":    r.VCToolsDir,
		"VCToolsVersion":       r.VCToolsVersion,
		"WindowsSdkDir":        r.WinSDKDirectory,
		"WindowsSDKLibVersion": r.WinSDKVersion,
		"WindowsSDKVersion":    r.WinSDKVersion,
		"WindowsSdkBinPath":    slash(m.sdk, "bin"),
		"WindowsSdkVerBinPath": r.WinSDKBin,
		"INCLUDE":              strings.Join(r.VCIncludeDirs, ";"),
	}
	if diff := cmp.Diff(want, r.Environment); diff != "" {
		t.Errorf("environment mismatch (-want +got):\n%s", diff)
	}
	for k, v := range r.Environment {
		assert.NotEmpty(t, v, "environment variable %s", k)
	}
}

func TestFind_IncludeOrder(t *testing.T) {
	m := newMachine(t)
	mkdir(t, m.vs, "VC", "Tools", "MSVC", testToolsVersion, "ATLMFC", "include")
	mkdir(t, m.vs, "VC", "Auxiliary", "VS", "include")

	d, err := m.finder().Find(context.Background())
	require.NoError(t, err)

	dirs := d.Result.VCIncludeDirs
	require.Len(t, dirs, 5)
	assert.Equal(t, []string{
		slash(m.vs, "VC", "Tools", "MSVC", testToolsVersion, "include"),
		slash(m.vs, "VC", "Tools", "MSVC", testToolsVersion, "ATLMFC", "include"),
		slash(m.vs, "VC", "Auxiliary", "VS", "include"),
	}, dirs[:3])
	for _, dir := range dirs {
		assert.DirExists(t, filepath.FromSlash(dir))
	}
	assert.Len(t, d.Candidates, 5)
}

func TestFind_OnlyFirstLineOfVersionFile(t *testing.T) {
	m := newMachine(t)
	writeFile(t, filepath.Join(m.vs, filepath.FromSlash(ToolsVersionFile)), testToolsVersion+"\n14.29.30133\n")

	d, err := m.finder().Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testToolsVersion, d.Result.VCToolsVersion)
}

func TestFind_UsesFirstInstallation(t *testing.T) {
	m := newMachine(t)
	f := m.finder()
	f.Source = fakeSource{installs: []model.Installation{
		{InstallationPath: m.vs},
		{InstallationPath: filepath.Join(t.TempDir(), "older")},
	}}

	d, err := f.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, m.vs, d.Installation.InstallationPath)
}

func TestFind_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(t *testing.T, m machine, f *Finder)
		wantCode string
		wantExit int
	}{
		{
			name: "vswhere missing",
			mutate: func(t *testing.T, m machine, f *Finder) {
				f.Source = fakeSource{err: fault.New(fault.CodeVSWhereNotFound, "not found")}
			},
			wantCode: fault.CodeVSWhereNotFound,
			wantExit: fault.ExitAnticipated,
		},
		{
			name: "no installations",
			mutate: func(t *testing.T, m machine, f *Finder) {
				f.Source = fakeSource{installs: []model.Installation{}}
			},
			wantCode: fault.CodeVSNotFound,
			wantExit: fault.ExitAnticipated,
		},
		{
			name: "record without installation path",
			mutate: func(t *testing.T, m machine, f *Finder) {
				f.Source = fakeSource{installs: []model.Installation{{DisplayName: "Visual Studio"}}}
			},
			wantCode: "*toolchain.MissingFieldError",
			wantExit: fault.ExitUnexpected,
		},
		{
			name: "version file missing",
			mutate: func(t *testing.T, m machine, f *Finder) {
				require.NoError(t, os.Remove(filepath.Join(m.vs, filepath.FromSlash(ToolsVersionFile))))
			},
			wantCode: "*fs.PathError",
			wantExit: fault.ExitUnexpected,
		},
		{
			name: "version file empty",
			mutate: func(t *testing.T, m machine, f *Finder) {
				writeFile(t, filepath.Join(m.vs, filepath.FromSlash(ToolsVersionFile)), "")
			},
			wantCode: "*model.EmptyFileError",
			wantExit: fault.ExitUnexpected,
		},
		{
			name: "registry unavailable",
			mutate: func(t *testing.T, m machine, f *Finder) {
				f.SDK = fakeSDK{err: errors.New("The system cannot find the file specified.")}
			},
			wantCode: "*errors.errorString",
			wantExit: fault.ExitUnexpected,
		},
		{
			name: "sdk include root missing",
			mutate: func(t *testing.T, m machine, f *Finder) {
				require.NoError(t, os.RemoveAll(filepath.Join(m.sdk, "include")))
			},
			wantCode: "*fs.PathError",
			wantExit: fault.ExitUnexpected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t)
			f := m.finder()
			tt.mutate(t, m, f)

			d, err := f.Find(context.Background())
			require.Error(t, err)
			assert.Nil(t, d)

			fe := fault.Classify(err)
			assert.Equal(t, tt.wantCode, fe.Code)
			assert.Equal(t, tt.wantExit, fe.ExitCode())
		})
	}
}

func TestFind_StopsBeforeRegistryWhenNoInstallation(t *testing.T) {
	calls := 0
	f := &Finder{
		Source: fakeSource{installs: nil},
		SDK:    fakeSDK{n: &calls},
	}

	_, err := f.Find(context.Background())
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestAnalyze_EmptyIncludeListIsNotNil(t *testing.T) {
	a := &Analyzer{
		Exists:  func(string) bool { return false },
		ListDir: func(string) ([]model.DirEntry, error) { return nil, nil },
	}

	d, err := a.Analyze(model.Installation{InstallationPath: "vs"}, "14.38.33130", model.SDK{
		InstallationFolder: "sdk",
		ProductVersion:     "10.0.22621",
	})
	require.NoError(t, err)
	assert.NotNil(t, d.Result.VCIncludeDirs)
	assert.Empty(t, d.Result.VCIncludeDirs)
	assert.Equal(t, "", d.Result.Environment[model.EnvInclude])
}

func TestAnalyze_KeepsEnumerationOrder(t *testing.T) {
	listing := []model.DirEntry{
		{Name: "winrt", IsDir: true},
		{Name: "shared", IsDir: true},
		{Name: "cppwinrt", IsDir: true},
		{Name: "notes.txt"},
		{Name: "ucrt", IsDir: true},
	}
	a := &Analyzer{
		Exists:  func(p string) bool { return strings.Contains(filepath.ToSlash(p), "/include/10.0.1.0/") },
		ListDir: func(string) ([]model.DirEntry, error) { return listing, nil },
	}

	d, err := a.Analyze(model.Installation{InstallationPath: "vs"}, "14.0", model.SDK{
		InstallationFolder: "sdk",
		ProductVersion:     "10.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"sdk/include/10.0.1.0/winrt",
		"sdk/include/10.0.1.0/shared",
		"sdk/include/10.0.1.0/cppwinrt",
		"sdk/include/10.0.1.0/ucrt",
	}, d.Result.VCIncludeDirs)
}
