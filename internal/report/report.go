// Package report renders a discovery as a human-readable diagnostic report.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/osdeverr/find-msvc/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(16)

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")) // Sky Blue/Cyan
)

// Generate renders the report. With verbose set, each include directory also
// shows how many entries it contains.
func Generate(d *model.Discovery, verbose bool) string {
	var b strings.Builder
	r := d.Result

	b.WriteString(titleStyle.Render("find-msvc " + model.Version))
	b.WriteString("\n\n")

	section(&b, "Visual Studio")
	field(&b, "Name", orDash(d.Installation.DisplayName))
	field(&b, "Version", orDash(d.Installation.InstallationVersion))
	field(&b, "Instance", orDash(d.Installation.InstanceID))
	if d.Installation.IsPrerelease {
		field(&b, "Channel", "Preview")
	}
	field(&b, "Path", pathStyle.Render(r.VSInstallDir))
	b.WriteString("\n")

	section(&b, "MSVC toolset")
	release := Release(r.VCToolsVersion)
	if release != "" {
		field(&b, "Version", fmt.Sprintf("%s (%s)", r.VCToolsVersion, release))
	} else {
		field(&b, "Version", r.VCToolsVersion)
	}
	field(&b, "Path", pathStyle.Render(r.VCToolsDir))
	b.WriteString("\n")

	section(&b, "Windows SDK")
	field(&b, "Registry", fmt.Sprintf("%s (ProductVersion)", d.SDK.ProductVersion))
	if build := SDKBuild(r.WinSDKVersion); build != "" {
		field(&b, "Version", fmt.Sprintf("%s (build %s)", r.WinSDKVersion, build))
	} else {
		field(&b, "Version", r.WinSDKVersion)
	}
	field(&b, "Path", pathStyle.Render(r.WinSDKDirectory))
	field(&b, "Bin", pathStyle.Render(r.WinSDKBin))
	b.WriteString("\n")

	section(&b, fmt.Sprintf("Include directories (%d of %d found)", len(r.VCIncludeDirs), len(d.Candidates)))
	kept := make(map[string]bool, len(r.VCIncludeDirs))
	for _, dir := range r.VCIncludeDirs {
		kept[dir] = true
	}
	for _, c := range d.Candidates {
		dir := filepath.ToSlash(c)
		if !kept[dir] {
			b.WriteString(missingStyle.Render(fmt.Sprintf("  %s %s (missing)", model.IconMissing, dir)))
			b.WriteString("\n")
			continue
		}
		line := fmt.Sprintf("  %s %s", model.IconOK, dir)
		if verbose {
			if entries, err := model.ListDir(c); err == nil {
				line += fmt.Sprintf("  [%d entries]", len(entries))
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section(&b, "Environment")
	names := make([]string, 0, len(r.Environment))
	for name := range r.Environment {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s %s=%s\n", model.IconEnv, name, r.Environment[name])
	}

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
}

func field(b *strings.Builder, label, value string) {
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
