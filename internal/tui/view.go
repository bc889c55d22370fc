package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osdeverr/find-msvc/internal/fault"
	"github.com/osdeverr/find-msvc/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	activeColor = lipgloss.Color("205")
	borderColor = lipgloss.Color("63")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Looking for Visual Studio... please wait.\n"
	}
	if m.Err != nil {
		fe := fault.Classify(m.Err)
		return fmt.Sprintf("\n  %s\n  %s\n\n  Press q to quit.\n",
			errorStyle.Render("Error: "+fe.Code), fe.Message)
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 4
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	r := m.Discovery.Result

	// LEFT PANEL: include directories
	var leftView strings.Builder
	leftView.WriteString(titleStyle.Render(fmt.Sprintf("Include directories (%d)", len(r.VCIncludeDirs))))
	leftView.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)
	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - visibleItems/2
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		idx := m.FilteredIndices[i]
		line := fmt.Sprintf("%2d. %s %s", idx+1, model.IconOK, r.VCIncludeDirs[idx])

		if limit := leftWidth - 2; limit > 5 {
			line = truncateLeft(line, limit)
		}

		style := normalStyle
		if i == m.SelectedIdx {
			style = selectedStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}
	if len(m.FilteredIndices) == 0 {
		leftView.WriteString(dimStyle.Render("  (no matches)"))
	}

	leftBorder := activeColor
	if m.ShowEnv {
		leftBorder = borderColor
	}
	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(leftBorder).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: directory listing or environment
	rightTitle := "Directory contents"
	rightBorder := borderColor
	if m.ShowEnv {
		rightTitle = "Environment"
		rightBorder = activeColor
	}
	vp := m.DetailsViewport
	vp.Width = rightWidth
	vp.Height = interiorHeight - 2
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(rightBorder).
		Render(titleStyle.Render(rightTitle) + "\n\n" + vp.View())

	header := fmt.Sprintf(" MSVC %s  |  SDK %s  |  %s", r.VCToolsVersion, r.WinSDKVersion, r.VSInstallDir)

	var footer string
	if m.InputMode {
		footer = " Search headers: " + m.InputBuffer.View()
	} else {
		footer = dimStyle.Render(" ↑/↓ select  / search headers  e environment  pgup/pgdn scroll  esc clear  q quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(header),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer,
	)
}

// truncateLeft shortens s to at most limit cells, keeping its tail, which is
// the part of a path worth seeing.
func truncateLeft(s string, limit int) string {
	if lipgloss.Width(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width("..."+string(runes)) > limit {
		runes = runes[1:]
	}
	return "..." + string(runes)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, InitDiscoveryCmd(m))
}
