package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osdeverr/find-msvc/internal/fault"
	"github.com/osdeverr/find-msvc/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgDiscoveryReady indicates that discovery has completed.
type MsgDiscoveryReady struct {
	Discovery *model.Discovery
}

// MsgError indicates discovery failed.
type MsgError struct {
	Err error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 6 // minus title/footer/borders
		m.refreshDetails()
		return m, nil

	case MsgDiscoveryReady:
		m.Loading = false
		m.Discovery = msg.Discovery
		m.resetFilter()
		m.refreshDetails()
		return m, nil

	case MsgError:
		m.Err = msg.Err
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.performSearch()
				m.refreshDetails()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				m.performSearch()
				m.refreshDetails()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.InputBuffer.SetValue("")
				m.performSearch()
				m.refreshDetails()
			}
			m.ShowEnv = false
			return m, nil
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.refreshDetails()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.refreshDetails()
			}
		case "pgdown", "pgup", "ctrl+d", "ctrl+u":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
		case "e":
			m.ShowEnv = !m.ShowEnv
			m.refreshDetails()
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

func (m *AppModel) resetFilter() {
	dirs := m.includeDirs()
	m.SearchActive = false
	m.FilteredIndices = make([]int, len(dirs))
	for i := range dirs {
		m.FilteredIndices[i] = i
	}
}

// performSearch keeps the include directories that contain a header whose
// name starts with the search term.
func (m *AppModel) performSearch() {
	term := strings.ToLower(m.InputBuffer.Value())
	if term == "" {
		m.resetFilter()
	} else {
		m.SearchActive = true
		var result []int
		for i, dir := range m.includeDirs() {
			entries, err := model.ListDir(filepath.FromSlash(dir))
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.IsDir && strings.HasPrefix(strings.ToLower(e.Name), term) {
					result = append(result, i)
					break
				}
			}
		}
		m.FilteredIndices = result
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}

// refreshDetails fills the right-hand viewport.
func (m *AppModel) refreshDetails() {
	if m.Discovery == nil {
		return
	}
	if m.ShowEnv {
		m.DetailsViewport.SetContent(environmentText(m.Discovery.Result.Environment))
		m.DetailsViewport.GotoTop()
		return
	}

	dir, ok := m.selectedDir()
	if !ok {
		m.DetailsViewport.SetContent("No include directory selected.")
		return
	}

	entries, err := model.ListDir(filepath.FromSlash(dir))
	if err != nil {
		m.DetailsViewport.SetContent(fmt.Sprintf("Could not read directory: %v", err))
		return
	}

	term := strings.ToLower(m.InputBuffer.Value())
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%d entries\n\n", dir, len(entries))
	for _, e := range entries {
		icon := model.IconFile
		if e.IsDir {
			icon = model.IconDir
		}
		line := fmt.Sprintf("%s %s", icon, e.Name)
		if m.SearchActive && strings.HasPrefix(strings.ToLower(e.Name), term) {
			line = matchStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.DetailsViewport.SetContent(b.String())
	m.DetailsViewport.GotoTop()
}

func environmentText(env model.Environment) string {
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		value := env[name]
		if name == model.EnvInclude {
			// One directory per line; the joined value is unreadable.
			value = "\n    " + strings.ReplaceAll(value, ";", "\n    ")
		}
		fmt.Fprintf(&b, "%s %s=%s\n", model.IconEnv, name, value)
	}
	return b.String()
}

// InitDiscoveryCmd runs discovery in the background.
func InitDiscoveryCmd(m AppModel) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = MsgError{Err: fault.Recovered(r)}
			}
		}()

		d, err := m.finder.Find(m.ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgDiscoveryReady{Discovery: d}
	}
}

// Failure returns the failure that ended the session, if any.
func (m AppModel) Failure() *fault.Error {
	return fault.Classify(m.Err)
}
