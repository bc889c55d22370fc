package tui

import (
	"context"

	"github.com/osdeverr/find-msvc/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Finder runs the discovery.
type Finder interface {
	Find(ctx context.Context) (*model.Discovery, error)
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Discovery *model.Discovery
	Loading   bool
	Err       error

	ctx    context.Context
	finder Finder

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg
	ShowEnv     bool // Environment block instead of directory details

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices into Discovery.Result.VCIncludeDirs
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state. Discovery starts when the program
// runs.
func InitialModel(ctx context.Context, finder Finder) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Header name..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		Loading:     true,
		ctx:         ctx,
		finder:      finder,
		InputBuffer: ti,
		SelectedIdx: 0,

		// Sized on the first WindowSizeMsg.
		DetailsViewport: viewport.New(0, 0),
	}
}

// includeDirs returns the include directories, or nil before discovery ends.
func (m AppModel) includeDirs() []string {
	if m.Discovery == nil {
		return nil
	}
	return m.Discovery.Result.VCIncludeDirs
}

// selectedDir returns the highlighted include directory, if any.
func (m AppModel) selectedDir() (string, bool) {
	dirs := m.includeDirs()
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return "", false
	}
	return dirs[m.FilteredIndices[m.SelectedIdx]], true
}
