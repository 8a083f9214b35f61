// Package tui hosts the bubbletea adapter that drives a renderer from
// terminal events: build the view tree, reconcile, compute styles, draw the
// cell buffer, hand bubbletea the ANSI string.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hawk90/revue/internal/logger"
	"github.com/hawk90/revue/pkg/buffer"
	"github.com/hawk90/revue/pkg/css"
	"github.com/hawk90/revue/pkg/renderer"
	"github.com/hawk90/revue/pkg/view"
)

// State is what the application's build function sees each frame.
type State struct {
	// FocusedID is the element id holding keyboard focus, empty for none.
	FocusedID string
	// Checked holds checkbox state keyed by element id.
	Checked map[string]bool
}

// BuildFunc produces the frame's view tree from the current state.
type BuildFunc func(State) view.View

// KeyMap defines the adapter's key bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the bubbletea model owning one renderer and one cell buffer.
type Model struct {
	renderer  *renderer.Renderer
	buf       *buffer.Buffer
	build     BuildFunc
	keys      KeyMap
	log       *logger.Logger
	focusable []string
	focus     int
	checked   map[string]bool
	width     int
	height    int
	quitting  bool
}

// Options configures a Model.
type Options struct {
	// Sheet is the stylesheet driving the cascade; nil means unstyled.
	Sheet *css.StyleSheet
	// Build produces the view tree each frame. Required.
	Build BuildFunc
	// Focusable lists element ids in tab order.
	Focusable []string
	// Logger receives renderer diagnostics; nil discards them.
	Logger *logger.Logger
}

// NewModel constructs the adapter model.
func NewModel(opts Options) Model {
	r := renderer.New(opts.Sheet)
	r.SetLogger(opts.Logger)
	return Model{
		renderer:  r,
		buf:       buffer.New(0, 0),
		build:     opts.Build,
		keys:      DefaultKeyMap(),
		log:       opts.Logger,
		focusable: opts.Focusable,
		focus:     -1,
		checked:   make(map[string]bool),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// FocusedID returns the element id currently holding focus.
func (m Model) FocusedID() string {
	if m.focus < 0 || m.focus >= len(m.focusable) {
		return ""
	}
	return m.focusable[m.focus]
}

// Checked reports the toggle state of a checkbox element.
func (m Model) Checked(elementID string) bool {
	return m.checked[elementID]
}

func (m Model) state() State {
	return State{FocusedID: m.FocusedID(), Checked: m.checked}
}

func (m *Model) cycleFocus(delta int) {
	if len(m.focusable) == 0 {
		return
	}
	m.focus += delta
	switch {
	case m.focus < 0:
		m.focus = len(m.focusable) - 1
	case m.focus >= len(m.focusable):
		m.focus = 0
	}
}

// toggleFocused flips checkbox state when the focused element is a
// Checkbox. The widget type comes from the retained tree, not from the
// model's own bookkeeping.
func (m *Model) toggleFocused() {
	id := m.FocusedID()
	if id == "" {
		return
	}
	node, ok := m.renderer.GetByID(id)
	if !ok || node.Meta.Widget != "Checkbox" {
		return
	}
	m.checked[id] = !m.checked[id]
}
