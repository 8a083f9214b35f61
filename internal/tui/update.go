package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles terminal events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.buf.Resize(msg.Width, msg.Height)
		// A resize redraws everything; the retained tree is stale anyway
		// after the buffer reallocation.
		m.renderer.Invalidate()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycleFocus(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycleFocus(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.toggleFocused()
			return m, nil
		}
	}

	return m, nil
}
