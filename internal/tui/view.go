package tui

// View builds the frame's view tree, reconciles it into the retained tree,
// applies focus, and renders the buffer to an ANSI string.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}

	root := m.build(m.state())
	if root == nil {
		return ""
	}
	m.renderer.Build(root)
	m.renderer.SetFocus(m.FocusedID())

	m.buf.Clear()
	m.renderer.Render(root, m.buf, m.buf.Bounds())
	return m.buf.String()
}
