package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Label is called on every render so an
// item can show live state such as the current mode.
type MenuItem struct {
	Label func() string
	// Key is an optional shortcut that fires the item from anywhere in
	// the menu.
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Text returns a constant label.
func Text(s string) func() string {
	return func() string { return s }
}

// Menu is a vertical menu with wrap-around navigation. Rendering is left
// to the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.step(-1, 1)
	return m
}

// step returns the next enabled index after from in direction dir,
// wrapping at both ends. It returns from when nothing else is enabled.
func (m Menu) step(from, dir int) int {
	n := len(m.Items)
	if n == 0 {
		return 0
	}
	for i := 1; i <= n; i++ {
		j := ((from+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return max(from, 0)
}

// Labels returns the current label of every item.
func (m Menu) Labels() []string {
	out := make([]string, len(m.Items))
	for i, item := range m.Items {
		if item.Label != nil {
			out[i] = item.Label()
		}
	}
	return out
}

// Update handles navigation, enter and item shortcuts.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = m.step(m.Selected, -1)
	case "down", "j":
		m.Selected = m.step(m.Selected, 1)
	case "home":
		m.Selected = m.step(-1, 1)
	case "end":
		m.Selected = m.step(len(m.Items), -1)
	case "enter":
		return m, m.fire(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key && !item.Disabled {
				m.Selected = i
				return m, m.fire(i)
			}
		}
	}
	return m, nil
}

func (m Menu) fire(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}
