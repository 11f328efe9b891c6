package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// SearchInput is a one-line filter box built on bubbles/textinput. It
// only consumes keys while focused.
type SearchInput struct {
	Model textinput.Model
}

// NewSearchInput creates a blurred search box.
func NewSearchInput(placeholder string, maxLen int) SearchInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return SearchInput{Model: ti}
}

// Focus starts capturing keystrokes.
func (s *SearchInput) Focus() tea.Cmd {
	return s.Model.Focus()
}

// Blur stops capturing keystrokes but keeps the query.
func (s *SearchInput) Blur() {
	s.Model.Blur()
}

// Focused reports whether the box is capturing keystrokes.
func (s SearchInput) Focused() bool {
	return s.Model.Focused()
}

// Clear empties the query.
func (s *SearchInput) Clear() {
	s.Model.SetValue("")
}

// Update forwards messages to the text input.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the input.
func (s SearchInput) View() string {
	return s.Model.View()
}

// Value returns the current query.
func (s SearchInput) Value() string {
	return s.Model.Value()
}
