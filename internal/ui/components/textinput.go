package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput is a single-line field for themes and decision options. It
// starts focused.
type TextInput struct {
	m textinput.Model
}

func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.Prompt = "› "
	if limit > 0 {
		m.CharLimit = limit
	}
	m.Focus()
	return TextInput{m: m}
}

func (t TextInput) Init() tea.Cmd {
	return t.m.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.m, cmd = t.m.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	return t.m.View()
}

// Value is the typed text with runs of whitespace collapsed, so "  Biển
// cả " and "Biển cả" are the same theme.
func (t TextInput) Value() string {
	return strings.Join(strings.Fields(t.m.Value()), " ")
}

// Reset clears the field and refocuses it.
func (t *TextInput) Reset() tea.Cmd {
	t.m.Reset()
	return t.m.Focus()
}

func (t *TextInput) Focus() tea.Cmd {
	return t.m.Focus()
}

func (t *TextInput) Blur() {
	t.m.Blur()
}

func (t TextInput) Focused() bool {
	return t.m.Focused()
}
