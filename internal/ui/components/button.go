package components

import (
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// Button is a styled, keyboard-selectable label.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow renders labels side by side with the selected one active.
func ButtonRow(labels []string, selected int) string {
	s := ""
	for i, l := range labels {
		if i > 0 {
			s += "  "
		}
		s += NewButton(l, i == selected).View()
	}
	return s
}
