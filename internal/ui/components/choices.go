package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// Choices is a vertical option picker. Number keys pick directly.
type Choices struct {
	Prompt   string
	Options  []string
	Selected int
	Chosen   int // -1 until a choice is made
}

// NewChoices creates a picker with the cursor on the first option.
func NewChoices(prompt string, options []string) Choices {
	return Choices{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
	}
}

// Update handles keyboard navigation and selection.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	if c.Chosen >= 0 {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		if len(c.Options) > 0 {
			c.Chosen = c.Selected
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
				c.Chosen = i
			}
		}
	}

	return c, nil
}

// Done reports whether an option was picked.
func (c Choices) Done() bool {
	return c.Chosen >= 0
}

// View renders the prompt and the options.
func (c Choices) View(width int) string {
	s := ""
	if c.Prompt != "" {
		s = lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Width(width).
			Render(c.Prompt) + "\n\n"
	}

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		switch {
		case c.Chosen >= 0 && i == c.Chosen:
			style = style.Foreground(theme.Highlight).Bold(true)
		case c.Chosen >= 0:
			style = style.Foreground(theme.TextDim)
		case i == c.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}
	return s
}
