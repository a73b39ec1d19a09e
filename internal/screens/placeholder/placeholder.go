// Package placeholder is the card shown when the real one cannot run.
package placeholder

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/llm"
	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// Notice is a static, centered message under the card's title.
type Notice struct {
	title string
	lines []string
}

var _ screen.Screen = (*Notice)(nil)

func New(title string, lines ...string) *Notice {
	return &Notice{title: title, lines: lines}
}

// Unconfigured explains why no provider could be built and how to fix it.
func Unconfigured(title string, err error) *Notice {
	reason := err.Error()
	var cfgErr *llm.ErrConfiguration
	if errors.As(err, &cfgErr) {
		reason = cfgErr.Reason
	}
	return New(title,
		"✦ The magic is sleeping ✦",
		"",
		reason,
		"",
		"Set GEMINI_API_KEY (or ANTHROPIC_API_KEY, OPENAI_API_KEY,",
		"OPENROUTER_API_KEY) and restart Wonder Shelf.",
	)
}

func (n *Notice) Init() tea.Cmd                          { return nil }
func (n *Notice) Update(tea.Msg) (screen.Screen, tea.Cmd) { return n, nil }
func (n *Notice) Title() string                          { return n.title }

func (n *Notice) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(strings.Join(n.lines, "\n"))
}
