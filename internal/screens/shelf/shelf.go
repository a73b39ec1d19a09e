// Package shelf is the home screen: rows of cards grouped by shelf.
package shelf

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/router"
	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/ui/components"
	"github.com/abhisek/wondershelf/internal/ui/layout"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// HomeScreen shows every shelf and opens the selected card.
type HomeScreen struct {
	deps Deps
	row  int
	col  int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	return &HomeScreen{deps: deps}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Browse"},
		{Key: "Enter", Description: "Open"},
		{Key: "Q", Description: "Quit"},
	}
}

// Selected returns the card under the cursor.
func (h *HomeScreen) Selected() (shelf.Card, bool) {
	if h.row >= len(h.deps.Shelves) {
		return shelf.Card{}, false
	}
	cards := h.deps.Shelves[h.row].Cards
	if h.col >= len(cards) {
		return shelf.Card{}, false
	}
	return cards[h.col], true
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(h.deps.Shelves) == 0 {
		return h, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if h.col > 0 {
			h.col--
		}
	case "right", "l":
		if h.col < len(h.deps.Shelves[h.row].Cards)-1 {
			h.col++
		}
	case "up", "k":
		if h.row > 0 {
			h.row--
			h.clampCol()
		}
	case "down", "j":
		if h.row < len(h.deps.Shelves)-1 {
			h.row++
			h.clampCol()
		}
	case "enter", "space":
		card, ok := h.Selected()
		if !ok {
			return h, nil
		}
		next := Open(h.deps, card)
		return h, func() tea.Msg { return router.OpenMsg{Screen: next} }
	case "q":
		return h, tea.Quit
	}
	return h, nil
}

func (h *HomeScreen) clampCol() {
	h.col = min(h.col, max(len(h.deps.Shelves[h.row].Cards)-1, 0))
}

func (h *HomeScreen) View(width, height int) string {
	cardWidth := max((width-8)/3-2, 16)

	var sections []string
	if err := h.deps.Activities.ConfigErr(); err != nil {
		sections = append(sections, theme.Warning.Width(width-4).Render("⚠ "+err.Error()))
	}

	for r, s := range h.deps.Shelves {
		title := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(strings.ToUpper(s.Title))
		cards := make([]string, len(s.Cards))
		for c, card := range s.Cards {
			cards[c] = components.ShelfCard(card.Title, card.Subtitle, card.From, card.To, cardWidth, r == h.row && c == h.col)
		}
		sections = append(sections, title+"\n"+lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(strings.Join(sections, "\n\n"))
}
