// Package reading is the card screen for one-shot generated content: jokes,
// compliments, lucky colors, horoscopes and decisions.
package reading

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/ui/components"
	"github.com/abhisek/wondershelf/internal/ui/layout"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// Reading is one piece of generated content.
type Reading struct {
	Heading  string
	Body     string
	Swatch   string // optional hex color shown as a block
	Fallback bool
}

// Fetch produces a Reading. It runs off the UI loop.
type Fetch func(ctx context.Context) (Reading, error)

type readyMsg struct {
	screen  *Screen
	seq     int
	reading Reading
	err     error
}

// Screen shows a Reading and lets the user ask for another one.
type Screen struct {
	title   string
	fetch   Fetch
	again   bool
	seq     int
	loading bool
	reading Reading
	err     error
	spinner spinner.Model
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a reading screen. When again is set, R fetches a new reading.
func New(title string, fetch Fetch, again bool) *Screen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return &Screen{title: title, fetch: fetch, again: again, spinner: sp}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	return s.title
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	}
	hints := []layout.KeyHint{}
	if s.again {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Another one"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Close"})
}

// load starts a fetch. Replies from earlier fetches are dropped by seq.
func (s *Screen) load() tea.Cmd {
	s.seq++
	s.loading = true
	s.err = nil

	seq, fetch := s.seq, s.fetch
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		r, err := fetch(context.Background())
		return readyMsg{screen: s, seq: seq, reading: r, err: err}
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		if msg.screen != s || msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.reading, s.err = msg.reading, msg.err
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "enter":
			if s.again && !s.loading {
				return s, s.load()
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.loading:
		body = s.spinner.View() + " " + theme.Hint.Render("Consulting the stars...")
	case s.err != nil:
		body = theme.Warning.Width(cw - 6).Render(s.err.Error())
	default:
		body = s.renderReading(cw - 6)
	}

	return components.ModalFrame(components.Panel(body, cw), width, height)
}

func (s *Screen) renderReading(w int) string {
	var parts []string
	if s.reading.Heading != "" {
		parts = append(parts, theme.Title.Width(w).Render(s.reading.Heading))
	}
	if s.reading.Swatch != "" {
		parts = append(parts, lipgloss.NewStyle().
			Background(theme.Hex(s.reading.Swatch)).
			Render(strings.Repeat(" ", 12)))
	}
	parts = append(parts, theme.Body.Width(w).Align(lipgloss.Center).Render(s.reading.Body))
	if s.reading.Fallback {
		parts = append(parts, theme.Hint.Render("(the oracle is napping, here is a classic)"))
	}
	return strings.Join(parts, "\n\n")
}
