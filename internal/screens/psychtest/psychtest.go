// Package psychtest runs a one-question personality quiz.
package psychtest

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/ui/components"
	"github.com/abhisek/wondershelf/internal/ui/layout"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

type testMsg struct {
	screen *Screen
	seq    int
	test   activity.PsychTest
	err    error
}

// Screen loads a quiz, lets the user pick an option and reveals its meaning.
type Screen struct {
	svc     *activity.Service
	seq     int
	loading bool
	test    activity.PsychTest
	choices components.Choices
	err     error
	spinner spinner.Model
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the psych test screen.
func New(svc *activity.Service) *Screen {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Secondary)
	return &Screen{svc: svc, spinner: sp}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	return "Psych Test"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	case s.choices.Done() || s.err != nil:
		return []layout.KeyHint{
			{Key: "R", Description: "New test"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Choose"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *Screen) load() tea.Cmd {
	s.seq++
	s.loading = true
	s.err = nil

	seq, svc := s.seq, s.svc
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		pt, err := svc.PsychTest(context.Background())
		return testMsg{screen: s, seq: seq, test: pt, err: err}
	})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case testMsg:
		if msg.screen != s || msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.test, s.err = msg.test, msg.err
		labels := make([]string, len(msg.test.Options))
		for i, o := range msg.test.Options {
			labels[i] = o.Text
		}
		s.choices = components.NewChoices(msg.test.Question, labels)
		return s, nil

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		if s.choices.Done() || s.err != nil {
			if msg.String() == "r" {
				return s, s.load()
			}
			return s, nil
		}
		s.choices, _ = s.choices.Update(msg)
	}
	return s, nil
}

// Interpretation returns the meaning of the chosen option, if any.
func (s *Screen) Interpretation() (string, bool) {
	if !s.choices.Done() {
		return "", false
	}
	return s.test.Options[s.choices.Chosen].Interpretation, true
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	w := cw - 6

	var content string
	switch {
	case s.loading:
		content = s.spinner.View() + " " + theme.Hint.Render("Brewing a tricky question...")
	case s.err != nil:
		content = theme.Warning.Width(w).Render(s.err.Error())
	default:
		content = s.choices.View(w)
		if meaning, ok := s.Interpretation(); ok {
			content += "\n" + lipgloss.NewStyle().
				Foreground(theme.Highlight).
				Width(w).
				Render(meaning)
		}
		if s.test.Fallback {
			content += "\n\n" + theme.Hint.Render("(a classic from the archive)")
		}
	}
	return components.ModalFrame(components.Panel(content, cw), width, height)
}
