// Package story is the interactive story card: pick a theme, answer ten
// linked scenarios and get a personality reading.
package story

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/story"
	"github.com/abhisek/wondershelf/internal/ui/components"
	"github.com/abhisek/wondershelf/internal/ui/layout"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

const themeLimit = 60

// flowEventMsg carries a finished generator call back to the UI loop.
type flowEventMsg struct {
	ev story.Event
}

// Screen renders a story.Flow. All state lives in the flow; the screen only
// mirrors it into widgets.
type Screen struct {
	title   string
	flow    *story.Flow
	input   components.TextInput
	choices components.Choices
	spinner spinner.Model
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates a story screen around a fresh flow.
func New(title string, gen story.Generator, opts ...story.FlowOption) *Screen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Highlight)

	return &Screen{
		title:   title,
		flow:    story.NewFlow(gen, opts...),
		input:   components.NewTextInput("e.g. Biển cả, Vũ trụ, Trường học phép thuật", themeLimit),
		spinner: sp,
	}
}

// Flow exposes the underlying flow.
func (s *Screen) Flow() *story.Flow {
	return s.flow
}

func (s *Screen) Init() tea.Cmd {
	if s.flow.Locked() {
		return s.start("")
	}
	return s.input.Init()
}

func (s *Screen) Title() string {
	return s.title
}

// CapturingInput is true while the theme field has focus.
func (s *Screen) CapturingInput() bool {
	return s.flow.State().Phase == story.PhaseSelectingTheme && !s.flow.Locked()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.flow.State().Phase {
	case story.PhaseSelectingTheme:
		if s.flow.Locked() {
			return []layout.KeyHint{{Key: "R", Description: "Retry"}, {Key: "Esc", Description: "Close"}}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Begin"}, {Key: "Esc", Description: "Close"}}
	case story.PhaseAwaitingAnswer:
		q, _ := s.flow.Current()
		return []layout.KeyHint{{Key: choiceKeys(len(q.Options)), Description: "Choose"}, {Key: "Esc", Description: "Close"}}
	case story.PhaseCompleted:
		return []layout.KeyHint{{Key: "R", Description: "Play again"}, {Key: "Esc", Description: "Close"}}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
}

// choiceKeys names the keys that pick one of n options. Digits only reach 9.
func choiceKeys(n int) string {
	switch {
	case n <= 1:
		return "Enter"
	case n <= 9:
		return fmt.Sprintf("1-%d", n)
	}
	return "↑/↓ Enter"
}

// run executes a generator call off the UI loop.
func (s *Screen) run(call story.Call) tea.Cmd {
	if call == nil {
		s.sync()
		return nil
	}
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return flowEventMsg{ev: call(context.Background())}
	})
}

func (s *Screen) start(themeText string) tea.Cmd {
	call, err := s.flow.Start(themeText)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	return s.run(call)
}

// sync rebuilds widgets after the flow moved.
func (s *Screen) sync() {
	if q, ok := s.flow.Current(); ok {
		labels := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i] = o.Label
		}
		s.choices = components.NewChoices(q.Scenario, labels)
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case flowEventMsg:
		s.flow.Apply(msg.ev)
		s.sync()
		return s, nil

	case spinner.TickMsg:
		if !s.flow.Busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.CapturingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.flow.State().Phase {
	case story.PhaseSelectingTheme:
		if s.flow.Locked() {
			if key == "r" || key == "enter" {
				return s, s.start("")
			}
			return s, nil
		}
		if key == "enter" {
			if s.input.Value() == "" {
				s.errMsg = "Pick a theme first."
				return s, nil
			}
			return s, s.start(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case story.PhaseAwaitingAnswer:
		s.choices, _ = s.choices.Update(msg)
		if !s.choices.Done() {
			return s, nil
		}
		call, err := s.flow.Answer(s.choices.Chosen)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, s.run(call)

	case story.PhaseCompleted:
		if key != "r" {
			return s, nil
		}
		call, err := s.flow.Reset()
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		if !s.flow.Locked() {
			return s, tea.Batch(s.input.Reset(), s.run(call))
		}
		return s, s.run(call)
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	w := cw - 6

	var content string
	st := s.flow.State()
	switch st.Phase {
	case story.PhaseSelectingTheme:
		content = s.viewTheme(w, st)
	case story.PhaseGeneratingQuestions:
		content = s.spinner.View() + " " + theme.Hint.Render(fmt.Sprintf("Weaving a story in %s...", s.flow.Theme()))
	case story.PhaseAwaitingAnswer:
		answered, total := s.flow.Progress()
		content = components.NewStepProgress(answered, total, w).View() + "\n\n" + s.choices.View(w)
	case story.PhaseAnalyzing:
		content = s.spinner.View() + " " + theme.Hint.Render("Reading your choices...")
	case story.PhaseCompleted:
		content = viewResult(w, st)
	case story.PhaseFailed:
		content = theme.Warning.Width(w).Render(st.Reason)
	}

	if s.errMsg != "" {
		content += "\n\n" + theme.Warning.Render(s.errMsg)
	}
	return components.ModalFrame(components.Panel(content, cw), width, height)
}

func (s *Screen) viewTheme(w int, st story.State) string {
	var b strings.Builder
	if s.flow.Locked() {
		b.WriteString(theme.Title.Width(w).Render(s.flow.Theme()))
	} else {
		b.WriteString(theme.Title.Width(w).Render("Where does your story begin?"))
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
	}
	if st.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Warning.Width(w).Render("The story got lost: " + st.Err.Error()))
	}
	return b.String()
}

func viewResult(w int, st story.State) string {
	r := st.Result
	parts := []string{
		theme.Title.Width(w).Render(r.Title),
		theme.Body.Width(w).Align(lipgloss.Center).Render(r.Description),
	}
	if len(r.Traits) > 0 {
		chips := make([]string, len(r.Traits))
		for i, t := range r.Traits {
			chips[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Padding(0, 1).
				Render(t)
		}
		parts = append(parts, strings.Join(chips, " "))
	}
	if r.CompatibleWith != "" {
		parts = append(parts, theme.Subtitle.Width(w).Render("Best match: "+r.CompatibleWith))
	}
	if st.Degraded {
		parts = append(parts, theme.Hint.Render("(the oracle dozed off, this is its default reading)"))
	}
	return strings.Join(parts, "\n\n")
}
