// Package decision collects two options and asks the oracle to pick one.
package decision

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/router"
	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/screens/reading"
	"github.com/abhisek/wondershelf/internal/ui/components"
	"github.com/abhisek/wondershelf/internal/ui/layout"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

const optionLimit = 80

// Screen holds the two option fields.
type Screen struct {
	svc    *activity.Service
	inputs [2]components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

// New creates the decision screen.
func New(svc *activity.Service) *Screen {
	s := &Screen{svc: svc}
	s.inputs[0] = components.NewTextInput("Option A, e.g. Phở", optionLimit)
	s.inputs[1] = components.NewTextInput("Option B, e.g. Bún chả", optionLimit)
	s.inputs[1].Blur()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.inputs[0].Init()
}

func (s *Screen) Title() string {
	return "Decision Maker"
}

// CapturingInput keeps letter keys in the text fields.
func (s *Screen) CapturingInput() bool {
	return true
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "Enter", Description: "Decide"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab", "up", "down":
			return s, s.switchFocus()
		case "enter":
			return s.submit()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *Screen) switchFocus() tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = 1 - s.focus
	return s.inputs[s.focus].Focus()
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	a, b := s.inputs[0].Value(), s.inputs[1].Value()
	if a == "" || b == "" {
		if s.focus == 0 && a != "" {
			return s, s.switchFocus()
		}
		s.errMsg = "Give me two options to choose from."
		return s, nil
	}
	s.errMsg = ""
	next := reading.New("Decision Maker", reading.Decision(s.svc, a, b), false)
	return s, func() tea.Msg { return router.SwapMsg{Screen: next} }
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := theme.Title.Width(cw).Render("Stuck? Let the oracle decide") + "\n\n" +
		s.inputs[0].View() + "\n" +
		theme.Hint.Render("or") + "\n" +
		s.inputs[1].View()
	if s.errMsg != "" {
		content += "\n\n" + theme.Warning.Render(s.errMsg)
	}
	return components.ModalFrame(components.Panel(content, cw), width, height)
}
