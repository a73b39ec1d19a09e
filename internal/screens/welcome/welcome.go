package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/router"
	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

const shelfArt = `╭──────────────────────╮
│  ▣   ▤   ▥   ▦   ▧  │
├──────────────────────┤
│    ▨    ▩    ▣      │
├──────────────────────┤
│  ▤   ▥        ▦     │
╰──────────────────────╯`

// sparkle frames cycle around the shelf
var sparkleFrames = []string{"✦", "✧", "★"}

type tickMsg time.Time

// WelcomeScreen shows a short splash, then hands over to the shelf. Any key
// skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.SwapMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(shelfArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Highlight).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		lines[0] = s1 + " " + lines[0] + " " + s2
		lines[len(lines)-1] = s2 + " " + lines[len(lines)-1] + " " + s1
		for i := 1; i < len(lines)-1; i++ {
			lines[i] = "  " + lines[i] + "  "
		}
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{
		rendered,
		"",
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("A shelf of tiny delights"),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key"),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
