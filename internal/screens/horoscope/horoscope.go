// Package horoscope is the zodiac sign picker that opens a daily reading.
package horoscope

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

const columns = 3

// PickerScreen lists the twelve signs.
type PickerScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates the sign picker. Choosing a sign replaces the picker with the
// reading for that sign.
func New(svc *activity.Service) *PickerScreen {
	signs := svc.Signs()
	items := make([]components.MenuItem, len(signs))
	for i, sign := range signs {
		items[i] = components.MenuItem{
			Label: sign.Name,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.SwapMsg{
						Screen: reading.New("Daily Horoscope", reading.Horoscope(svc, sign.ID), false),
					}
				}
			},
		}
	}
	return &PickerScreen{menu: components.NewMenu(items, columns)}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Daily Horoscope"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Pick sign"},
		{Key: "Enter", Description: "Read"},
		{Key: "Esc", Description: "Close"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	content := theme.Title.Width(cw).Render("What's your sign?") + "\n\n" +
		p.menu.View((cw-4)/columns)
	return components.ModalFrame(components.Panel(content, cw), width, height)
}
