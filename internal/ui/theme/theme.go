// Package theme holds the night-sky palette and the few shared text styles
// the cards are drawn with.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#A855F7") // violet
	Secondary = lipgloss.Color("#2DD4BF") // teal
	Accent    = lipgloss.Color("#F472B6") // pink
	Highlight = lipgloss.Color("#FACC15") // star yellow
	Error     = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")

	BgDark = lipgloss.Color("#0F172A")
	BgCard = lipgloss.Color("#1E293B")
	Border = lipgloss.Color("#334155")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Warning  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Progress bar cells.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)

// Buttons on the result views.
var (
	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// Hex turns a catalog color like "#6366F1" into a terminal color. Anything
// that is not a 7-char hex string becomes Primary.
func Hex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return Primary
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return Primary
		}
	}
	return lipgloss.Color(s)
}
