package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wondershelf/internal/ui/layout"
)

// Screen is one view on the router stack: the shelf itself or a card
// opened from it.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field. While
// it reports true, Esc and q are delivered to the screen instead of closing
// it.
type InputCapturer interface {
	CapturingInput() bool
}
