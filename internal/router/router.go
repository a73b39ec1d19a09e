// Package router keeps the shelf at the bottom of a screen stack and the
// open card, if any, on top of it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wondershelf/internal/screen"
)

// OpenMsg opens a card over whatever is showing.
type OpenMsg struct {
	Screen screen.Screen
}

// CloseMsg closes the top card. The shelf itself cannot be closed.
type CloseMsg struct{}

// SwapMsg replaces the top screen, e.g. a sign picker with the reading it
// produced or the splash with the shelf.
type SwapMsg struct {
	Screen screen.Screen
}

// Router owns the screen stack.
type Router struct {
	stack []screen.Screen
}

func New(base screen.Screen) *Router {
	return &Router{stack: []screen.Screen{base}}
}

// Open pushes s and returns its Init command.
func (r *Router) Open(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Close drops the top card. The card's state goes with it; a generation it
// started still finishes, but its result reaches whatever screen is on top
// now and is ignored there. Close does nothing when only the base screen is
// left.
func (r *Router) Close() {
	n := len(r.stack)
	if n < 2 {
		return
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
}

// Swap puts s in place of the top screen.
func (r *Router) Swap(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active is the screen on top.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth is 1 on the shelf and 2 or more while a card is open.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OpenMsg:
		return r.Open(msg.Screen)
	case CloseMsg:
		r.Close()
		return nil
	case SwapMsg:
		return r.Swap(msg.Screen)
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
