package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wondershelf/internal/ui/theme"
)

// StepProgress shows how far a multi-step activity has come, e.g. 3 of 10
// story questions.
type StepProgress struct {
	Done  int
	Total int
	Width int
}

// NewStepProgress creates a progress indicator.
func NewStepProgress(done, total, width int) StepProgress {
	return StepProgress{Done: done, Total: total, Width: width}
}

// Percent returns the completed fraction in [0,1].
func (p StepProgress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders a bar followed by a "done/total" counter.
func (p StepProgress) View() string {
	counter := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", p.Done, p.Total))

	barWidth := max(p.Width-lipgloss.Width(counter), 4)
	filled := int(float64(barWidth) * p.Percent())

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		counter
}
