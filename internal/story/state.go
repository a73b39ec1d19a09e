package story

import "errors"

// Phase names the lifecycle step a Flow is in.
type Phase int

const (
	PhaseSelectingTheme Phase = iota
	PhaseGeneratingQuestions
	PhaseAwaitingAnswer
	PhaseAnalyzing
	PhaseCompleted
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseSelectingTheme:      "selecting_theme",
	PhaseGeneratingQuestions: "generating_questions",
	PhaseAwaitingAnswer:      "awaiting_answer",
	PhaseAnalyzing:           "analyzing",
	PhaseCompleted:           "completed",
	PhaseFailed:              "failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Pending reports whether a generator call is outstanding in this phase.
func (p Phase) Pending() bool {
	return p == PhaseGeneratingQuestions || p == PhaseAnalyzing
}

// State is the tagged variant exposed to renderers. Only the fields that
// belong to Phase are meaningful:
//
//	AwaitingAnswer  Index
//	Completed       Result, Degraded
//	SelectingTheme  Err (the last generation failure, retryable)
//	Failed          Reason
type State struct {
	Phase    Phase
	Index    int
	Result   *Result
	Degraded bool
	Err      error
	Reason   string
}

var (
	// ErrBusy is returned while a generator call is in flight.
	ErrBusy = errors.New("story: a generation is already in progress")

	// ErrInvalidPhase is returned when an operation does not apply to the
	// current phase.
	ErrInvalidPhase = errors.New("story: operation not valid in the current phase")

	// ErrInvalidChoice is returned for a choice index outside the current
	// question's options. The flow is left untouched.
	ErrInvalidChoice = errors.New("story: choice out of range")

	// ErrNoQuestions is attached to SelectingTheme when the generator
	// returned nothing usable.
	ErrNoQuestions = errors.New("story: no usable questions were generated")
)
