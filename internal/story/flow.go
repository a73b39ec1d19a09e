// Package story drives the Story Adventure: theme selection, a batch of
// linked questions answered one at a time, and a final analysis.
//
// A Flow never calls its Generator itself. Operations that need the
// generator return a Call; the caller runs it (in a tea.Cmd, an HTTP
// handler, a CLI loop) and feeds the resulting Event back through Apply.
// A Flow is not safe for concurrent use; Calls are.
package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/wondershelf/internal/llm"
)

// DefaultQuestionCount is the number of questions requested per story.
const DefaultQuestionCount = 10

// Call is a pending generator request. It only reads values captured when
// it was created, so it can run on any goroutine.
type Call func(ctx context.Context) Event

type eventKind int

const (
	questionsReady eventKind = iota + 1
	analysisReady
)

// Event is the completion of a Call, to be passed to Flow.Apply.
type Event struct {
	flow      uuid.UUID
	epoch     uint64
	kind      eventKind
	questions []Question
	result    *Result
	err       error
}

// Err returns the generator error carried by the event, if any.
func (e Event) Err() error { return e.err }

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithQuestionCount sets how many questions are requested. Values below 1
// are ignored.
func WithQuestionCount(n int) FlowOption {
	return func(f *Flow) {
		if n >= 1 {
			f.count = n
		}
	}
}

// WithLockedTheme pins the flow to theme: Start needs no theme and Reset
// immediately starts over with the same one.
func WithLockedTheme(theme string) FlowOption {
	return func(f *Flow) {
		f.locked = strings.TrimSpace(theme)
	}
}

// WithFallback sets the result shown when the analysis fails.
func WithFallback(r Result) FlowOption {
	return func(f *Flow) {
		f.fallback = r
	}
}

// Flow is one Story Adventure session.
type Flow struct {
	id       uuid.UUID
	gen      Generator
	count    int
	locked   string
	fallback Result

	theme     string
	questions []Question
	answers   []Answer
	state     State
	epoch     uint64
}

// NewFlow creates a flow in SelectingTheme. A nil generator leaves the flow
// in Failed, since nothing can ever be generated.
func NewFlow(gen Generator, opts ...FlowOption) *Flow {
	f := &Flow{
		id:    uuid.New(),
		gen:   gen,
		count: DefaultQuestionCount,
		state: State{Phase: PhaseSelectingTheme},
	}
	for _, opt := range opts {
		opt(f)
	}
	if gen == nil {
		f.state = State{Phase: PhaseFailed, Reason: "content generator is not configured"}
	}
	return f
}

// ID identifies the flow; events from other flows are ignored.
func (f *Flow) ID() uuid.UUID { return f.id }

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Theme returns the active theme, or the locked theme before the first start.
func (f *Flow) Theme() string {
	if f.theme == "" {
		return f.locked
	}
	return f.theme
}

// Locked reports whether the flow is pinned to one theme.
func (f *Flow) Locked() bool { return f.locked != "" }

// Busy reports whether a generator call is outstanding.
func (f *Flow) Busy() bool { return f.state.Phase.Pending() }

// Questions returns a copy of the generated questions.
func (f *Flow) Questions() []Question {
	return append([]Question(nil), f.questions...)
}

// Answers returns a copy of the answers given so far.
func (f *Flow) Answers() []Answer {
	return append([]Answer(nil), f.answers...)
}

// Current returns the question awaiting an answer.
func (f *Flow) Current() (Question, bool) {
	if f.state.Phase != PhaseAwaitingAnswer {
		return Question{}, false
	}
	return f.questions[f.state.Index], true
}

// Progress returns the number of answered questions and the batch size.
func (f *Flow) Progress() (answered, total int) {
	return len(f.answers), len(f.questions)
}

// Start begins generation for theme. It is only valid in SelectingTheme.
// A blank theme on an unlocked flow leaves it waiting and returns a nil Call;
// a locked flow always uses its own theme.
func (f *Flow) Start(theme string) (Call, error) {
	if f.Busy() {
		return nil, ErrBusy
	}
	if f.state.Phase != PhaseSelectingTheme {
		return nil, fmt.Errorf("%w: start in %s", ErrInvalidPhase, f.state.Phase)
	}

	theme = strings.TrimSpace(theme)
	if f.locked != "" {
		theme = f.locked
	}
	if theme == "" {
		return nil, nil
	}

	f.theme = theme
	f.questions = nil
	f.answers = nil
	f.state = State{Phase: PhaseGeneratingQuestions}
	f.epoch++

	id, epoch, gen, n := f.id, f.epoch, f.gen, f.count
	return func(ctx context.Context) Event {
		qs, err := gen.GenerateQuestions(ctx, theme, n)
		return Event{flow: id, epoch: epoch, kind: questionsReady, questions: qs, err: err}
	}, nil
}

// Answer records choice for the current question. After the last question
// the flow enters Analyzing and the returned Call requests the analysis;
// otherwise the Call is nil.
func (f *Flow) Answer(choice int) (Call, error) {
	if f.Busy() {
		return nil, ErrBusy
	}
	if f.state.Phase != PhaseAwaitingAnswer {
		return nil, fmt.Errorf("%w: answer in %s", ErrInvalidPhase, f.state.Phase)
	}

	q := f.questions[f.state.Index]
	if choice < 0 || choice >= len(q.Options) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidChoice, choice, len(q.Options))
	}

	opt := q.Options[choice]
	f.answers = append(f.answers, Answer{
		Scenario:    q.Scenario,
		ChoiceLabel: opt.Label,
		TraitTag:    opt.TraitTag,
	})

	next := f.state.Index + 1
	if next < len(f.questions) {
		f.state = State{Phase: PhaseAwaitingAnswer, Index: next}
		return nil, nil
	}

	f.state = State{Phase: PhaseAnalyzing}
	f.epoch++

	id, epoch, gen, theme := f.id, f.epoch, f.gen, f.theme
	answers := f.Answers()
	return func(ctx context.Context) Event {
		r, err := gen.Analyze(ctx, theme, answers)
		return Event{flow: id, epoch: epoch, kind: analysisReady, result: r, err: err}
	}, nil
}

// Reset discards questions, answers and result. An unlocked flow returns to
// SelectingTheme; a locked flow starts generating again and returns the Call.
// It is refused while a call is in flight.
func (f *Flow) Reset() (Call, error) {
	if f.Busy() {
		return nil, ErrBusy
	}
	if f.gen == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPhase, f.state.Reason)
	}

	f.theme = ""
	f.questions = nil
	f.answers = nil
	f.state = State{Phase: PhaseSelectingTheme}
	f.epoch++

	if f.locked == "" {
		return nil, nil
	}
	return f.Start(f.locked)
}

// Apply feeds a completed Call back into the flow and returns the new state.
// Events from another flow, from a call superseded by Reset, or arriving a
// second time are ignored.
func (f *Flow) Apply(ev Event) State {
	if ev.flow != f.id || ev.epoch != f.epoch {
		return f.state
	}

	switch {
	case ev.kind == questionsReady && f.state.Phase == PhaseGeneratingQuestions:
		f.applyQuestions(ev)
	case ev.kind == analysisReady && f.state.Phase == PhaseAnalyzing:
		f.applyAnalysis(ev)
	}
	return f.state
}

// Resolve runs call synchronously and applies its event. A nil call is a
// no-op.
func (f *Flow) Resolve(ctx context.Context, call Call) State {
	if call == nil {
		return f.state
	}
	return f.Apply(call(ctx))
}

func (f *Flow) applyQuestions(ev Event) {
	if ev.err != nil {
		if llm.IsConfiguration(ev.err) {
			f.state = State{Phase: PhaseFailed, Reason: ev.err.Error()}
			return
		}
		f.state = State{Phase: PhaseSelectingTheme, Err: ev.err}
		return
	}

	qs := normalizeQuestions(ev.questions, f.count)
	if len(qs) == 0 {
		f.state = State{Phase: PhaseSelectingTheme, Err: ErrNoQuestions}
		return
	}

	f.questions = qs
	f.answers = make([]Answer, 0, len(qs))
	f.state = State{Phase: PhaseAwaitingAnswer, Index: 0}
}

func (f *Flow) applyAnalysis(ev Event) {
	r := ev.result
	if ev.err != nil || r == nil || strings.TrimSpace(r.Title) == "" {
		f.state = State{Phase: PhaseCompleted, Result: f.fallback.clone(), Degraded: true, Err: ev.err}
		return
	}
	f.state = State{Phase: PhaseCompleted, Result: r.clone()}
}

// normalizeQuestions drops questions that cannot be answered, trims the batch
// to n and numbers questions the generator left unnumbered.
func normalizeQuestions(in []Question, n int) []Question {
	out := make([]Question, 0, min(len(in), n))
	for _, q := range in {
		if len(out) == n {
			break
		}
		q.Scenario = strings.TrimSpace(q.Scenario)
		if q.Scenario == "" {
			continue
		}
		opts := make([]Option, 0, len(q.Options))
		for _, o := range q.Options {
			o.Label = strings.TrimSpace(o.Label)
			if o.Label == "" {
				continue
			}
			opts = append(opts, Option{Label: o.Label, TraitTag: strings.TrimSpace(o.TraitTag)})
		}
		if len(opts) == 0 {
			continue
		}
		q.Options = opts
		if q.ID == 0 {
			q.ID = len(out) + 1
		}
		out = append(out, q)
	}
	return out
}
