package story

// Snapshot is a read-only view of a Flow for renderers and the HTTP API.
type Snapshot struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	Theme     string    `json:"theme,omitempty"`
	Locked    bool      `json:"locked"`
	Index     int       `json:"index"`
	Answered  int       `json:"answered"`
	Total     int       `json:"total"`
	Question  *Question `json:"question,omitempty"`
	Answers   []Answer  `json:"answers"`
	Result    *Result   `json:"result,omitempty"`
	Degraded  bool      `json:"degraded,omitempty"`
	Error     string    `json:"error,omitempty"`
	Retryable bool      `json:"retryable,omitempty"`
}

// Snapshot captures the flow as it is now.
func (f *Flow) Snapshot() Snapshot {
	answered, total := f.Progress()
	s := Snapshot{
		ID:       f.id.String(),
		Phase:    f.state.Phase.String(),
		Theme:    f.Theme(),
		Locked:   f.Locked(),
		Answered: answered,
		Total:    total,
		Answers:  f.Answers(),
	}
	if s.Answers == nil {
		s.Answers = []Answer{}
	}

	switch f.state.Phase {
	case PhaseAwaitingAnswer:
		q, _ := f.Current()
		s.Index = f.state.Index
		s.Question = &q
	case PhaseCompleted:
		s.Result = f.state.Result.clone()
		s.Degraded = f.state.Degraded
	case PhaseSelectingTheme:
		if f.state.Err != nil {
			s.Error = f.state.Err.Error()
			s.Retryable = true
		}
	case PhaseFailed:
		s.Error = f.state.Reason
	}
	return s
}
