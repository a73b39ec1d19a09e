package story

import (
	"context"

	"github.com/abhisek/wondershelf/internal/content"
)

// Question is one step of the storyline. Immutable once generated.
type Question struct {
	ID       int      `json:"id"`
	Scenario string   `json:"scenario"`
	Options  []Option `json:"options"`
}

// Option is a choice offered by a Question. TraitTag is an opaque keyword
// aggregated during analysis.
type Option struct {
	Label    string `json:"label"`
	TraitTag string `json:"traitTag"`
}

// Answer records the option chosen for one Question.
type Answer struct {
	Scenario    string `json:"scenario"`
	ChoiceLabel string `json:"choiceLabel"`
	TraitTag    string `json:"traitTag"`
}

// Result is the personality reading shown at the end of a story.
type Result struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Traits         []string `json:"traits"`
	CompatibleWith string   `json:"compatibleWith"`
}

func (r Result) clone() *Result {
	r.Traits = append([]string(nil), r.Traits...)
	return &r
}

// Generator produces the questions and the final analysis for a story.
// Implementations may fail or return malformed data; the Flow never trusts
// their output.
type Generator interface {
	// GenerateQuestions returns up to n linked questions for theme.
	GenerateQuestions(ctx context.Context, theme string, n int) ([]Question, error)

	// Analyze reads the full answer sequence and returns a Result.
	Analyze(ctx context.Context, theme string, answers []Answer) (*Result, error)
}

// ResultFromCatalog converts the localized fallback reading.
func ResultFromCatalog(r content.StoryResult) Result {
	return Result{
		Title:          r.Title,
		Description:    r.Description,
		Traits:         append([]string(nil), r.Traits...),
		CompatibleWith: r.CompatibleWith,
	}
}
