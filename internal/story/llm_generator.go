package story

import (
	"context"
	"fmt"

	"github.com/abhisek/wondershelf/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   GeneratorConfig
}

// NewLLMGenerator creates a generator writing in cfg.Language.
func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type questionsOutput struct {
	Questions []struct {
		ID       int    `json:"id"`
		Scenario string `json:"scenario"`
		Options  []struct {
			Text  string `json:"text"`
			Value string `json:"value"`
		} `json:"options"`
	} `json:"questions"`
}

type analysisOutput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Traits         []string `json:"traits"`
	CompatibleWith string   `json:"compatibleWith"`
}

// GenerateQuestions asks for n linked questions on theme.
func (g *LLMGenerator) GenerateQuestions(ctx context.Context, theme string, n int) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeStoryQuestions)

	req := llm.Prompt(questionsSystem(g.config.Language), buildQuestionsMessage(theme, n))
	req.Schema = QuestionsSchema
	req.MaxTokens = g.config.QuestionsMaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate story questions: %w", err)
	}

	out, err := llm.Decode[questionsOutput](resp)
	if err != nil {
		return nil, fmt.Errorf("decode story questions: %w", err)
	}

	qs := make([]Question, 0, len(out.Questions))
	for _, raw := range out.Questions {
		q := Question{ID: raw.ID, Scenario: raw.Scenario}
		for _, o := range raw.Options {
			q.Options = append(q.Options, Option{Label: o.Text, TraitTag: o.Value})
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// Analyze asks for the final reading over answers.
func (g *LLMGenerator) Analyze(ctx context.Context, theme string, answers []Answer) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeStoryAnalysis)

	req := llm.Prompt(analysisSystem(g.config.Language), buildAnalysisMessage(theme, answers))
	req.Schema = AnalysisSchema
	req.MaxTokens = g.config.AnalysisMaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analyze story: %w", err)
	}

	out, err := llm.Decode[analysisOutput](resp)
	if err != nil {
		return nil, fmt.Errorf("decode story analysis: %w", err)
	}

	return &Result{
		Title:          out.Title,
		Description:    out.Description,
		Traits:         out.Traits,
		CompatibleWith: out.CompatibleWith,
	}, nil
}
