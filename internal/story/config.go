package story

// GeneratorConfig controls the LLMGenerator.
type GeneratorConfig struct {
	// Language is the output language named in English, e.g. "Vietnamese".
	Language string

	// QuestionsMaxTokens is the token budget for a question batch.
	QuestionsMaxTokens int

	// AnalysisMaxTokens is the token budget for the final reading.
	AnalysisMaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultGeneratorConfig returns the recommended settings for language.
func DefaultGeneratorConfig(language string) GeneratorConfig {
	if language == "" {
		language = "Vietnamese"
	}
	return GeneratorConfig{
		Language:           language,
		QuestionsMaxTokens: 8192,
		AnalysisMaxTokens:  1024,
		Temperature:        0.9,
	}
}
