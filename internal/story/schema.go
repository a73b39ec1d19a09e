package story

import "github.com/abhisek/wondershelf/internal/llm"

// QuestionsSchema is the structured output requested for a question batch.
var QuestionsSchema = &llm.Schema{
	Name:        "story-questions",
	Description: "A storyline told as a sequence of linked multiple-choice scenarios",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "integer",
							"description": "1-based position in the storyline",
						},
						"scenario": map[string]any{
							"type":        "string",
							"description": "The story situation the reader is in",
						},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"text": map[string]any{
										"type":        "string",
										"description": "An action the reader can take",
									},
									"value": map[string]any{
										"type":        "string",
										"description": "One English personality keyword, e.g. naive, mature, leader",
									},
								},
								"required": []any{"text", "value"},
							},
						},
					},
					"required": []any{"id", "scenario", "options"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

// AnalysisSchema is the structured output requested for the final reading.
var AnalysisSchema = &llm.Schema{
	Name:        "story-analysis",
	Description: "A playful personality reading derived from the reader's choices",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A grand, funny title for the reader",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "4-5 sentences on strengths, weaknesses and tendencies",
			},
			"traits": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 3,
				"items":    map[string]any{"type": "string"},
			},
			"compatibleWith": map[string]any{
				"type":        "string",
				"description": "The kind of person the reader gets along with",
			},
		},
		"required": []any{"title", "description", "traits", "compatibleWith"},
	},
}
