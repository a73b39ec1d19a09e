package activity

import (
	"fmt"

	"github.com/abhisek/wondershelf/internal/llm"
)

const playfulSystem = `You are the playful host of an entertainment app. Be witty, warm and a little cheeky, never mean. Write in natural, casual %s, the way young people actually talk (slang is welcome). Reply with the content only: no preamble, no markdown.`

func playful(language, user string) llm.Request {
	return llm.Prompt(fmt.Sprintf(playfulSystem, language), user)
}

func horoscopePrompt(language string, sign Sign) llm.Request {
	req := playful(language, fmt.Sprintf(
		"Write today's horoscope for %s (%s). Short, funny and sassy. Fewer than 3 sentences.",
		sign.Name, sign.ID))
	req.MaxTokens = 256
	req.Temperature = 0.9
	return req
}

func luckyColorPrompt(language string) llm.Request {
	req := playful(language,
		"Pick a random lucky color for today and give a funny reason. Name the color in the reply language.")
	req.MaxTokens = 256
	req.Temperature = 1
	return req
}

func jokePrompt(language string) llm.Request {
	req := playful(language, "Tell one short, groan-worthy dad joke.")
	req.MaxTokens = 200
	req.Temperature = 1
	return req
}

func complimentPrompt(language string) llm.Request {
	req := playful(language,
		"Give the reader one short, specific and slightly over-the-top compliment. One or two sentences.")
	req.MaxTokens = 150
	req.Temperature = 1
	return req
}

func psychTestPrompt(language string) llm.Request {
	req := playful(language,
		"Create a fun personality test: one intriguing situation or question and 4 different options labelled A to D. Each option has a short personality interpretation.")
	req.MaxTokens = 1024
	req.Temperature = 0.9
	return req
}

func decisionPrompt(language, a, b string) llm.Request {
	req := playful(language, fmt.Sprintf(
		"Help me choose between %q and %q. Pick exactly one, decisively, and give an absurd or funny reason.", a, b))
	req.MaxTokens = 256
	req.Temperature = 0.9
	return req
}

var luckyColorSchema = &llm.Schema{
	Name:        "lucky-color",
	Description: "Today's lucky color and why",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"color":  map[string]any{"type": "string", "description": "Color name in the reply language"},
			"reason": map[string]any{"type": "string", "description": "A funny reason"},
		},
		"required": []any{"color", "reason"},
	},
}

var psychTestSchema = &llm.Schema{
	Name:        "psych-test",
	Description: "One situation with four interpreted options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"minItems": 4,
				"maxItems": 4,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":             map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
						"text":           map[string]any{"type": "string"},
						"interpretation": map[string]any{"type": "string"},
					},
					"required": []any{"id", "text", "interpretation"},
				},
			},
		},
		"required": []any{"question", "options"},
	},
}
