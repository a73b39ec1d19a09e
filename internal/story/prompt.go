package story

import (
	"fmt"
	"strings"
)

// scenarioPreviewRunes bounds how much of each scenario is quoted back in
// the analysis prompt.
const scenarioPreviewRunes = 30

const questionsSystemPrompt = `You write interactive personality quizzes told as a single story.

Rules:
- The questions follow each other like chapters of one complete plot: setting out, meeting a challenge, resolving it, the ending.
- Every scenario is vivid and self-contained, and follows on from the previous one.
- Every option is an action the reader takes. Its "value" is a single English personality keyword (e.g. naive, mature, simp, cold, leader).
- Number the questions from 1.
- Write scenarios and options in natural, engaging %s.`

const analysisSystemPrompt = `You are a funny yet insightful psychologist reading the results of a story quiz.

Rules:
- Give the reader a grand, funny title (e.g. "Lord of Simps", "Professor of Love").
- The description is 4-5 sentences about strengths, weaknesses and behavioural tendencies.
- List exactly 3 short trait adjectives.
- Say what kind of person the reader is compatible with.
- Write everything in %s.`

func questionsSystem(language string) string {
	return fmt.Sprintf(questionsSystemPrompt, language)
}

func analysisSystem(language string) string {
	return fmt.Sprintf(analysisSystemPrompt, language)
}

func buildQuestionsMessage(theme string, n int) string {
	return fmt.Sprintf("Theme: %q\nWrite exactly %d linked questions.", theme, n)
}

func buildAnalysisMessage(theme string, answers []Answer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Theme: %q\n", theme)
	fmt.Fprintf(&b, "The reader answered %d questions:\n", len(answers))
	for i, a := range answers {
		fmt.Fprintf(&b, "%d. %s... -> Chose: %s (Trait: %s)\n",
			i+1, truncateRunes(a.Scenario, scenarioPreviewRunes), a.ChoiceLabel, a.TraitTag)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
