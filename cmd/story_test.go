package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wondershelf/internal/story"
)

type scriptedGenerator struct {
	questionErrs []error
	result       *story.Result
	themes       []string
}

func (g *scriptedGenerator) GenerateQuestions(_ context.Context, theme string, n int) ([]story.Question, error) {
	g.themes = append(g.themes, theme)
	if len(g.questionErrs) > 0 {
		err := g.questionErrs[0]
		g.questionErrs = g.questionErrs[1:]
		return nil, err
	}
	qs := make([]story.Question, n)
	for i := range qs {
		qs[i] = story.Question{
			Scenario: fmt.Sprintf("Scene %d", i+1),
			Options: []story.Option{
				{Label: "Left", TraitTag: "bold"},
				{Label: "Right", TraitTag: "calm"},
			},
		}
	}
	return qs, nil
}

func (g *scriptedGenerator) Analyze(context.Context, string, []story.Answer) (*story.Result, error) {
	if g.result == nil {
		return nil, errors.New("oracle asleep")
	}
	return g.result, nil
}

func TestRunStoryLoopCompletes(t *testing.T) {
	gen := &scriptedGenerator{result: &story.Result{
		Title:       "The Wanderer",
		Description: "You follow the path less taken.",
		Traits:      []string{"bold", "curious"},
	}}
	f := story.NewFlow(gen, story.WithQuestionCount(2))

	var out bytes.Buffer
	err := runStoryLoop(context.Background(), f, "", strings.NewReader("space\n1\n2\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, story.PhaseCompleted, f.State().Phase)
	assert.Equal(t, []string{"space"}, gen.themes)
	text := out.String()
	assert.Contains(t, text, "[1/2] Scene 1")
	assert.Contains(t, text, "[2/2] Scene 2")
	assert.Contains(t, text, "✦ The Wanderer ✦")
	assert.Contains(t, text, "Traits:     bold, curious")
	assert.NotContains(t, text, "default reading")
}

func TestRunStoryLoopRepromptsOnBadChoice(t *testing.T) {
	gen := &scriptedGenerator{result: &story.Result{Title: "Sage"}}
	f := story.NewFlow(gen, story.WithQuestionCount(1))

	var out bytes.Buffer
	err := runStoryLoop(context.Background(), f, "sea", strings.NewReader("abc\n9\n2\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out.String(), "Enter a number from 1 to 2."))
	require.Len(t, f.Answers(), 1)
	assert.Equal(t, "Right", f.Answers()[0].ChoiceLabel)
}

func TestRunStoryLoopDegradedAnalysis(t *testing.T) {
	gen := &scriptedGenerator{}
	f := story.NewFlow(gen,
		story.WithQuestionCount(1),
		story.WithFallback(story.Result{Title: "Mystery Guest"}),
	)

	var out bytes.Buffer
	require.NoError(t, runStoryLoop(context.Background(), f, "forest", strings.NewReader("1\n"), &out))

	assert.Contains(t, out.String(), "Mystery Guest")
	assert.Contains(t, out.String(), "default reading")
}

func TestRunStoryLoopRetriesLockedTheme(t *testing.T) {
	gen := &scriptedGenerator{
		questionErrs: []error{errors.New("timeout")},
		result:       &story.Result{Title: "Druid"},
	}
	f := story.NewFlow(gen, story.WithQuestionCount(1), story.WithLockedTheme("Enchanted Forest"))

	var out bytes.Buffer
	require.NoError(t, runStoryLoop(context.Background(), f, "", strings.NewReader("y\n1\n"), &out))

	assert.Equal(t, []string{"Enchanted Forest", "Enchanted Forest"}, gen.themes)
	assert.Equal(t, 1, strings.Count(out.String(), "The story got lost: timeout"))
	assert.Equal(t, story.PhaseCompleted, f.State().Phase)
}

func TestRunStoryLoopLockedDecline(t *testing.T) {
	gen := &scriptedGenerator{questionErrs: []error{errors.New("timeout")}}
	f := story.NewFlow(gen, story.WithLockedTheme("Enchanted Forest"))

	var out bytes.Buffer
	require.NoError(t, runStoryLoop(context.Background(), f, "", strings.NewReader("n\n"), &out))
	assert.Len(t, gen.themes, 1)
	assert.Equal(t, story.PhaseSelectingTheme, f.State().Phase)
}

func TestRunStoryLoopEndOfInput(t *testing.T) {
	f := story.NewFlow(&scriptedGenerator{})

	var out bytes.Buffer
	require.NoError(t, runStoryLoop(context.Background(), f, "", strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Theme: ")
}

func TestRunStoryLoopWithoutGenerator(t *testing.T) {
	f := story.NewFlow(nil)

	err := runStoryLoop(context.Background(), f, "space", strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
