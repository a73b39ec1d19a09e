package story

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wondershelf/internal/content"
	"github.com/abhisek/wondershelf/internal/llm"
)

type fakeGenerator struct {
	questions    []Question
	questionsErr error
	result       *Result
	analyzeErr   error

	questionCalls int
	analyzeCalls  int
	lastTheme     string
	lastN         int
	lastAnswers   []Answer
}

func (g *fakeGenerator) GenerateQuestions(_ context.Context, theme string, n int) ([]Question, error) {
	g.questionCalls++
	g.lastTheme = theme
	g.lastN = n
	return g.questions, g.questionsErr
}

func (g *fakeGenerator) Analyze(_ context.Context, _ string, answers []Answer) (*Result, error) {
	g.analyzeCalls++
	g.lastAnswers = answers
	return g.result, g.analyzeErr
}

func makeQuestions(n, options int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		q := Question{ID: i + 1, Scenario: fmt.Sprintf("Cảnh %d: bạn đứng trước một ngã rẽ trong rừng", i+1)}
		for j := 0; j < options; j++ {
			q.Options = append(q.Options, Option{
				Label:    fmt.Sprintf("Hành động %d.%d", i+1, j),
				TraitTag: fmt.Sprintf("trait-%d", j),
			})
		}
		qs[i] = q
	}
	return qs
}

func vietnameseFallback() Result {
	return ResultFromCatalog(content.MustLoad("vi").Fallbacks.StoryResult)
}

func startedFlow(t *testing.T, gen *fakeGenerator, opts ...FlowOption) *Flow {
	t.Helper()
	f := NewFlow(gen, opts...)
	call, err := f.Start("Đại dương sâu thẳm")
	require.NoError(t, err)
	require.NotNil(t, call)
	f.Resolve(context.Background(), call)
	require.Equal(t, PhaseAwaitingAnswer, f.State().Phase)
	return f
}

func TestAnsweringEveryQuestionCompletes(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("%d questions", n), func(t *testing.T) {
			gen := &fakeGenerator{
				questions: makeQuestions(n, 3),
				result:    &Result{Title: "Nhà Thám Hiểm", Traits: []string{"dũng cảm"}},
			}
			f := startedFlow(t, gen, WithQuestionCount(n))

			var last Call
			for i := 0; i < n; i++ {
				require.Equal(t, PhaseAwaitingAnswer, f.State().Phase)
				require.Equal(t, i, f.State().Index)
				require.Len(t, f.Answers(), i)

				call, err := f.Answer((i * 7) % 3)
				require.NoError(t, err)
				if i < n-1 {
					assert.Nil(t, call)
				}
				last = call
			}

			require.NotNil(t, last)
			assert.Equal(t, PhaseAnalyzing, f.State().Phase)
			assert.Len(t, f.Answers(), n)

			st := f.Resolve(context.Background(), last)
			assert.Equal(t, PhaseCompleted, st.Phase)
			assert.False(t, st.Degraded)
			assert.Equal(t, "Nhà Thám Hiểm", st.Result.Title)
			assert.Equal(t, 1, gen.analyzeCalls)
			assert.Len(t, gen.lastAnswers, n)
		})
	}
}

func TestFlowOptions(t *testing.T) {
	opts := []FlowOption{WithQuestionCount(2), WithQuestionCount(0), WithLockedTheme("  Rừng Phép Thuật ")}
	gen := &fakeGenerator{questions: []Question{
		{Scenario: "Cổng rừng", Options: []Option{{Label: "Bước vào", TraitTag: "brave"}}},
		{Scenario: "Con suối", Options: []Option{{Label: "Lội qua", TraitTag: "bold"}}},
	}}
	f := startedFlow(t, gen, opts...)

	assert.Equal(t, 2, gen.lastN)
	assert.Equal(t, "Rừng Phép Thuật", gen.lastTheme)
	q, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, Option{Label: "Bước vào", TraitTag: "brave"}, q.Options[0])
}

func TestAnswerOutOfRangeLeavesFlowUntouched(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(3, 2)}
	f := startedFlow(t, gen)

	_, err := f.Answer(0)
	require.NoError(t, err)
	before := f.Snapshot()

	for _, choice := range []int{-1, 2, 99} {
		call, err := f.Answer(choice)
		assert.ErrorIs(t, err, ErrInvalidChoice)
		assert.Nil(t, call)
		assert.Equal(t, before, f.Snapshot())
	}
}

func TestAnswerOutsideAwaitingAnswer(t *testing.T) {
	f := NewFlow(&fakeGenerator{})
	_, err := f.Answer(0)
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestResetFromCompleted(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(2, 2), result: &Result{Title: "Hiệp Sĩ"}}
	f := startedFlow(t, gen)
	f.Answer(1)
	call, _ := f.Answer(0)
	f.Resolve(context.Background(), call)
	require.Equal(t, PhaseCompleted, f.State().Phase)

	call, err := f.Reset()
	require.NoError(t, err)
	assert.Nil(t, call)
	assert.Equal(t, PhaseSelectingTheme, f.State().Phase)
	assert.Empty(t, f.Answers())
	assert.Empty(t, f.Questions())
	assert.Nil(t, f.State().Result)
	assert.Equal(t, "", f.Theme())
}

func TestResetThemeLockedRestarts(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(1, 2), result: &Result{Title: "Pháp Sư"}}
	f := NewFlow(gen, WithLockedTheme("Rừng Phép Thuật"))

	call, err := f.Start("")
	require.NoError(t, err)
	f.Resolve(context.Background(), call)
	call, _ = f.Answer(0)
	f.Resolve(context.Background(), call)
	require.Equal(t, PhaseCompleted, f.State().Phase)

	call, err = f.Reset()
	require.NoError(t, err)
	require.NotNil(t, call)
	assert.Equal(t, PhaseGeneratingQuestions, f.State().Phase)
	assert.Empty(t, f.Answers())
	assert.Equal(t, "Rừng Phép Thuật", f.Theme())

	f.Resolve(context.Background(), call)
	assert.Equal(t, PhaseAwaitingAnswer, f.State().Phase)
	assert.Equal(t, 2, gen.questionCalls)
	assert.Equal(t, "Rừng Phép Thuật", gen.lastTheme)
}

func TestEmptyBatchReturnsToThemeSelection(t *testing.T) {
	for name, qs := range map[string][]Question{
		"nil":      nil,
		"empty":    {},
		"unusable": {{Scenario: "  "}, {Scenario: "Không có lựa chọn"}},
	} {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{questions: qs}
			f := NewFlow(gen)
			call, err := f.Start("Sa mạc")
			require.NoError(t, err)

			st := f.Resolve(context.Background(), call)
			assert.Equal(t, PhaseSelectingTheme, st.Phase)
			assert.ErrorIs(t, st.Err, ErrNoQuestions)
			assert.True(t, f.Snapshot().Retryable)

			// The user can simply try again.
			gen.questions = makeQuestions(2, 2)
			call, err = f.Start("Sa mạc")
			require.NoError(t, err)
			assert.Equal(t, PhaseAwaitingAnswer, f.Resolve(context.Background(), call).Phase)
		})
	}
}

func TestQuestionTransportErrorIsRetryable(t *testing.T) {
	boom := &llm.ErrProviderUnavailable{Err: errors.New("connection reset")}
	f := NewFlow(&fakeGenerator{questionsErr: boom})
	call, _ := f.Start("Vũ trụ")

	st := f.Resolve(context.Background(), call)
	assert.Equal(t, PhaseSelectingTheme, st.Phase)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, st.Err, &unavail)
}

func TestConfigurationErrorFails(t *testing.T) {
	f := NewFlow(&fakeGenerator{questionsErr: fmt.Errorf("generate: %w", &llm.ErrConfiguration{Reason: "no key"})})
	call, _ := f.Start("Vũ trụ")

	st := f.Resolve(context.Background(), call)
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Contains(t, st.Reason, "no key")

	_, err := f.Start("Vũ trụ")
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestNilGeneratorFails(t *testing.T) {
	f := NewFlow(nil)
	assert.Equal(t, PhaseFailed, f.State().Phase)
	_, err := f.Start("x")
	assert.ErrorIs(t, err, ErrInvalidPhase)
	_, err = f.Reset()
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestAnalysisFailureUsesFallback(t *testing.T) {
	fallback := vietnameseFallback()
	for name, gen := range map[string]*fakeGenerator{
		"error":       {analyzeErr: &llm.ErrInvalidResponse{Err: errors.New("bad json")}},
		"nil result":  {},
		"blank title": {result: &Result{Title: "  "}},
	} {
		t.Run(name, func(t *testing.T) {
			gen.questions = makeQuestions(2, 2)
			f := startedFlow(t, gen, WithFallback(fallback))
			f.Answer(0)
			call, err := f.Answer(1)
			require.NoError(t, err)

			st := f.Resolve(context.Background(), call)
			assert.Equal(t, PhaseCompleted, st.Phase)
			assert.True(t, st.Degraded)
			require.NotNil(t, st.Result)
			assert.Equal(t, "Người Bí Ẩn", st.Result.Title)
			assert.Equal(t, fallback.Description, st.Result.Description)
			assert.Equal(t, []string{"Kiên nhẫn", "Bí ẩn", "Lỗi"}, st.Result.Traits)
			assert.Equal(t, "Kỹ sư AI", st.Result.CompatibleWith)
		})
	}
}

func TestFallbackIsNotShared(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(1, 2), analyzeErr: errors.New("down")}
	f := startedFlow(t, gen, WithFallback(vietnameseFallback()))
	call, _ := f.Answer(0)
	st := f.Resolve(context.Background(), call)

	st.Result.Traits[0] = "changed"
	assert.Equal(t, "Kiên nhẫn", f.fallback.Traits[0])
}

func TestEnchantedForestScenario(t *testing.T) {
	gen := &fakeGenerator{
		questions: makeQuestions(10, 4),
		result: &Result{
			Title:          "Người Giữ Rừng",
			Description:    "Bạn luôn chọn con đường đầu tiên.",
			Traits:         []string{"kiên định", "thẳng thắn", "can đảm"},
			CompatibleWith: "Một chú cáo tinh ranh",
		},
	}
	f := NewFlow(gen, WithLockedTheme("Rừng Phép Thuật"))

	call, err := f.Start("")
	require.NoError(t, err)
	require.Equal(t, PhaseGeneratingQuestions, f.State().Phase)
	f.Resolve(context.Background(), call)
	assert.Equal(t, "Rừng Phép Thuật", gen.lastTheme)
	assert.Equal(t, 10, gen.lastN)

	questions := f.Questions()
	require.Len(t, questions, 10)

	for i := 0; i < 10; i++ {
		call, err = f.Answer(0)
		require.NoError(t, err)
	}
	st := f.Resolve(context.Background(), call)

	answers := f.Answers()
	require.Len(t, answers, 10)
	for i, a := range answers {
		assert.Equal(t, questions[i].Options[0].Label, a.ChoiceLabel)
		assert.Equal(t, questions[i].Scenario, a.Scenario)
	}
	assert.Equal(t, PhaseCompleted, st.Phase)
	assert.NotEmpty(t, st.Result.Title)
}

func TestNoOperationsWhilePending(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(1, 2)}
	f := NewFlow(gen)
	call, err := f.Start("Núi lửa")
	require.NoError(t, err)

	_, err = f.Start("Núi lửa")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = f.Answer(0)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = f.Reset()
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 0, gen.questionCalls, "a Call runs only when the caller runs it")

	f.Resolve(context.Background(), call)
	analyze, err := f.Answer(0)
	require.NoError(t, err)
	_, err = f.Reset()
	assert.ErrorIs(t, err, ErrBusy)
	f.Resolve(context.Background(), analyze)
	assert.Equal(t, PhaseCompleted, f.State().Phase)
}

func TestStartWithoutTheme(t *testing.T) {
	f := NewFlow(&fakeGenerator{})
	call, err := f.Start("   ")
	require.NoError(t, err)
	assert.Nil(t, call)
	assert.Equal(t, PhaseSelectingTheme, f.State().Phase)
}

func TestStartOnlyFromThemeSelection(t *testing.T) {
	f := startedFlow(t, &fakeGenerator{questions: makeQuestions(2, 2)})
	_, err := f.Start("Khác")
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestStaleAndForeignEventsIgnored(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(2, 2)}
	f := NewFlow(gen)
	other := NewFlow(gen)

	otherCall, _ := other.Start("Khác")
	call, _ := f.Start("Biển")

	assert.Equal(t, PhaseGeneratingQuestions, f.Apply(otherCall(context.Background())).Phase)

	ev := call(context.Background())
	assert.Equal(t, PhaseAwaitingAnswer, f.Apply(ev).Phase)
	f.Answer(1)

	// Delivering the same completion twice changes nothing.
	st := f.Apply(ev)
	assert.Equal(t, PhaseAwaitingAnswer, st.Phase)
	assert.Equal(t, 1, st.Index)
	assert.Len(t, f.Answers(), 1)
}

func TestQuestionBatchNormalized(t *testing.T) {
	raw := []Question{
		{Scenario: "  Mở đầu  ", Options: []Option{{Label: " Đi ", TraitTag: " brave "}, {Label: ""}}},
		{Scenario: ""},
		{ID: 7, Scenario: "Giữa truyện", Options: []Option{{Label: "Chạy"}}},
		{Scenario: "Thừa", Options: []Option{{Label: "Bỏ"}}},
	}
	f := startedFlow(t, &fakeGenerator{questions: raw}, WithQuestionCount(2))

	qs := f.Questions()
	require.Len(t, qs, 2)
	assert.Equal(t, Question{ID: 1, Scenario: "Mở đầu", Options: []Option{{Label: "Đi", TraitTag: "brave"}}}, qs[0])
	assert.Equal(t, 7, qs[1].ID)
}

func TestSnapshot(t *testing.T) {
	gen := &fakeGenerator{questions: makeQuestions(3, 2)}
	f := NewFlow(gen, WithLockedTheme("Rừng Phép Thuật"))

	s := f.Snapshot()
	assert.Equal(t, "selecting_theme", s.Phase)
	assert.Equal(t, "Rừng Phép Thuật", s.Theme)
	assert.True(t, s.Locked)
	assert.NotNil(t, s.Answers)

	call, _ := f.Start("")
	f.Resolve(context.Background(), call)
	f.Answer(0)

	s = f.Snapshot()
	assert.Equal(t, "awaiting_answer", s.Phase)
	assert.Equal(t, f.ID().String(), s.ID)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 1, s.Answered)
	assert.Equal(t, 3, s.Total)
	require.NotNil(t, s.Question)
	assert.Equal(t, 2, s.Question.ID)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "analyzing", PhaseAnalyzing.String())
	assert.Equal(t, "unknown", Phase(42).String())
	assert.True(t, PhaseGeneratingQuestions.Pending())
	assert.False(t, PhaseCompleted.Pending())
}
