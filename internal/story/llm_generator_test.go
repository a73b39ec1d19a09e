package story

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/wondershelf/internal/llm"
)

func questionsJSON() json.RawMessage {
	return json.RawMessage(`{"questions":[
		{"id":1,"scenario":"Bạn bước vào Rừng Phép Thuật lúc hoàng hôn.","options":[
			{"text":"Đi theo đom đóm","value":"naive"},
			{"text":"Dựng lều chờ sáng","value":"mature"}]},
		{"id":2,"scenario":"Một con cú biết nói chặn đường.","options":[
			{"text":"Hỏi đường","value":"leader"},
			{"text":"Lờ nó đi","value":"cold"}]}
	]}`)
}

func TestGenerateQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: questionsJSON()})
	gen := NewLLMGenerator(mock, DefaultGeneratorConfig("Vietnamese"))

	qs, err := gen.GenerateQuestions(context.Background(), "Rừng Phép Thuật", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].Options[0] != (Option{Label: "Hỏi đường", TraitTag: "leader"}) {
		t.Errorf("unexpected option: %+v", qs[1].Options[0])
	}

	req := mock.Calls[0]
	if req.Schema != QuestionsSchema {
		t.Error("expected the questions schema")
	}
	if !strings.Contains(req.System, "Vietnamese") {
		t.Errorf("system prompt does not name the language: %q", req.System)
	}
	if !strings.Contains(req.Messages[0].Content, "exactly 10") {
		t.Errorf("user message does not ask for 10 questions: %q", req.Messages[0].Content)
	}
	if got := mock.Purposes[0]; got != llm.PurposeStoryQuestions {
		t.Errorf("purpose = %q, want %q", got, llm.PurposeStoryQuestions)
	}
}

func TestGenerateQuestions_MalformedIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions": "soon"}`)})
	gen := NewLLMGenerator(mock, DefaultGeneratorConfig(""))

	_, err := gen.GenerateQuestions(context.Background(), "x", 3)
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestGenerateQuestions_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	gen := NewLLMGenerator(mock, DefaultGeneratorConfig(""))

	_, err := gen.GenerateQuestions(context.Background(), "x", 3)
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"title":"Chúa tể Simp",
		"description":"Bạn sống tình cảm.",
		"traits":["ấm áp","mơ mộng","liều lĩnh"],
		"compatibleWith":"Người thực tế"
	}`)})
	gen := NewLLMGenerator(mock, DefaultGeneratorConfig("Vietnamese"))

	r, err := gen.Analyze(context.Background(), "Rừng Phép Thuật", []Answer{
		{Scenario: "Bạn bước vào Rừng Phép Thuật lúc hoàng hôn và nghe tiếng hát.", ChoiceLabel: "Đi theo đom đóm", TraitTag: "naive"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Chúa tể Simp" || len(r.Traits) != 3 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if mock.Calls[0].Schema != AnalysisSchema {
		t.Error("expected the analysis schema")
	}
}

func TestLLMGeneratorDrivesFlow(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionsJSON()},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	f := NewFlow(NewLLMGenerator(mock, DefaultGeneratorConfig("Vietnamese")),
		WithFallback(vietnameseFallback()))

	call, _ := f.Start("Rừng Phép Thuật")
	f.Resolve(context.Background(), call)
	f.Answer(0)
	call, _ = f.Answer(1)
	st := f.Resolve(context.Background(), call)

	if st.Phase != PhaseCompleted || !st.Degraded {
		t.Fatalf("expected degraded completion, got %s degraded=%v", st.Phase, st.Degraded)
	}
	if st.Result.Title != "Người Bí Ẩn" {
		t.Errorf("expected fallback title, got %q", st.Result.Title)
	}
}
