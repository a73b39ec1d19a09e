package psychtest

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/content"
	"github.com/abhisek/wondershelf/internal/llm"
)

func deliver(s *Screen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			deliver(s, c)
		}
		return
	}
	if _, ok := msg.(testMsg); ok {
		s.Update(msg)
	}
}

func TestPsychTestFallbackAndReveal(t *testing.T) {
	cat := content.MustLoad("vi")
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	s := New(activity.NewService(mock, cat))

	deliver(s, s.Init())
	if s.loading || s.err != nil {
		t.Fatalf("expected loaded test, err=%v", s.err)
	}
	if !s.test.Fallback {
		t.Error("expected the canned test")
	}

	s.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	meaning, ok := s.Interpretation()
	if !ok {
		t.Fatal("expected a choice")
	}
	if want := cat.Fallbacks.PsychTest.Options[1].Interpretation; meaning != want {
		t.Errorf("interpretation = %q, want %q", meaning, want)
	}
}

func TestPsychTestUnconfigured(t *testing.T) {
	cat := content.MustLoad("vi")
	s := New(activity.Unconfigured(&llm.ErrConfiguration{Reason: "no key"}, cat))

	deliver(s, s.Init())
	if !llm.IsConfiguration(s.err) {
		t.Fatalf("expected configuration error, got %v", s.err)
	}
}
