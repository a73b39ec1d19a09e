package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/content"
	"github.com/abhisek/wondershelf/internal/llm"
	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/story"
)

type stubGenerator struct {
	mu        sync.Mutex
	themes    []string
	questions int
	result    *story.Result
	err       error

	// analyzeDelay makes Analyze wait, giving up early if ctx ends.
	analyzeDelay time.Duration

	// entered and release gate GenerateQuestions when set.
	entered chan struct{}
	release chan struct{}
}

func (g *stubGenerator) GenerateQuestions(ctx context.Context, theme string, n int) ([]story.Question, error) {
	g.mu.Lock()
	g.themes = append(g.themes, theme)
	g.mu.Unlock()
	if g.entered != nil {
		close(g.entered)
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	count := g.questions
	if count == 0 {
		count = n
	}
	qs := make([]story.Question, count)
	for i := range qs {
		qs[i] = story.Question{
			Scenario: fmt.Sprintf("Cảnh %d trong %s", i+1, theme),
			Options: []story.Option{
				{Label: "Đi trái", TraitTag: "bold"},
				{Label: "Đi phải", TraitTag: "careful"},
			},
		}
	}
	return qs, nil
}

func (g *stubGenerator) seen() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.themes...)
}

func (g *stubGenerator) Analyze(ctx context.Context, theme string, answers []story.Answer) (*story.Result, error) {
	if g.analyzeDelay > 0 {
		select {
		case <-time.After(g.analyzeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.result == nil {
		return nil, errors.New("analysis unavailable")
	}
	return g.result, nil
}

func newTestServer(t *testing.T, gen story.Generator, responses ...llm.MockResponse) (*httptest.Server, *Container) {
	t.Helper()
	cat := content.MustLoad("vi")
	c := &Container{
		Activities:    activity.NewService(llm.NewMockProvider(responses...), cat),
		Shelves:       shelf.Default(cat),
		Fallback:      story.ResultFromCatalog(cat.Fallbacks.StoryResult),
		QuestionCount: 3,
	}
	if gen != nil {
		c.Generator = gen
	}
	srv := httptest.NewServer(NewRouter(c))
	t.Cleanup(srv.Close)
	return srv, c
}

func do(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})
	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestShelvesAndZodiac(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	resp, body := do(t, http.MethodGet, srv.URL+"/v1/shelves", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shelves := body["shelves"].([]any)
	assert.Len(t, shelves, 3)
	assert.NotContains(t, body, "configError")

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/zodiac", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["signs"].([]any), 12)
}

func TestActivities(t *testing.T) {
	srv, _ := newTestServer(t, nil,
		llm.MockResponse{Content: json.RawMessage("Sao chiếu mệnh rực rỡ.")},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/activities/horoscope", map[string]string{"sign": "leo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sao chiếu mệnh rực rỡ.", body["reading"])

	// The provider is down: the canned joke still comes back.
	resp, body = do(t, http.MethodPost, srv.URL+"/v1/activities/joke", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["fallback"])
	assert.Equal(t, content.MustLoad("vi").Fallbacks.Joke, body["text"])
}

func TestActivityValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, _ := do(t, http.MethodPost, srv.URL+"/v1/activities/horoscope", map[string]string{"sign": "ophiuchus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/v1/activities/decision", map[string]string{"optionA": "Phở"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActivitiesUnconfigured(t *testing.T) {
	cat := content.MustLoad("vi")
	cfgErr := &llm.ErrConfiguration{Reason: "no API key found"}
	c := &Container{
		Activities: activity.Unconfigured(cfgErr, cat),
		Shelves:    shelf.Default(cat),
		Fallback:   story.ResultFromCatalog(cat.Fallbacks.StoryResult),
	}
	srv := httptest.NewServer(NewRouter(c))
	defer srv.Close()

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/activities/compliment", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body["error"], "no API key found")

	_, body = do(t, http.MethodGet, srv.URL+"/v1/shelves", nil)
	assert.Contains(t, body["configError"], "no API key found")

	// Without a generator every story is born failed.
	resp, body = do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"theme": "Biển cả"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "failed", body["phase"])
}

func TestStoryLifecycle(t *testing.T) {
	gen := &stubGenerator{result: &story.Result{
		Title:       "Nhà Thám Hiểm",
		Description: "Luôn chọn lối đi mới.",
		Traits:      []string{"Gan dạ"},
	}}
	srv, c := newTestServer(t, gen)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/stories", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "selecting_theme", body["phase"])
	id := body["id"].(string)
	base := srv.URL + "/v1/stories/" + id

	resp, body = do(t, http.MethodPost, base+"/theme", map[string]string{"theme": "Biển cả"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "awaiting_answer", body["phase"])
	assert.EqualValues(t, 3, body["total"])

	for i := 0; i < 3; i++ {
		resp, body = do(t, http.MethodPost, base+"/answers", map[string]int{"choice": i % 2})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, "completed", body["phase"])
	result := body["result"].(map[string]any)
	assert.Equal(t, "Nhà Thám Hiểm", result["title"])

	resp, _ = do(t, http.MethodPost, base+"/answers", map[string]int{"choice": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, body = do(t, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "selecting_theme", body["phase"])

	resp, _ = do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, c.Registry.Len())

	resp, _ = do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoryLockedCard(t *testing.T) {
	gen := &stubGenerator{}
	srv, _ := newTestServer(t, gen)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"cardId": "8", "theme": "Sa mạc"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["locked"])
	assert.Equal(t, "Rừng Phép Thuật", body["theme"])
	assert.Equal(t, []string{"Rừng Phép Thuật"}, gen.seen())

	resp, _ = do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"cardId": "3"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStoryAnalysisFallback(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{questions: 1})

	_, body := do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"theme": "Vũ trụ"})
	base := srv.URL + "/v1/stories/" + body["id"].(string)

	resp, body := do(t, http.MethodPost, base+"/answers", map[string]int{"choice": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", body["phase"])
	assert.Equal(t, true, body["degraded"])
	assert.Equal(t, "Người Bí Ẩn", body["result"].(map[string]any)["title"])
}

func TestStoryGenerationFailureIsRetryable(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{err: &llm.ErrProviderUnavailable{}})

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"theme": "Vũ trụ"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "selecting_theme", body["phase"])
	assert.Equal(t, true, body["retryable"])
	assert.NotEmpty(t, body["error"])
}

func TestStoryBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, &stubGenerator{})

	_, body := do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"theme": "Vũ trụ"})
	base := srv.URL + "/v1/stories/" + body["id"].(string)

	resp, _ := do(t, http.MethodPost, base+"/answers", map[string]int{"choice": 7})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, base+"/answers", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodPost, base+"/answers", bytes.NewBufferString("{not json"))
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/v1/stories/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoryConcurrentRequestConflicts(t *testing.T) {
	gen := &stubGenerator{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	srv, c := newTestServer(t, gen)

	_, body := do(t, http.MethodPost, srv.URL+"/v1/stories", nil)
	base := srv.URL + "/v1/stories/" + body["id"].(string)
	require.Equal(t, 1, c.Registry.Len())

	done := make(chan int)
	go func() {
		req, _ := http.NewRequest(http.MethodPost, base+"/theme", bytes.NewBufferString(`{"theme":"Biển cả"}`))
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	<-gen.entered
	resp, _ := do(t, http.MethodPost, base+"/answers", map[string]int{"choice": 0})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Reads are served from the last snapshot while the flow is held.
	resp, body = do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "generating_questions", body["phase"])
	assert.Equal(t, "Biển cả", body["theme"])

	close(gen.release)
	assert.Equal(t, http.StatusOK, <-done)

	resp, body = do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "awaiting_answer", body["phase"])
}

func TestStoryAnalysisOutlivesClient(t *testing.T) {
	gen := &stubGenerator{
		questions:    1,
		analyzeDelay: 300 * time.Millisecond,
		result:       &story.Result{Title: "Nhà Thám Hiểm", Traits: []string{"Gan dạ"}},
	}
	srv, _ := newTestServer(t, gen)

	_, body := do(t, http.MethodPost, srv.URL+"/v1/stories", map[string]string{"theme": "Vũ trụ"})
	base := srv.URL + "/v1/stories/" + body["id"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/answers", bytes.NewBufferString(`{"choice":0}`))
	require.NoError(t, err)
	if resp, err := http.DefaultClient.Do(req); err == nil {
		resp.Body.Close()
		t.Fatal("expected the client to give up before the analysis finished")
	}

	require.Eventually(t, func() bool {
		_, body = do(t, http.MethodGet, base, nil)
		return body["phase"] == "completed"
	}, 2*time.Second, 20*time.Millisecond)
	assert.NotContains(t, body, "degraded")
	assert.Equal(t, "Nhà Thám Hiểm", body["result"].(map[string]any)["title"])
}
