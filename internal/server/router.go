// Package server exposes the shelf over HTTP/JSON.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/story"
)

// Container holds the dependencies of the router.
type Container struct {
	Activities    *activity.Service
	Generator     story.Generator // nil when no provider is configured
	Shelves       []shelf.Shelf
	Fallback      story.Result
	QuestionCount int
	Registry      *Registry
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	if c.Registry == nil {
		c.Registry = NewRegistry()
	}

	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	ah := &activityHandler{svc: c.Activities, shelves: c.Shelves}
	sh := &storyHandler{c: c}

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/shelves", ah.Shelves).Methods(http.MethodGet)
	v1.HandleFunc("/zodiac", ah.Zodiac).Methods(http.MethodGet)

	v1.HandleFunc("/activities/horoscope", ah.Horoscope).Methods(http.MethodPost)
	v1.HandleFunc("/activities/lucky-color", ah.LuckyColor).Methods(http.MethodPost)
	v1.HandleFunc("/activities/joke", ah.Joke).Methods(http.MethodPost)
	v1.HandleFunc("/activities/compliment", ah.Compliment).Methods(http.MethodPost)
	v1.HandleFunc("/activities/psych-test", ah.PsychTest).Methods(http.MethodPost)
	v1.HandleFunc("/activities/decision", ah.Decision).Methods(http.MethodPost)

	v1.HandleFunc("/stories", sh.Create).Methods(http.MethodPost)
	v1.HandleFunc("/stories/{id}", sh.Get).Methods(http.MethodGet)
	v1.HandleFunc("/stories/{id}", sh.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/stories/{id}/theme", sh.Theme).Methods(http.MethodPost)
	v1.HandleFunc("/stories/{id}/answers", sh.Answer).Methods(http.MethodPost)
	v1.HandleFunc("/stories/{id}/reset", sh.Reset).Methods(http.MethodPost)

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.DebugContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
