package llm

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/abhisek/wondershelf/internal/store"
)

// maxAuditBody caps each stored request or response body. Story analysis
// prompts carry ten answers and stay far below it.
const maxAuditBody = 64 << 10

// auditedProvider logs every call and, with a repo, appends it to the LLM
// request audit log. It sits inside the retry layer, so each attempt is one
// event.
type auditedProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
}

// WithAudit wraps p. repo may be nil, in which case calls are only logged.
func WithAudit(p Provider, providerName string, repo store.EventRepo) Provider {
	return &auditedProvider{inner: p, provider: providerName, repo: repo}
}

func (a *auditedProvider) ModelID() string { return a.inner.ModelID() }

func (a *auditedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := a.inner.Generate(ctx, req)
	ev := a.event(ctx, req, resp, err, time.Since(start))

	attrs := []any{
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
	}
	if err != nil {
		slog.WarnContext(ctx, "llm call failed", append(attrs, "kind", Kind(err), "error", err)...)
	} else {
		slog.DebugContext(ctx, "llm call", append(attrs,
			"input_tokens", ev.InputTokens,
			"output_tokens", ev.OutputTokens)...)
	}

	if a.repo != nil {
		// Recording outlives a cancelled caller and never fails the call.
		if rerr := a.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
			slog.WarnContext(ctx, "record llm call", "error", rerr)
		}
	}
	return resp, err
}

func (a *auditedProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    a.provider,
		Model:       a.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: clip(req.Transcript()),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = clip(string(resp.Content))
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	return ev
}

// clip shortens s to maxAuditBody bytes without splitting a rune.
func clip(s string) string {
	if len(s) <= maxAuditBody {
		return s
	}
	cut := maxAuditBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n[truncated]"
}
