package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTranscript(t *testing.T) {
	req := Prompt("Bạn là người kể chuyện.", "Chủ đề: Biển cả")
	req.Messages = append(req.Messages, Message{Role: RoleAssistant, Content: "Được!"})
	req.Schema = &Schema{Name: "story-questions", Definition: map[string]any{"type": "object"}}

	want := "[system]\nBạn là người kể chuyện.\n\n" +
		"[user]\nChủ đề: Biển cả\n\n" +
		"[assistant]\nĐược!\n\n" +
		"[schema: story-questions]\n{\"type\":\"object\"}\n"
	assert.Equal(t, want, req.Transcript())
	assert.Empty(t, Request{}.Transcript())
}

func TestResponseText(t *testing.T) {
	var nilResp *Response
	assert.Empty(t, nilResp.Text())
	assert.Equal(t, "Chúc bạn một ngày vui!", (&Response{Content: []byte("  Chúc bạn một ngày vui!\n")}).Text())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, PurposeStoryQuestions, PurposeFrom(WithPurpose(ctx, PurposeStoryQuestions)))
}

func TestWithTimeout(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, mock, WithTimeout(mock, 0))

	var deadline time.Time
	p := WithTimeout(providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		deadline, _ = ctx.Deadline()
		return &Response{}, nil
	}), time.Minute)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	assert.Equal(t, "func", p.ModelID())
}

type providerFunc func(context.Context, Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }
