package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{"```{\"a\":1}```", `{"a":1}`},
		{"Hôm nay trời đẹp.", "Hôm nay trời đẹp."},
	}
	for _, tt := range tests {
		if got := StripCodeFence(tt.in); got != tt.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type decodeTarget struct {
	Sign  string `json:"sign"`
	Score int    `json:"score"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[decodeTarget](&Response{Content: json.RawMessage("```json\n{\"sign\":\"Aries\",\"score\":7}\n```")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sign != "Aries" || got.Score != 7 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]*Response{
		"nil":       nil,
		"empty":     {Content: json.RawMessage("  ")},
		"malformed": {Content: json.RawMessage(`{"sign":`)},
		"wrong":     {Content: json.RawMessage(`{"score":"seven"}`)},
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode[decodeTarget](resp)
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}
