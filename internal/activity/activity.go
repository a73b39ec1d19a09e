// Package activity implements the one-shot shelf cards. Every method returns
// generated content, or the locale's canned content when generation fails;
// only configuration and input errors are returned to the caller.
package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/wondershelf/internal/content"
	"github.com/abhisek/wondershelf/internal/llm"
)

var (
	ErrUnknownSign   = errors.New("activity: unknown zodiac sign")
	ErrMissingOption = errors.New("activity: both options are required")
)

// Sign is a zodiac sign with its localized name.
type Sign struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Horoscope struct {
	Sign     Sign   `json:"sign"`
	Reading  string `json:"reading"`
	Fallback bool   `json:"fallback,omitempty"`
}

type LuckyColor struct {
	Color    string `json:"color"`
	Reason   string `json:"reason"`
	Fallback bool   `json:"fallback,omitempty"`
}

type Joke struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback,omitempty"`
}

type Compliment struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback,omitempty"`
}

type PsychOption struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Interpretation string `json:"interpretation"`
}

type PsychTest struct {
	Question string        `json:"question"`
	Options  []PsychOption `json:"options"`
	Fallback bool          `json:"fallback,omitempty"`
}

type Decision struct {
	OptionA  string `json:"optionA"`
	OptionB  string `json:"optionB"`
	Verdict  string `json:"verdict"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Service runs the activities against one provider and one locale.
type Service struct {
	provider llm.Provider
	catalog  *content.Catalog
	cfgErr   error
}

// NewService creates a Service. A nil provider makes every activity return
// an *llm.ErrConfiguration without calling anything.
func NewService(provider llm.Provider, catalog *content.Catalog) *Service {
	s := &Service{provider: provider, catalog: catalog}
	if provider == nil {
		s.cfgErr = &llm.ErrConfiguration{Reason: "no content generator"}
	}
	return s
}

// Unconfigured returns a Service that reports err for every activity.
func Unconfigured(err error, catalog *content.Catalog) *Service {
	return &Service{catalog: catalog, cfgErr: err}
}

// Catalog returns the locale content the service falls back to.
func (s *Service) Catalog() *content.Catalog { return s.catalog }

// ConfigErr returns the configuration failure, or nil when usable.
func (s *Service) ConfigErr() error { return s.cfgErr }

// Signs lists the twelve signs in calendar order.
func (s *Service) Signs() []Sign {
	signs := make([]Sign, 0, len(content.ZodiacIDs))
	for _, id := range content.ZodiacIDs {
		signs = append(signs, Sign{ID: id, Name: s.catalog.ZodiacName(id)})
	}
	return signs
}

// Sign resolves a sign ID.
func (s *Service) Sign(id string) (Sign, error) {
	name := s.catalog.ZodiacName(id)
	if name == "" {
		return Sign{}, fmt.Errorf("%w: %q", ErrUnknownSign, id)
	}
	return Sign{ID: strings.ToLower(strings.TrimSpace(id)), Name: name}, nil
}

// Horoscope writes a short cheeky reading for sign.
func (s *Service) Horoscope(ctx context.Context, signID string) (Horoscope, error) {
	sign, err := s.Sign(signID)
	if err != nil {
		return Horoscope{}, err
	}
	text, err := s.text(ctx, llm.PurposeHoroscope, horoscopePrompt(s.language(), sign))
	if err != nil {
		if s.degrade(ctx, llm.PurposeHoroscope, err) != nil {
			return Horoscope{}, err
		}
		return Horoscope{Sign: sign, Reading: s.catalog.Fallbacks.Horoscope, Fallback: true}, nil
	}
	return Horoscope{Sign: sign, Reading: text}, nil
}

// LuckyColor picks today's lucky color with a funny reason.
func (s *Service) LuckyColor(ctx context.Context) (LuckyColor, error) {
	out, err := structured[LuckyColor](ctx, s, llm.PurposeLuckyColor, luckyColorPrompt(s.language()), luckyColorSchema)
	if err == nil && (strings.TrimSpace(out.Color) == "" || strings.TrimSpace(out.Reason) == "") {
		err = &llm.ErrInvalidResponse{Err: errors.New("blank color")}
	}
	if err != nil {
		if s.degrade(ctx, llm.PurposeLuckyColor, err) != nil {
			return LuckyColor{}, err
		}
		fb := s.catalog.Fallbacks.LuckyColor
		return LuckyColor{Color: fb.Color, Reason: fb.Reason, Fallback: true}, nil
	}
	return LuckyColor{Color: out.Color, Reason: out.Reason}, nil
}

// Joke tells a short dad joke.
func (s *Service) Joke(ctx context.Context) (Joke, error) {
	text, err := s.text(ctx, llm.PurposeJoke, jokePrompt(s.language()))
	if err != nil {
		if s.degrade(ctx, llm.PurposeJoke, err) != nil {
			return Joke{}, err
		}
		return Joke{Text: s.catalog.Fallbacks.Joke, Fallback: true}, nil
	}
	return Joke{Text: text}, nil
}

// Compliment pays a short, specific compliment.
func (s *Service) Compliment(ctx context.Context) (Compliment, error) {
	text, err := s.text(ctx, llm.PurposeCompliment, complimentPrompt(s.language()))
	if err != nil {
		if s.degrade(ctx, llm.PurposeCompliment, err) != nil {
			return Compliment{}, err
		}
		return Compliment{Text: s.catalog.Fallbacks.Compliment, Fallback: true}, nil
	}
	return Compliment{Text: text}, nil
}

// PsychTest creates one situation with four interpreted options.
func (s *Service) PsychTest(ctx context.Context) (PsychTest, error) {
	out, err := structured[PsychTest](ctx, s, llm.PurposePsychTest, psychTestPrompt(s.language()), psychTestSchema)
	if err == nil {
		err = validatePsychTest(out)
	}
	if err != nil {
		if s.degrade(ctx, llm.PurposePsychTest, err) != nil {
			return PsychTest{}, err
		}
		return s.fallbackPsychTest(), nil
	}
	out.Fallback = false
	return out, nil
}

// Decide picks one of two options with a silly reason.
func (s *Service) Decide(ctx context.Context, optionA, optionB string) (Decision, error) {
	optionA, optionB = strings.TrimSpace(optionA), strings.TrimSpace(optionB)
	if optionA == "" || optionB == "" {
		return Decision{}, ErrMissingOption
	}
	d := Decision{OptionA: optionA, OptionB: optionB}

	text, err := s.text(ctx, llm.PurposeDecision, decisionPrompt(s.language(), optionA, optionB))
	if err != nil {
		if s.degrade(ctx, llm.PurposeDecision, err) != nil {
			return Decision{}, err
		}
		d.Verdict = s.catalog.Fallbacks.Decision
		d.Fallback = true
		return d, nil
	}
	d.Verdict = text
	return d, nil
}

func (s *Service) language() string {
	return s.catalog.LanguageName()
}

// text runs a plain-text request. A blank reply is a malformed response.
func (s *Service) text(ctx context.Context, purpose string, req llm.Request) (string, error) {
	if s.cfgErr != nil {
		return "", s.cfgErr
	}
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		return "", err
	}
	text := llm.StripCodeFence(resp.Text())
	if text == "" {
		return "", &llm.ErrInvalidResponse{Err: errors.New("empty reply")}
	}
	return text, nil
}

func structured[T any](ctx context.Context, s *Service, purpose string, req llm.Request, schema *llm.Schema) (T, error) {
	var zero T
	if s.cfgErr != nil {
		return zero, s.cfgErr
	}
	req.Schema = schema
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, purpose), req)
	if err != nil {
		return zero, err
	}
	return llm.Decode[T](resp)
}

// degrade decides whether err is recoverable with canned content. It returns
// err back for configuration failures, which are never papered over.
func (s *Service) degrade(ctx context.Context, purpose string, err error) error {
	if llm.IsConfiguration(err) {
		return err
	}
	slog.WarnContext(ctx, "activity fell back to canned content", "purpose", purpose, "error", err)
	return nil
}

func (s *Service) fallbackPsychTest() PsychTest {
	fb := s.catalog.Fallbacks.PsychTest
	pt := PsychTest{Question: fb.Question, Fallback: true}
	for _, o := range fb.Options {
		pt.Options = append(pt.Options, PsychOption{ID: o.ID, Text: o.Text, Interpretation: o.Interpretation})
	}
	return pt
}

func validatePsychTest(pt PsychTest) error {
	if strings.TrimSpace(pt.Question) == "" || len(pt.Options) < 2 {
		return &llm.ErrInvalidResponse{Err: errors.New("psych test needs a question and options")}
	}
	for _, o := range pt.Options {
		if strings.TrimSpace(o.Text) == "" || strings.TrimSpace(o.Interpretation) == "" {
			return &llm.ErrInvalidResponse{Err: fmt.Errorf("psych test option %q is incomplete", o.ID)}
		}
	}
	return nil
}
