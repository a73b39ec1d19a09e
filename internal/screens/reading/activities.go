package reading

import (
	"context"
	"fmt"

	"github.com/abhisek/wondershelf/internal/activity"
)

// Joke fetches a dad joke.
func Joke(svc *activity.Service) Fetch {
	return func(ctx context.Context) (Reading, error) {
		j, err := svc.Joke(ctx)
		if err != nil {
			return Reading{}, err
		}
		return Reading{Body: j.Text, Fallback: j.Fallback}, nil
	}
}

// Compliment fetches a compliment.
func Compliment(svc *activity.Service) Fetch {
	return func(ctx context.Context) (Reading, error) {
		c, err := svc.Compliment(ctx)
		if err != nil {
			return Reading{}, err
		}
		return Reading{Body: c.Text, Fallback: c.Fallback}, nil
	}
}

// LuckyColor fetches today's color with its swatch.
func LuckyColor(svc *activity.Service) Fetch {
	return func(ctx context.Context) (Reading, error) {
		c, err := svc.LuckyColor(ctx)
		if err != nil {
			return Reading{}, err
		}
		return Reading{Heading: c.Color, Body: c.Reason, Swatch: swatch(c.Color), Fallback: c.Fallback}, nil
	}
}

// Horoscope fetches the reading for one sign.
func Horoscope(svc *activity.Service, signID string) Fetch {
	return func(ctx context.Context) (Reading, error) {
		h, err := svc.Horoscope(ctx, signID)
		if err != nil {
			return Reading{}, err
		}
		return Reading{Heading: h.Sign.Name, Body: h.Reading, Fallback: h.Fallback}, nil
	}
}

// Decision asks the oracle to pick between a and b.
func Decision(svc *activity.Service, a, b string) Fetch {
	return func(ctx context.Context) (Reading, error) {
		d, err := svc.Decide(ctx, a, b)
		if err != nil {
			return Reading{}, err
		}
		return Reading{
			Heading:  fmt.Sprintf("%s  vs  %s", d.OptionA, d.OptionB),
			Body:     d.Verdict,
			Fallback: d.Fallback,
		}, nil
	}
}

// swatch maps well-known color words to a hex value for the preview block.
// Unknown names get no swatch.
func swatch(name string) string {
	switch normalizeColor(name) {
	case "red", "đỏ":
		return "#EF4444"
	case "orange", "cam":
		return "#F97316"
	case "yellow", "vàng":
		return "#FACC15"
	case "green", "xanh lá":
		return "#22C55E"
	case "blue", "xanh dương", "xanh":
		return "#3B82F6"
	case "purple", "tím":
		return "#A855F7"
	case "pink", "hồng":
		return "#F472B6"
	case "gray", "grey", "xám", "xám xịt":
		return "#6B7280"
	case "black", "đen":
		return "#111827"
	case "white", "trắng":
		return "#F8FAFC"
	}
	return ""
}
