package shelf

import (
	"github.com/abhisek/wondershelf/internal/activity"
	"github.com/abhisek/wondershelf/internal/screen"
	"github.com/abhisek/wondershelf/internal/screens/decision"
	"github.com/abhisek/wondershelf/internal/screens/horoscope"
	"github.com/abhisek/wondershelf/internal/screens/placeholder"
	"github.com/abhisek/wondershelf/internal/screens/psychtest"
	"github.com/abhisek/wondershelf/internal/screens/reading"
	storyscreen "github.com/abhisek/wondershelf/internal/screens/story"
	"github.com/abhisek/wondershelf/internal/shelf"
	"github.com/abhisek/wondershelf/internal/story"
)

// Deps are the services cards are opened with.
type Deps struct {
	Shelves    []shelf.Shelf
	Activities *activity.Service

	// Generator is nil when no provider is configured.
	Generator    story.Generator
	StoryOptions []story.FlowOption
}

// Open builds the screen for card. Without a configured provider every card
// explains the configuration failure instead.
func Open(deps Deps, card shelf.Card) screen.Screen {
	svc := deps.Activities
	if err := svc.ConfigErr(); err != nil {
		return placeholder.Unconfigured(card.Title, err)
	}

	switch card.Kind {
	case shelf.KindHoroscope:
		return horoscope.New(svc)
	case shelf.KindLuckyColor:
		return reading.New(card.Title, reading.LuckyColor(svc), true)
	case shelf.KindJoke:
		return reading.New(card.Title, reading.Joke(svc), true)
	case shelf.KindCompliment:
		return reading.New(card.Title, reading.Compliment(svc), true)
	case shelf.KindPsychTest:
		return psychtest.New(svc)
	case shelf.KindDecision:
		return decision.New(svc)
	case shelf.KindStory:
		opts := append([]story.FlowOption(nil), deps.StoryOptions...)
		if card.Theme != "" {
			opts = append(opts, story.WithLockedTheme(card.Theme))
		}
		return storyscreen.New(card.Title, deps.Generator, opts...)
	}
	return placeholder.New(card.Title, "╌╌ Coming Soon ╌╌")
}
