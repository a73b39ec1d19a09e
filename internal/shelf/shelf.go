// Package shelf is the catalog of cards shown on the home screen.
package shelf

import (
	"fmt"

	"github.com/abhisek/wondershelf/internal/content"
)

// Kind selects which activity a card opens.
type Kind string

const (
	KindHoroscope  Kind = "horoscope"
	KindLuckyColor Kind = "lucky-color"
	KindJoke       Kind = "joke"
	KindCompliment Kind = "compliment"
	KindPsychTest  Kind = "psych-test"
	KindDecision   Kind = "decision"
	KindStory      Kind = "story"
)

// Card is one clickable item on a shelf.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Kind     Kind   `json:"kind"`

	// From and To are the card's gradient colors as hex strings.
	From string `json:"from"`
	To   string `json:"to"`

	// Theme pins a story card to one theme.
	Theme string `json:"theme,omitempty"`
}

// Shelf is a titled row of cards.
type Shelf struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// Default returns the three shelves. The Enchanted Forest card takes its
// theme from the catalog.
func Default(c *content.Catalog) []Shelf {
	return []Shelf{
		{
			Title: "Playful Editions",
			Cards: []Card{
				{ID: "1", Title: "Daily Horoscope", Subtitle: "What do the stars say?", Kind: KindHoroscope, From: "#6366F1", To: "#9333EA"},
				{ID: "2", Title: "Lucky Color", Subtitle: "Your charm for today", Kind: KindLuckyColor, From: "#EC4899", To: "#FB7185"},
				{ID: "3", Title: "Dad Joke", Subtitle: "Warning: Cringe", Kind: KindJoke, From: "#FACC15", To: "#F97316"},
			},
		},
		{
			Title: "Know Yourself",
			Cards: []Card{
				{ID: "4", Title: "Psych Test", Subtitle: "Discover yourself", Kind: KindPsychTest, From: "#60A5FA", To: "#67E8F9"},
				{ID: "5", Title: "Decision Maker", Subtitle: "Stuck? Let AI decide", Kind: KindDecision, From: "#10B981", To: "#2DD4BF"},
			},
		},
		{
			Title: "Story Time",
			Cards: []Card{
				{ID: "6", Title: "Story Adventure", Subtitle: "Ten choices, one you", Kind: KindStory, From: "#F59E0B", To: "#EF4444"},
				{ID: "7", Title: "Compliment", Subtitle: "You deserve it", Kind: KindCompliment, From: "#F472B6", To: "#C084FC"},
				{ID: "8", Title: "Enchanted Forest", Subtitle: c.EnchantedForestTheme, Kind: KindStory, From: "#15803D", To: "#4ADE80", Theme: c.EnchantedForestTheme},
			},
		},
	}
}

// Cards flattens shelves in display order.
func Cards(shelves []Shelf) []Card {
	var out []Card
	for _, s := range shelves {
		out = append(out, s.Cards...)
	}
	return out
}

// Find returns the card with id.
func Find(shelves []Shelf, id string) (Card, error) {
	for _, s := range shelves {
		for _, c := range s.Cards {
			if c.ID == id {
				return c, nil
			}
		}
	}
	return Card{}, fmt.Errorf("shelf: no card %q", id)
}
