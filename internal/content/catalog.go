// Package content holds the localized canned content shown when generation
// fails, plus the locale the generator is asked to write in.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no configured locale matches.
const DefaultLocale = "vi"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// ZodiacIDs lists the twelve western signs in calendar order.
var ZodiacIDs = []string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

// Catalog is the content for one locale.
type Catalog struct {
	Locale               string            `yaml:"locale"`
	EnchantedForestTheme string            `yaml:"enchantedForestTheme"`
	Zodiac               map[string]string `yaml:"zodiac"`
	Fallbacks            Fallbacks         `yaml:"fallbacks"`

	tag language.Tag
}

// Fallbacks are the canned results returned in place of generated content.
type Fallbacks struct {
	Horoscope   string      `yaml:"horoscope"`
	LuckyColor  LuckyColor  `yaml:"luckyColor"`
	Joke        string      `yaml:"joke"`
	Compliment  string      `yaml:"compliment"`
	Decision    string      `yaml:"decision"`
	PsychTest   PsychTest   `yaml:"psychTest"`
	StoryResult StoryResult `yaml:"storyResult"`
}

type LuckyColor struct {
	Color  string `yaml:"color"`
	Reason string `yaml:"reason"`
}

type PsychTest struct {
	Question string        `yaml:"question"`
	Options  []PsychOption `yaml:"options"`
}

type PsychOption struct {
	ID             string `yaml:"id"`
	Text           string `yaml:"text"`
	Interpretation string `yaml:"interpretation"`
}

type StoryResult struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	Traits         []string `yaml:"traits"`
	CompatibleWith string   `yaml:"compatibleWith"`
}

// Tag returns the catalog's language tag.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// LanguageName returns the catalog language named in English, e.g.
// "Vietnamese". Prompts use it to pick the output language.
func (c *Catalog) LanguageName() string {
	return display.English.Languages().Name(c.tag)
}

// NativeLanguageName returns the language named in itself, e.g. "Tiếng Việt".
func (c *Catalog) NativeLanguageName() string {
	return display.Self.Name(c.tag)
}

// ZodiacName returns the localized name for a sign ID, or "" if unknown.
func (c *Catalog) ZodiacName(id string) string {
	return c.Zodiac[strings.ToLower(strings.TrimSpace(id))]
}

// Supported returns the locales with an embedded catalog.
func Supported() []language.Tag {
	entries, err := fs.Glob(embeddedLocales, "locales/*.yaml")
	if err != nil {
		return nil
	}
	sort.Strings(entries)
	tags := make([]language.Tag, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e), ".yaml")
		if tag, err := language.Parse(name); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MatchLocale picks the supported locale closest to the requested one
// ("vi-VN" → "vi", "en-GB" → "en"). Unparseable or unknown locales fall
// back to DefaultLocale.
func MatchLocale(requested string) language.Tag {
	supported := Supported()
	// The first tag is the matcher's default; keep it the default locale.
	sort.SliceStable(supported, func(i, j int) bool {
		return supported[i].String() == DefaultLocale && supported[j].String() != DefaultLocale
	})

	want, err := language.Parse(strings.TrimSpace(requested))
	if err != nil {
		return supported[0]
	}
	_, idx, conf := language.NewMatcher(supported).Match(want)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// Load returns the embedded catalog best matching locale. When overridePath
// is set, that YAML file is layered on top; keys it omits keep their embedded
// values.
func Load(locale, overridePath string) (*Catalog, error) {
	tag := MatchLocale(locale)

	data, err := embeddedLocales.ReadFile("locales/" + tag.String() + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog %s: %w", tag, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog %s: %w", tag, err)
	}

	if overridePath != "" {
		over, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("read catalog override: %w", err)
		}
		if err := yaml.Unmarshal(over, &c); err != nil {
			return nil, fmt.Errorf("parse catalog override %s: %w", overridePath, err)
		}
	}

	c.tag = tag
	c.Locale = tag.String()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustLoad is Load for the embedded catalogs, which are known to be valid.
func MustLoad(locale string) *Catalog {
	c, err := Load(locale, "")
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}

	f := c.Fallbacks
	check("enchantedForestTheme", c.EnchantedForestTheme)
	check("fallbacks.horoscope", f.Horoscope)
	check("fallbacks.luckyColor.color", f.LuckyColor.Color)
	check("fallbacks.luckyColor.reason", f.LuckyColor.Reason)
	check("fallbacks.joke", f.Joke)
	check("fallbacks.compliment", f.Compliment)
	check("fallbacks.decision", f.Decision)
	check("fallbacks.psychTest.question", f.PsychTest.Question)
	check("fallbacks.storyResult.title", f.StoryResult.Title)
	check("fallbacks.storyResult.description", f.StoryResult.Description)
	check("fallbacks.storyResult.compatibleWith", f.StoryResult.CompatibleWith)
	for _, id := range ZodiacIDs {
		check("zodiac."+id, c.Zodiac[id])
	}
	if len(f.PsychTest.Options) < 2 {
		missing = append(missing, "fallbacks.psychTest.options")
	}
	if len(f.StoryResult.Traits) == 0 {
		missing = append(missing, "fallbacks.storyResult.traits")
	}

	if len(missing) > 0 {
		return fmt.Errorf("catalog %s: missing %s", c.Locale, strings.Join(missing, ", "))
	}
	return nil
}
