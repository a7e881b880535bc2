package strokes

import (
	"fmt"
	"net/url"
)

// Source describes a third-party stroke-order data project. These projects
// are independent systems maintained elsewhere; we only consume their
// published per-character files.
type Source struct {
	Name        string
	Description string
	Homepage    string
	// RawPattern is a fmt pattern producing the raw file URL for a
	// character, with the decimal Unicode codepoint as the only verb.
	// Empty for sources that do not publish per-character SVGs.
	RawPattern string
}

// Sources is the curated registry of stroke-order data projects.
var Sources = []Source{
	{
		Name:        "animCJK",
		Description: "Animated SVG stroke order for simplified and traditional characters, one SVG per codepoint",
		Homepage:    "https://github.com/parsimonjun/animCJK",
		RawPattern:  "https://raw.githubusercontent.com/parsimonjun/animCJK/master/svgsZhHans/%d.svg",
	},
	{
		Name:        "makemeahanzi",
		Description: "Free stroke order and decomposition data derived from Arphic fonts",
		Homepage:    "https://github.com/skishore/makemeahanzi",
		RawPattern:  "https://raw.githubusercontent.com/skishore/makemeahanzi/master/svgs/%d.svg",
	},
	{
		Name:        "hanzi-writer-data",
		Description: "Stroke order data for Hanzi Writer, repackaged from makemeahanzi as JSON",
		Homepage:    "https://github.com/chanind/hanzi-writer-data",
	},
	{
		Name:        "kanjivg",
		Description: "Stroke order SVGs for kanji; covers many hanzi shared with Japanese",
		Homepage:    "https://github.com/KanjiVG/kanjivg",
	},
	{
		Name:        "cjkvi-ids",
		Description: "Ideographic description sequences (character decomposition), no stroke graphics",
		Homepage:    "https://github.com/cjkvi/cjkvi-ids",
	},
	{
		Name:        "mp3-chinese-pinyin-sound",
		Description: "Recorded pinyin syllable audio, {pinyin}{tone}.mp3 naming, male and female voices",
		Homepage:    "https://github.com/davinfifield/mp3-chinese-pinyin-sound",
	},
}

// SourceByName returns the registered source with the given name.
func SourceByName(name string) (Source, error) {
	for _, s := range Sources {
		if s.Name == name {
			return s, nil
		}
	}
	return Source{}, fmt.Errorf("unknown stroke-order source: %s", name)
}

// FetchableSources returns the sources that publish per-character SVGs.
func FetchableSources() []Source {
	var out []Source
	for _, s := range Sources {
		if s.RawPattern != "" {
			out = append(out, s)
		}
	}
	return out
}

// RawURL builds the raw SVG URL for a character.
func (s Source) RawURL(char rune) (string, error) {
	if s.RawPattern == "" {
		return "", fmt.Errorf("source %s does not publish per-character SVGs", s.Name)
	}
	return fmt.Sprintf(s.RawPattern, char), nil
}

// Validate checks that the source's URLs are well-formed. This is the
// registry half of the lint command.
func (s Source) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("source has no name")
	}
	if s.Description == "" {
		return fmt.Errorf("source %s has no description", s.Name)
	}
	for _, raw := range []string{s.Homepage, s.RawPattern} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("source %s has a malformed URL %q: %w", s.Name, raw, err)
		}
		if u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("source %s has a non-https URL %q", s.Name, raw)
		}
	}
	return nil
}
