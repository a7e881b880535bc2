package lint

import (
	"fmt"
	"unicode"

	"codeberg.org/laohu/zhkit/internal/audio"
	"codeberg.org/laohu/zhkit/internal/pinyin"
	"codeberg.org/laohu/zhkit/internal/strokes"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

// Issue is one lint finding. Subject names what the finding is about (a
// registry source, a vocabulary row), Message says what is wrong.
type Issue struct {
	Subject string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Subject, i.Message)
}

// CheckRegistry validates the curated stroke-order source registry: every
// entry must carry a name, a description and well-formed https URLs.
func CheckRegistry() []Issue {
	var issues []Issue
	for _, src := range strokes.Sources {
		if err := src.Validate(); err != nil {
			subject := src.Name
			if subject == "" {
				subject = "registry"
			}
			issues = append(issues, Issue{Subject: subject, Message: err.Error()})
		}
	}
	return issues
}

// CheckVocabFile validates a vocabulary file against the conventions the
// rest of the tool relies on:
//
//   - a pinyin column must exist
//   - pinyin cells use diacritic tone marks, never tone numerals
//   - every syllable converts to a well-formed numbered syllable
//   - hanzi cells contain Han characters
func CheckVocabFile(path string, file *vocab.File) []Issue {
	var issues []Issue

	if !file.HasColumn(vocab.ColPinyin) {
		issues = append(issues, Issue{
			Subject: path,
			Message: fmt.Sprintf("missing %q column", vocab.ColPinyin),
		})
		return issues
	}

	for _, entry := range file.Entries {
		subject := fmt.Sprintf("%s: %s", path, entry.Hanzi)

		if !isHan(entry.Hanzi) {
			issues = append(issues, Issue{
				Subject: subject,
				Message: "first column is not Chinese text",
			})
		}

		tonal := entry.Pinyin()
		if tonal == "" {
			issues = append(issues, Issue{Subject: subject, Message: "empty pinyin cell"})
			continue
		}

		for _, syl := range pinyin.Syllables(tonal) {
			if hasToneDigit(syl) {
				issues = append(issues, Issue{
					Subject: subject,
					Message: fmt.Sprintf("syllable %q uses a tone numeral; vocabulary files use diacritics", syl),
				})
				continue
			}
			if numbered := pinyin.Numbered(syl); !pinyin.Valid(numbered) {
				issues = append(issues, Issue{
					Subject: subject,
					Message: fmt.Sprintf("syllable %q does not convert to a valid numbered syllable (got %q)", syl, numbered),
				})
			}
		}
	}

	return issues
}

// CheckAudioCoverage reports vocabulary syllables that have no clip in the
// audio library. This catches the drift between the diacritic convention of
// the word lists and the numbered convention of the audio filenames.
func CheckAudioCoverage(path string, file *vocab.File, lib *audio.Library) []Issue {
	var tonals []string
	for _, entry := range file.Entries {
		if p := entry.Pinyin(); p != "" {
			tonals = append(tonals, p)
		}
	}

	var issues []Issue
	for _, syl := range lib.Missing(tonals) {
		issues = append(issues, Issue{
			Subject: path,
			Message: fmt.Sprintf("no audio clip for syllable %q (%s)", syl, pinyin.Numbered(syl)),
		})
	}
	return issues
}

func isHan(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.In(r, unicode.Han) {
			return false
		}
	}
	return true
}

func hasToneDigit(syllable string) bool {
	for _, r := range syllable {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
