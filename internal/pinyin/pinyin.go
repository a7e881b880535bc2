package pinyin

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// toneMarks maps each diacritic pinyin vowel to its base letter and tone
// number. Neutral tone syllables carry no mark and default to tone 5.
var toneMarks = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
}

// NeutralTone is the tone number assigned to unmarked syllables.
const NeutralTone = 5

// Numbered converts a tonal pinyin syllable like "yī" to the numbered form
// "yi1" used by audio filenames. The input is NFC-normalized and lower-cased
// first, so both precomposed and combining-mark spellings are accepted. The
// "v" spelling is accepted as an input alias for "ü". Unmarked syllables get
// the neutral tone digit 5.
func Numbered(syllable string) string {
	s := norm.NFC.String(strings.ToLower(strings.TrimSpace(syllable)))
	tone := NeutralTone
	var b strings.Builder
	for _, r := range s {
		if m, ok := toneMarks[r]; ok {
			tone = m.tone
			b.WriteRune(m.base)
			continue
		}
		if r == 'v' {
			b.WriteRune('ü')
			continue
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s%d", b.String(), tone)
}

// Tone returns the tone number (1-5) of a tonal pinyin syllable.
func Tone(syllable string) int {
	s := norm.NFC.String(strings.ToLower(syllable))
	for _, r := range s {
		if m, ok := toneMarks[r]; ok {
			return m.tone
		}
	}
	return NeutralTone
}

// Syllables splits a multi-syllable pinyin string into single syllables.
// Syllable boundaries are whitespace and apostrophes ("xi'an").
func Syllables(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\'' || r == '’'
	})
}

// Valid reports whether a numbered syllable follows the audio filename
// convention: lower-case letters (plus ü) followed by a single tone digit
// 1-5.
func Valid(numbered string) bool {
	runes := []rune(numbered)
	if len(runes) < 2 {
		return false
	}
	last := runes[len(runes)-1]
	if last < '1' || last > '5' {
		return false
	}
	for _, r := range runes[:len(runes)-1] {
		if (r < 'a' || r > 'z') && r != 'ü' {
			return false
		}
	}
	return true
}

// AudioFileName builds the audio library filename for a tonal syllable,
// e.g. "hǎo" with ext "mp3" becomes "hao3.mp3".
func AudioFileName(syllable, ext string) string {
	return Numbered(syllable) + "." + strings.TrimPrefix(ext, ".")
}

// TonelessFileName strips the tone digit from a numbered filename. Some
// audio corpora store neutral tone files without the trailing 5.
func TonelessFileName(name string) string {
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i:]
		name = name[:i]
	}
	runes := []rune(name)
	if len(runes) > 0 {
		if last := runes[len(runes)-1]; last >= '1' && last <= '5' {
			name = string(runes[:len(runes)-1])
		}
	}
	return name + ext
}
