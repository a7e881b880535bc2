package audio

import (
	"fmt"
	"strings"
	"unicode"

	"codeberg.org/laohu/zhkit/internal/pinyin"
)

// ValidateMandarinText validates that the input text contains Chinese
// characters. Word synthesis sends hanzi to the TTS engine, not pinyin.
func ValidateMandarinText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	hasHan := false
	for _, r := range text {
		if unicode.In(r, unicode.Han) {
			hasHan = true
			break
		}
	}

	if !hasHan {
		return fmt.Errorf("text must contain Chinese characters")
	}

	return nil
}

// ValidateSyllable validates a tonal pinyin syllable before it is used as a
// library key. The numbered form must follow the filename convention.
func ValidateSyllable(syllable string) error {
	if strings.TrimSpace(syllable) == "" {
		return fmt.Errorf("syllable cannot be empty")
	}
	numbered := pinyin.Numbered(syllable)
	if !pinyin.Valid(numbered) {
		return fmt.Errorf("%q is not a valid pinyin syllable (numbered form %q)", syllable, numbered)
	}
	return nil
}
