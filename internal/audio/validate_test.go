package audio

import "testing"

func TestValidateMandarinText(t *testing.T) {
	valid := []string{"水", "你好", "中国人", "绿茶 green"}
	for _, text := range valid {
		if err := ValidateMandarinText(text); err != nil {
			t.Errorf("ValidateMandarinText(%q) = %v, want nil", text, err)
		}
	}

	invalid := []string{"", "   ", "hello", "123", "привет"}
	for _, text := range invalid {
		if err := ValidateMandarinText(text); err == nil {
			t.Errorf("ValidateMandarinText(%q) = nil, want error", text)
		}
	}
}

func TestValidateSyllable(t *testing.T) {
	valid := []string{"hǎo", "ma", "lǜ", "zhōng", "er"}
	for _, syl := range valid {
		if err := ValidateSyllable(syl); err != nil {
			t.Errorf("ValidateSyllable(%q) = %v, want nil", syl, err)
		}
	}

	invalid := []string{"", "  ", "h3o", "好", "hao!"}
	for _, syl := range invalid {
		if err := ValidateSyllable(syl); err == nil {
			t.Errorf("ValidateSyllable(%q) = nil, want error", syl)
		}
	}
}
