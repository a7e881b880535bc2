package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/laohu/zhkit/internal/audio"
	"codeberg.org/laohu/zhkit/internal/testutil"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

func TestCheckRegistryClean(t *testing.T) {
	assert.Empty(t, CheckRegistry(), "curated registry should pass its own lint")
}

func TestCheckVocabFileClean(t *testing.T) {
	file := &vocab.File{
		Columns: []string{"radical", "pinyin", "english"},
		Entries: []vocab.Entry{
			{Hanzi: "水", Fields: map[string]string{"pinyin": "shuǐ", "english": "water"}},
			{Hanzi: "绿", Fields: map[string]string{"pinyin": "lǜ", "english": "green"}},
		},
	}

	assert.Empty(t, CheckVocabFile("radicals.tsv", file))
}

func TestCheckVocabFileMissingPinyinColumn(t *testing.T) {
	file := &vocab.File{
		Columns: []string{"radical", "english"},
		Entries: []vocab.Entry{{Hanzi: "水", Fields: map[string]string{"english": "water"}}},
	}

	issues := CheckVocabFile("radicals.tsv", file)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "pinyin")
}

func TestCheckVocabFileToneNumerals(t *testing.T) {
	file := &vocab.File{
		Columns: []string{"hanzi", "pinyin"},
		Entries: []vocab.Entry{
			// Numbered convention leaked into the word list
			{Hanzi: "水", Fields: map[string]string{"pinyin": "shui3"}},
		},
	}

	issues := CheckVocabFile("words.tsv", file)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "tone numeral")
}

func TestCheckVocabFileBadCells(t *testing.T) {
	file := &vocab.File{
		Columns: []string{"hanzi", "pinyin"},
		Entries: []vocab.Entry{
			{Hanzi: "water", Fields: map[string]string{"pinyin": "shuǐ"}},
			{Hanzi: "火", Fields: map[string]string{"pinyin": ""}},
		},
	}

	issues := CheckVocabFile("words.tsv", file)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "not Chinese")
	assert.Contains(t, issues[1].Message, "empty pinyin")
}

func TestCheckAudioCoverage(t *testing.T) {
	root := testutil.CreateAudioLibrary(t, t.TempDir(), "shui3")
	lib := audio.NewLibrary(root)

	file := &vocab.File{
		Columns: []string{"hanzi", "pinyin"},
		Entries: []vocab.Entry{
			{Hanzi: "水", Fields: map[string]string{"pinyin": "shuǐ"}},
			{Hanzi: "火", Fields: map[string]string{"pinyin": "huǒ"}},
		},
	}

	issues := CheckAudioCoverage("words.tsv", file, lib)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "huǒ")
	assert.Contains(t, issues[0].Message, "huo3")
}

func TestIssueString(t *testing.T) {
	issue := Issue{Subject: "words.tsv", Message: "something is off"}
	assert.Equal(t, "words.tsv: something is off", issue.String())
}
