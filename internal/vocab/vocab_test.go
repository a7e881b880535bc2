package vocab

import (
	"path/filepath"
	"testing"

	"codeberg.org/laohu/zhkit/internal/testutil"
)

func TestRead(t *testing.T) {
	path := testutil.WriteVocabFile(t, t.TempDir(),
		[]string{"radical", "pinyin", "english"},
		[]string{"水", "shuǐ", "water"},
		[]string{"火", "huǒ", "fire"},
		[]string{"", "", ""},
		[]string{"木", "mù", "tree"},
	)

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(file.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(file.Columns))
	}
	if file.Columns[0] != "radical" {
		t.Errorf("Expected first column 'radical', got %q", file.Columns[0])
	}

	// The blank row is skipped
	if len(file.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(file.Entries))
	}

	first := file.Entries[0]
	if first.Hanzi != "水" {
		t.Errorf("Expected hanzi 水, got %q", first.Hanzi)
	}
	if first.Pinyin() != "shuǐ" {
		t.Errorf("Expected pinyin 'shuǐ', got %q", first.Pinyin())
	}
	if first.English() != "water" {
		t.Errorf("Expected english 'water', got %q", first.English())
	}
}

func TestReadShortRows(t *testing.T) {
	path := testutil.WriteVocabFile(t, t.TempDir(),
		[]string{"hanzi", "pinyin", "english"},
		[]string{"你好", "nǐ hǎo"},
	)

	file, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(file.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(file.Entries))
	}
	if file.Entries[0].English() != "" {
		t.Errorf("Expected empty english for short row, got %q", file.Entries[0].English())
	}
}

func TestReadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.tsv")
	testutil.CreateTestFile(t, path, []byte(""))

	if _, err := Read(path); err == nil {
		t.Error("Expected error for empty file")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDetails(t *testing.T) {
	entry := Entry{
		Hanzi: "水",
		Fields: map[string]string{
			"radical": "水",
			"pinyin":  "shuǐ",
			"english": "water",
		},
	}
	columns := []string{"radical", "pinyin", "english"}

	want := "shuǐ  ·  water"
	if got := entry.Details(columns); got != want {
		t.Errorf("Details() = %q, want %q", got, want)
	}
}

func TestDetailsSkipsEmptyCells(t *testing.T) {
	entry := Entry{
		Hanzi: "火",
		Fields: map[string]string{
			"radical": "火",
			"pinyin":  "huǒ",
			"english": "",
		},
	}
	columns := []string{"radical", "pinyin", "english"}

	if got := entry.Details(columns); got != "huǒ" {
		t.Errorf("Details() = %q, want 'huǒ'", got)
	}
}

func TestHasColumn(t *testing.T) {
	file := &File{Columns: []string{"radical", "pinyin", "english"}}

	if !file.HasColumn("pinyin") {
		t.Error("Expected HasColumn('pinyin') to be true")
	}
	if file.HasColumn("audio") {
		t.Error("Expected HasColumn('audio') to be false")
	}
}
