package cards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/laohu/zhkit/internal/vocab"
)

func TestCardRect(t *testing.T) {
	x, y, w, h := cardRect(0, 0)
	if x != marginX || y != marginY {
		t.Errorf("First card at (%f, %f), want (%f, %f)", x, y, marginX, marginY)
	}
	if w != cardW || h != cardH {
		t.Errorf("Card size (%f, %f), want (%f, %f)", w, h, cardW, cardH)
	}

	// Last card's far edge meets the page margin
	x, y, w, h = cardRect(cols-1, rows-1)
	if right := x + w; right != pageW-marginX {
		t.Errorf("Right edge at %f, want %f", right, pageW-marginX)
	}
	if bottom := y + h; bottom != pageH-marginY {
		t.Errorf("Bottom edge at %f, want %f", bottom, pageH-marginY)
	}
}

func TestMirrorCol(t *testing.T) {
	if got := mirrorCol(0); got != 1 {
		t.Errorf("mirrorCol(0) = %d, want 1", got)
	}
	if got := mirrorCol(1); got != 0 {
		t.Errorf("mirrorCol(1) = %d, want 0", got)
	}
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(present, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Configured path wins even when it does not exist
	if got := firstExisting("/configured/font.ttf", []string{present}); got != "/configured/font.ttf" {
		t.Errorf("firstExisting = %q, want configured path", got)
	}

	if got := firstExisting("", []string{"/nope.ttf", present}); got != present {
		t.Errorf("firstExisting = %q, want %q", got, present)
	}

	if got := firstExisting("", []string{"/nope.ttf"}); got != "" {
		t.Errorf("firstExisting = %q, want empty", got)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "cards.pdf")

	file := &vocab.File{
		Columns: []string{"radical", "pinyin", "english"},
		Entries: []vocab.Entry{
			{Hanzi: "水", Fields: map[string]string{"radical": "水", "pinyin": "shui", "english": "water"}},
			{Hanzi: "火", Fields: map[string]string{"radical": "火", "pinyin": "huo", "english": "fire"}},
		},
	}

	gen := NewGenerator(&Options{Output: output})
	if err := gen.Generate(file); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("Output does not look like a PDF")
	}
}

func TestGenerateBadFontFallsBack(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "cards.pdf")

	// Not a TTF; font registration fails and the sheets degrade to the
	// core font instead of poisoning the whole document
	badFont := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(badFont, []byte("not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	file := &vocab.File{
		Columns: []string{"pinyin", "english"},
		Entries: []vocab.Entry{
			{Hanzi: "水", Fields: map[string]string{"pinyin": "shui", "english": "water"}},
		},
	}

	gen := NewGenerator(&Options{
		Output:        output,
		CJKFontPath:   badFont,
		LatinFontPath: badFont,
	})
	if err := gen.Generate(file); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if gen.cjkFont != "" || gen.latinFont != "" {
		t.Error("Broken fonts must not be registered")
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("Output does not look like a PDF")
	}
}

func TestGenerateEmptyFile(t *testing.T) {
	gen := NewGenerator(nil)
	file := &vocab.File{Columns: []string{"hanzi"}}

	if err := gen.Generate(file); err == nil {
		t.Error("Expected error for empty vocabulary file")
	}
}
