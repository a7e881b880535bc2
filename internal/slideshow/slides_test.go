package slideshow

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/laohu/zhkit/internal/audio"
	"codeberg.org/laohu/zhkit/internal/testutil"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

// newTestRenderer skips the test when no CJK font is installed.
func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("", "")
	if err != nil {
		t.Skipf("No CJK font available: %v", err)
	}
	return r
}

func TestSlidesForCard(t *testing.T) {
	r := newTestRenderer(t)

	root := testutil.CreateAudioLibrary(t, t.TempDir(), "ni3", "hao3")
	lib := audio.NewLibrary(root)

	entry := vocab.Entry{
		Hanzi: "你好",
		Fields: map[string]string{
			"pinyin":  "nǐ hǎo",
			"english": "hello",
		},
	}

	slides := SlidesForCard(r, lib, entry)
	if len(slides) != 6 {
		t.Fatalf("Expected 6 slides, got %d", len(slides))
	}

	// Slides 2 and 5 carry the pronunciation
	withAudio := []int{1, 4}
	for i, slide := range slides {
		if slide.Frame == nil {
			t.Errorf("Slide %d has no frame", i)
		}
		if slide.Duration != SlideDuration {
			t.Errorf("Slide %d duration %f, want %f", i, slide.Duration, SlideDuration)
		}

		expectAudio := i == withAudio[0] || i == withAudio[1]
		if expectAudio && len(slide.AudioPaths) != 2 {
			t.Errorf("Slide %d should have 2 clips, got %d", i, len(slide.AudioPaths))
		}
		if !expectAudio && len(slide.AudioPaths) != 0 {
			t.Errorf("Slide %d should be silent, got %v", i, slide.AudioPaths)
		}
	}

	if filepath.Base(slides[1].AudioPaths[0]) != "ni3.mp3" {
		t.Errorf("Expected clips in syllable order, got %v", slides[1].AudioPaths)
	}
}

func TestSlidesForCardMissingAudio(t *testing.T) {
	r := newTestRenderer(t)

	lib := audio.NewLibrary(t.TempDir())
	entry := vocab.Entry{
		Hanzi:  "水",
		Fields: map[string]string{"pinyin": "shuǐ"},
	}

	slides := SlidesForCard(r, lib, entry)
	if len(slides) != 6 {
		t.Fatalf("Expected 6 slides, got %d", len(slides))
	}
	for i, slide := range slides {
		if len(slide.AudioPaths) != 0 {
			t.Errorf("Slide %d should be silent when audio is missing", i)
		}
	}
}

func TestStrokeSlide(t *testing.T) {
	r := newTestRenderer(t)

	strokeDir := t.TempDir()
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1024 1024">` +
		`<path d="M100 100 L900 900" stroke="black" stroke-width="30" fill="none"/></svg>`
	path := filepath.Join(strokeDir, fmt.Sprintf("%d.svg", '水'))
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		t.Fatal(err)
	}

	entry := vocab.Entry{
		Hanzi:  "水",
		Fields: map[string]string{"pinyin": "shuǐ"},
	}
	slide, ok := StrokeSlide(r, strokeDir, entry)
	if !ok {
		t.Fatal("Expected a stroke slide for a cached single character")
	}
	if slide.Frame == nil {
		t.Error("Stroke slide has no frame")
	}
	if slide.Duration != 2*SlideDuration {
		t.Errorf("Stroke slide duration %f, want %f", slide.Duration, 2*SlideDuration)
	}

	// Multi-character entries and uncached characters get no slide
	multi := vocab.Entry{Hanzi: "你好", Fields: map[string]string{"pinyin": "nǐ hǎo"}}
	if _, ok := StrokeSlide(r, strokeDir, multi); ok {
		t.Error("Expected no stroke slide for a multi-character entry")
	}
	uncached := vocab.Entry{Hanzi: "火", Fields: map[string]string{"pinyin": "huǒ"}}
	if _, ok := StrokeSlide(r, strokeDir, uncached); ok {
		t.Error("Expected no stroke slide without a cached SVG")
	}
}

func TestFrameGeometry(t *testing.T) {
	r := newTestRenderer(t)

	img := r.FrameAll("好", "hǎo", "good")
	bounds := img.Bounds()
	if bounds.Dx() != frameW || bounds.Dy() != frameH {
		t.Errorf("Frame size (%d, %d), want (%d, %d)", bounds.Dx(), bounds.Dy(), frameW, frameH)
	}
}
