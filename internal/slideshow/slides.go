package slideshow

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"unicode/utf8"

	"codeberg.org/laohu/zhkit/internal/audio"
	"codeberg.org/laohu/zhkit/internal/strokes"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

// SlideDuration is the base length of one slide in seconds. Slides with
// audio grow to the clip length when it is longer.
const SlideDuration = 1.0

// Pixel size of the rasterized stroke diagram on its slide.
const strokeDiagramPx = 360

// Slide is one still frame with an optional pronunciation track.
type Slide struct {
	Frame    *image.RGBA
	Duration float64
	// AudioPaths holds one clip per syllable, concatenated at encode
	// time. Empty means silent.
	AudioPaths []string
}

// SlidesForCard builds the fixed 6-slide sequence for one vocabulary entry:
//
//  1. hanzi, silent
//  2. hanzi, with pronunciation
//  3. hanzi + pinyin, silent
//  4. hanzi + pinyin + english, silent
//  5. hanzi + pinyin + english, with pronunciation
//  6. hanzi + pinyin + english, silent (review)
func SlidesForCard(r *Renderer, lib *audio.Library, entry vocab.Entry) []Slide {
	var clips []string
	if entry.Pinyin() != "" {
		paths, err := lib.FindWord(entry.Pinyin())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v (slides stay silent)\n", entry.Hanzi, err)
		} else {
			clips = paths
		}
	}

	fChar := r.FrameChar(entry.Hanzi)
	fCharPy := r.FrameCharPinyin(entry.Hanzi, entry.Pinyin())
	fAll := r.FrameAll(entry.Hanzi, entry.Pinyin(), entry.English())

	return []Slide{
		{Frame: fChar, Duration: SlideDuration},
		{Frame: fChar, Duration: SlideDuration, AudioPaths: clips},
		{Frame: fCharPy, Duration: SlideDuration},
		{Frame: fAll, Duration: SlideDuration},
		{Frame: fAll, Duration: SlideDuration, AudioPaths: clips},
		{Frame: fAll, Duration: SlideDuration},
	}
}

// StrokeSlide builds an extra slide showing the stroke-order diagram of a
// single-character entry. It reports false when the entry spans several
// characters or no SVG is cached for it.
func StrokeSlide(r *Renderer, strokeDir string, entry vocab.Entry) (Slide, bool) {
	if strokeDir == "" || utf8.RuneCountInString(entry.Hanzi) != 1 {
		return Slide{}, false
	}
	char, _ := utf8.DecodeRuneInString(entry.Hanzi)
	svgPath := filepath.Join(strokeDir, fmt.Sprintf("%d.svg", char))
	if _, err := os.Stat(svgPath); err != nil {
		return Slide{}, false
	}

	diagram, err := strokes.Rasterize(svgPath, strokeDiagramPx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v (stroke slide skipped)\n", entry.Hanzi, err)
		return Slide{}, false
	}
	return Slide{Frame: r.FrameCharDiagram(entry.Hanzi, diagram), Duration: 2 * SlideDuration}, true
}
