package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/laohu/zhkit/internal/pinyin"
)

// Library locates pronunciation clips in a local pinyin audio collection.
// The layout follows the corpora this tool grew up with: one directory per
// voice (e.g. Pinyin-Female, Pinyin-Male), files named {pinyin}{tone}.{ext}
// with tone numerals 1-5. Neutral tone files sometimes omit the numeral, so
// lookup falls back to the toneless name.
type Library struct {
	Roots []string // voice directories, searched in order
	Exts  []string // encodings in preference order, e.g. "mp3", "wav"
}

// NewLibrary creates a library over the given voice directories.
func NewLibrary(roots ...string) *Library {
	return &Library{
		Roots: roots,
		Exts:  []string{"mp3", "wav"},
	}
}

// Find returns the path of the audio clip for a tonal pinyin syllable.
func (l *Library) Find(syllable string) (string, bool) {
	numbered := pinyin.Numbered(syllable)
	for _, root := range l.Roots {
		for _, ext := range l.Exts {
			name := numbered + "." + ext
			path := filepath.Join(root, name)
			if fileExists(path) {
				return path, true
			}
			// Neutral tone clips may be stored without the numeral.
			if pinyin.Tone(syllable) == pinyin.NeutralTone {
				path = filepath.Join(root, pinyin.TonelessFileName(name))
				if fileExists(path) {
					return path, true
				}
			}
		}
	}
	return "", false
}

// FindWord resolves every syllable of a multi-syllable pinyin string.
// It returns the clip paths in syllable order, or an error naming the first
// syllable that has no clip. A word is only playable when all of its
// syllables resolve.
func (l *Library) FindWord(tonal string) ([]string, error) {
	syllables := pinyin.Syllables(tonal)
	if len(syllables) == 0 {
		return nil, fmt.Errorf("no pinyin syllables in %q", tonal)
	}
	paths := make([]string, 0, len(syllables))
	for _, syl := range syllables {
		path, ok := l.Find(syl)
		if !ok {
			return nil, fmt.Errorf("no audio clip for syllable %q (%s)", syl, pinyin.Numbered(syl))
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// TargetPath returns where a newly synthesized clip for the syllable
// belongs: the first voice directory, first preferred encoding.
func (l *Library) TargetPath(syllable string) (string, error) {
	if len(l.Roots) == 0 {
		return "", fmt.Errorf("audio library has no voice directories configured")
	}
	ext := "mp3"
	if len(l.Exts) > 0 {
		ext = l.Exts[0]
	}
	return filepath.Join(l.Roots[0], pinyin.AudioFileName(syllable, ext)), nil
}

// Missing reports the syllables of the given tonal pinyin strings that have
// no clip in the library. Each missing syllable is reported once.
func (l *Library) Missing(tonals []string) []string {
	seen := make(map[string]struct{})
	var missing []string
	for _, tonal := range tonals {
		for _, syl := range pinyin.Syllables(tonal) {
			numbered := pinyin.Numbered(syl)
			if _, ok := seen[numbered]; ok {
				continue
			}
			seen[numbered] = struct{}{}
			if _, ok := l.Find(syl); !ok {
				missing = append(missing, syl)
			}
		}
	}
	return missing
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
