package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"codeberg.org/laohu/zhkit/internal/audio"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

// Card represents a single Anki flashcard
type Card struct {
	Hanzi      string   // The character or word
	Pinyin     string   // Tonal pinyin
	English    string   // English gloss
	AudioFiles []string // Pronunciation clips, one per syllable
	StrokeFile string   // Stroke-order SVG, single characters only
	Notes      string   // Optional notes
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// BuildCards fills the generator from a vocabulary file, resolving audio
// clips from the library and stroke SVGs from the local cache. Rows whose
// audio does not fully resolve still become cards, without sound.
func (g *Generator) BuildCards(file *vocab.File, lib *audio.Library, strokeDir string) {
	for _, entry := range file.Entries {
		card := Card{
			Hanzi:   entry.Hanzi,
			Pinyin:  entry.Pinyin(),
			English: entry.English(),
		}

		if lib != nil && card.Pinyin != "" {
			if paths, err := lib.FindWord(card.Pinyin); err == nil {
				card.AudioFiles = paths
			} else {
				fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", card.Hanzi, err)
			}
		}

		if strokeDir != "" && utf8.RuneCountInString(card.Hanzi) == 1 {
			char, _ := utf8.DecodeRuneInString(card.Hanzi)
			svg := filepath.Join(strokeDir, fmt.Sprintf("%d.svg", char))
			if _, err := os.Stat(svg); err == nil {
				card.StrokeFile = svg
			}
		}

		g.AddCard(card)
	}
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if g.options.IncludeHeaders {
		headers := []string{"Hanzi", "Pinyin", "English", "Audio", "Strokes", "Notes"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Hanzi,
			card.Pinyin,
			card.English,
			formatAudioField(card.AudioFiles),
			formatStrokeField(card.StrokeFile),
			card.Notes,
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	return nil
}

// formatAudioField formats the audio clip references for Anki. Multi
// syllable words get one [sound:] tag per syllable; Anki plays them in
// order.
func formatAudioField(audioFiles []string) string {
	if len(audioFiles) == 0 {
		return ""
	}

	var tags []string
	for _, f := range audioFiles {
		tags = append(tags, fmt.Sprintf("[sound:%s]", filepath.Base(f)))
	}
	return strings.Join(tags, "")
}

// formatStrokeField formats the stroke diagram reference for Anki
func formatStrokeField(strokeFile string) string {
	if strokeFile == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, filepath.Base(strokeFile))
}

// Stats returns the number of cards, and how many carry audio and stroke
// diagrams.
func (g *Generator) Stats() (total, withAudio, withStrokes int) {
	total = len(g.cards)
	for _, card := range g.cards {
		if len(card.AudioFiles) > 0 {
			withAudio++
		}
		if card.StrokeFile != "" {
			withStrokes++
		}
	}
	return total, withAudio, withStrokes
}
