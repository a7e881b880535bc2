package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/laohu/zhkit/internal/audio"
	"codeberg.org/laohu/zhkit/internal/cli"
	"codeberg.org/laohu/zhkit/internal/pinyin"
	"codeberg.org/laohu/zhkit/internal/translation"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

// Processor ties the vocabulary file to the material generators: it loads
// and validates word lists, fills missing glosses, and synthesizes missing
// pronunciation clips into the audio library.
type Processor struct {
	flags      *cli.Flags
	translator *translation.Translator
	glossCache *translation.Cache
}

// NewProcessor creates a new vocabulary processor
func NewProcessor(flags *cli.Flags) *Processor {
	apiKey := cli.GetOpenAIKey()
	return &Processor{
		flags:      flags,
		translator: translation.NewTranslator(apiKey),
		glossCache: translation.NewCache(),
	}
}

// Library returns the pinyin audio library configured by the flags. Without
// configured voice directories, clips live under the output directory.
func (p *Processor) Library() *audio.Library {
	roots := p.flags.AudioDirs
	if len(roots) == 0 {
		roots = []string{filepath.Join(p.flags.OutputDir, "audio")}
	}
	lib := audio.NewLibrary(roots...)
	if p.flags.AudioFormat == "wav" {
		lib.Exts = []string{"wav", "mp3"}
	}
	return lib
}

// LoadVocab reads a vocabulary file, applies the pinyin override dictionary
// and validates the rows.
func (p *Processor) LoadVocab(path string) (*vocab.File, error) {
	file, err := vocab.Read(path)
	if err != nil {
		return nil, err
	}

	if p.flags.PinyinOverrides != "" {
		dict, err := pinyin.LoadDict(p.flags.PinyinOverrides)
		if err != nil {
			return nil, err
		}
		applied := 0
		for i := range file.Entries {
			if tonal, ok := dict[file.Entries[i].Hanzi]; ok {
				file.Entries[i].Fields[vocab.ColPinyin] = tonal
				applied++
			}
		}
		if applied > 0 {
			fmt.Printf("Applied %d pinyin overrides\n", applied)
		}
	}

	for _, entry := range file.Entries {
		if err := audio.ValidateMandarinText(entry.Hanzi); err != nil {
			return nil, fmt.Errorf("invalid entry %q: %w", entry.Hanzi, err)
		}
		for _, syl := range pinyin.Syllables(entry.Pinyin()) {
			if err := audio.ValidateSyllable(syl); err != nil {
				return nil, fmt.Errorf("invalid entry %q: %w", entry.Hanzi, err)
			}
		}
	}

	return file, nil
}

// EnsureGlosses fills empty english cells via the OpenAI chat API.
func (p *Processor) EnsureGlosses(ctx context.Context, file *vocab.File) error {
	if p.flags.SkipGloss || !file.HasColumn(vocab.ColEnglish) {
		return nil
	}
	filled, err := p.translator.FillGlosses(ctx, file, p.glossCache)
	if filled > 0 {
		fmt.Printf("Filled %d english glosses\n", filled)
	}
	if err != nil {
		// Glosses are best-effort; the generators handle empty cells
		fmt.Fprintf(os.Stderr, "Warning: gloss fill stopped: %v\n", err)
	}
	return nil
}

// EnsureAudio synthesizes clips for library syllables the vocabulary needs
// but the library lacks. Single-character entries lend their hanzi as the
// TTS text for their syllable; syllables without a known hanzi are spoken
// from the pinyin itself.
func (p *Processor) EnsureAudio(ctx context.Context, file *vocab.File) (int, error) {
	if p.flags.SkipAudio {
		return 0, nil
	}

	lib := p.Library()

	var tonals []string
	for _, entry := range file.Entries {
		if t := entry.Pinyin(); t != "" {
			tonals = append(tonals, t)
		}
	}

	// Existing library files are never overwritten unless forced
	var missing []string
	if p.flags.Force {
		seen := make(map[string]struct{})
		for _, tonal := range tonals {
			for _, syl := range pinyin.Syllables(tonal) {
				numbered := pinyin.Numbered(syl)
				if _, ok := seen[numbered]; ok {
					continue
				}
				seen[numbered] = struct{}{}
				missing = append(missing, syl)
			}
		}
	} else {
		missing = lib.Missing(tonals)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	// Map syllables to hanzi where a single-character entry provides one
	hanziFor := make(map[string]string)
	for _, entry := range file.Entries {
		syls := pinyin.Syllables(entry.Pinyin())
		if len(syls) == 1 && len([]rune(entry.Hanzi)) == 1 {
			hanziFor[pinyin.Numbered(syls[0])] = entry.Hanzi
		}
	}

	provider, err := p.newProvider()
	if err != nil {
		return 0, err
	}
	if err := provider.IsAvailable(); err != nil {
		return 0, fmt.Errorf("audio provider not available: %w", err)
	}

	if err := os.MkdirAll(lib.Roots[0], 0755); err != nil {
		return 0, fmt.Errorf("failed to create audio directory: %w", err)
	}

	synthesized := 0
	for i, syl := range missing {
		target, err := lib.TargetPath(syl)
		if err != nil {
			return synthesized, err
		}

		text := syl
		if hanzi, ok := hanziFor[pinyin.Numbered(syl)]; ok {
			text = hanzi
		}

		fmt.Printf("Synthesizing %d/%d: %s -> %s\n", i+1, len(missing), text, filepath.Base(target))
		if err := provider.GenerateAudio(ctx, text, target); err != nil {
			return synthesized, fmt.Errorf("synthesis of %q failed: %w", syl, err)
		}
		synthesized++
	}

	return synthesized, nil
}

// newProvider builds the TTS provider from the flags. The OpenAI provider
// gets an espeak-ng fallback when one is installed.
func (p *Processor) newProvider() (audio.Provider, error) {
	config := audio.DefaultProviderConfig()
	config.Provider = p.flags.AudioProvider
	config.OutputFormat = p.flags.AudioFormat
	config.OpenAIKey = cli.GetOpenAIKey()
	config.EnableCache = true
	if home, err := os.UserHomeDir(); err == nil {
		config.CacheDir = filepath.Join(home, ".cache", "zhkit", "tts")
	}
	if p.flags.OpenAIModel != "" {
		config.OpenAIModel = p.flags.OpenAIModel
	}
	if p.flags.OpenAIVoice != "" {
		config.OpenAIVoice = p.flags.OpenAIVoice
	}
	if p.flags.OpenAISpeed != 0 {
		config.OpenAISpeed = p.flags.OpenAISpeed
	}
	if p.flags.OpenAIInstruction != "" {
		config.OpenAIInstruction = p.flags.OpenAIInstruction
	}

	primary, err := audio.NewProvider(config)
	if err != nil {
		return nil, err
	}

	if config.Provider == "openai" {
		if fallback, ferr := audio.NewESpeakProvider(audio.DefaultESpeakConfig()); ferr == nil {
			if fallback.IsAvailable() == nil {
				return audio.NewProviderWithFallback(primary, fallback), nil
			}
		}
	}

	return primary, nil
}
