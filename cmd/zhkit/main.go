package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/laohu/zhkit/internal"
	"codeberg.org/laohu/zhkit/internal/anki"
	"codeberg.org/laohu/zhkit/internal/archive"
	"codeberg.org/laohu/zhkit/internal/cards"
	"codeberg.org/laohu/zhkit/internal/cli"
	"codeberg.org/laohu/zhkit/internal/lint"
	"codeberg.org/laohu/zhkit/internal/models"
	"codeberg.org/laohu/zhkit/internal/processor"
	"codeberg.org/laohu/zhkit/internal/slideshow"
	"codeberg.org/laohu/zhkit/internal/strokes"
	"codeberg.org/laohu/zhkit/internal/vocab"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Handle --list-models flag
		if flags.ListModels {
			lister := models.NewLister(cli.GetOpenAIKey())
			return lister.ListAvailableModels()
		}
		return cmd.Help()
	}

	rootCmd.AddCommand(
		cardsCommand(flags),
		slideshowCommand(flags),
		ankiCommand(flags),
		audioCommand(flags),
		strokesCommand(flags),
		lintCommand(flags),
		sourcesCommand(),
		archiveCommand(flags),
	)

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// prepare loads the vocabulary file and runs the shared pipeline steps:
// gloss fill, audio synthesis and stroke download.
func prepare(cmd *cobra.Command, flags *cli.Flags, path string) (*processor.Processor, *vocab.File, error) {
	proc := processor.NewProcessor(flags)

	file, err := proc.LoadVocab(path)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("Loaded %s (%d entries)\n", path, len(file.Entries))

	ctx := cmd.Context()
	if err := proc.EnsureGlosses(ctx, file); err != nil {
		return nil, nil, err
	}
	if _, err := proc.EnsureAudio(ctx, file); err != nil {
		// Missing audio degrades the materials but does not block them
		fmt.Fprintf(os.Stderr, "Warning: audio synthesis failed: %v\n", err)
	}
	if err := fetchStrokes(cmd, flags, file); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: stroke download failed: %v\n", err)
	}

	return proc, file, nil
}

func fetchStrokes(cmd *cobra.Command, flags *cli.Flags, file *vocab.File) error {
	if flags.SkipStrokes {
		return nil
	}
	source, err := strokes.SourceByName(flags.StrokeSource)
	if err != nil {
		return err
	}
	options := strokes.DefaultFetchOptions()
	options.CacheDir = flags.StrokeDir

	var words []string
	for _, entry := range file.Entries {
		words = append(words, entry.Hanzi)
	}

	fetcher := strokes.NewFetcher(source, options)
	fetched, missing, err := fetcher.FetchAll(cmd.Context(), words)
	if err != nil {
		return err
	}
	if fetched > 0 || missing > 0 {
		fmt.Printf("Stroke diagrams: %d downloaded, %d not covered by %s\n", fetched, missing, source.Name)
	}
	return nil
}

func outputPath(flags *cli.Flags, vocabPath, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(vocabPath), filepath.Ext(vocabPath))
	return filepath.Join(flags.OutputDir, base+suffix)
}

func ensureOutputDir(flags *cli.Flags) error {
	if err := os.MkdirAll(flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func cardsCommand(flags *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "cards <vocab.tsv>",
		Short: "Render printable A4 flashcard sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, file, err := prepare(cmd, flags, args[0])
			if err != nil {
				return err
			}
			if err := ensureOutputDir(flags); err != nil {
				return err
			}

			strokeDir := flags.StrokeDir
			if flags.SkipStrokes {
				strokeDir = ""
			}
			gen := cards.NewGenerator(&cards.Options{
				Output:        outputPath(flags, args[0], "_cards.pdf"),
				CJKFontPath:   flags.CJKFont,
				LatinFontPath: flags.LatinFont,
				StrokeDir:     strokeDir,
			})
			return gen.Generate(file)
		},
	}
}

func slideshowCommand(flags *cli.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slideshow <vocab.tsv>",
		Short: "Render a vocabulary slideshow video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, file, err := prepare(cmd, flags, args[0])
			if err != nil {
				return err
			}
			if err := ensureOutputDir(flags); err != nil {
				return err
			}

			renderer, err := slideshow.NewRenderer(flags.CJKFont, flags.LatinFont)
			if err != nil {
				return err
			}

			strokeDir := flags.StrokeDir
			if flags.SkipStrokes {
				strokeDir = ""
			}

			lib := proc.Library()
			var slides []slideshow.Slide
			for _, entry := range file.Entries {
				slides = append(slides, slideshow.SlidesForCard(renderer, lib, entry)...)
				if slide, ok := slideshow.StrokeSlide(renderer, strokeDir, entry); ok {
					slides = append(slides, slide)
				}
			}

			encoder := slideshow.NewEncoder(&slideshow.EncodeOptions{
				Output: outputPath(flags, args[0], ".mp4"),
				FPS:    flags.FPS,
				CRF:    flags.CRF,
			})
			return encoder.Encode(slides)
		},
	}
	cmd.Flags().IntVar(&flags.FPS, "fps", flags.FPS, "Still frame rate")
	cmd.Flags().IntVar(&flags.CRF, "crf", flags.CRF, "x264 quality (lower is better)")
	return cmd
}

func ankiCommand(flags *cli.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anki <vocab.tsv>",
		Short: "Export an Anki deck (.apkg, or CSV with --csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, file, err := prepare(cmd, flags, args[0])
			if err != nil {
				return err
			}
			if err := ensureOutputDir(flags); err != nil {
				return err
			}

			strokeDir := flags.StrokeDir
			if flags.SkipStrokes {
				strokeDir = ""
			}

			if flags.AnkiCSV {
				gen := anki.NewGenerator(&anki.GeneratorOptions{
					OutputPath:     outputPath(flags, args[0], "_anki.csv"),
					IncludeHeaders: true,
				})
				gen.BuildCards(file, proc.Library(), strokeDir)
				if err := gen.GenerateCSV(); err != nil {
					return err
				}
				total, withAudio, withStrokes := gen.Stats()
				fmt.Printf("Exported %d cards (%d with audio, %d with stroke diagrams)\n",
					total, withAudio, withStrokes)
				return nil
			}

			builder := anki.NewGenerator(nil)
			builder.BuildCards(file, proc.Library(), strokeDir)

			apkg := anki.NewAPKGGenerator(flags.DeckName)
			for _, card := range builder.GetCards() {
				apkg.AddCard(card)
			}
			output := filepath.Join(flags.OutputDir, internal.SanitizeFilename(flags.DeckName)+".apkg")
			if err := apkg.GenerateAPKG(output); err != nil {
				return err
			}
			fmt.Printf("Anki package created: %s\n", output)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.AnkiCSV, "csv", false, "Export a CSV import file instead of an .apkg package")
	return cmd
}

func audioCommand(flags *cli.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio <vocab.tsv>",
		Short: "Synthesize missing pronunciation clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := processor.NewProcessor(flags)
			file, err := proc.LoadVocab(args[0])
			if err != nil {
				return err
			}
			n, err := proc.EnsureAudio(cmd.Context(), file)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("Audio library already covers all syllables")
			} else {
				fmt.Printf("Synthesized %d clips\n", n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Resynthesize clips the library already has")
	return cmd
}

func strokesCommand(flags *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "strokes <vocab.tsv>",
		Short: "Download stroke-order SVGs for all characters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc := processor.NewProcessor(flags)
			file, err := proc.LoadVocab(args[0])
			if err != nil {
				return err
			}
			flags.SkipStrokes = false
			return fetchStrokes(cmd, flags, file)
		},
	}
}

func lintCommand(flags *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [vocab.tsv...]",
		Short: "Check the source registry, vocabulary conventions and audio coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			issues := lint.CheckRegistry()

			proc := processor.NewProcessor(flags)
			lib := proc.Library()
			for _, path := range args {
				file, err := vocab.Read(path)
				if err != nil {
					return err
				}
				issues = append(issues, lint.CheckVocabFile(path, file)...)
				if !flags.SkipAudio {
					issues = append(issues, lint.CheckAudioCoverage(path, file, lib)...)
				}
			}

			for _, issue := range issues {
				fmt.Println(issue)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d lint issues", len(issues))
			}
			fmt.Println("No issues found")
			return nil
		},
	}
}

func sourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the curated stroke-order and audio data sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, src := range strokes.Sources {
				fmt.Printf("%s\n  %s\n  %s\n", src.Name, src.Description, src.Homepage)
				if src.RawPattern != "" {
					fmt.Printf("  per-character SVGs: yes\n")
				}
			}
			return nil
		},
	}
}

func archiveCommand(flags *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Move the output directory aside with a timestamp",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := archive.ArchiveOutput(flags.OutputDir); err != nil {
				return fmt.Errorf("failed to archive output: %w", err)
			}
			return nil
		},
	}
}
