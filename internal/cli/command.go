package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/laohu/zhkit/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zhkit",
		Short: "Mandarin Flashcard Material Generator",
		Long: `zhkit generates study materials from Mandarin vocabulary files.

It reads tab-separated word lists (hanzi, tonal pinyin, english), resolves
pronunciation clips from a local pinyin audio library, synthesizes missing
clips with OpenAI TTS, downloads stroke-order diagrams, and renders printable
flashcard sheets, slideshow videos and Anki decks.

Examples:
  zhkit cards radicals.tsv           # Printable A4 flashcard sheets
  zhkit slideshow hsk1.tsv           # Vocabulary slideshow video
  zhkit anki hsk1.tsv                # Anki .apkg deck
  zhkit audio hsk1.tsv               # Synthesize missing pronunciation clips
  zhkit strokes hsk1.tsv             # Download stroke-order SVGs
  zhkit lint hsk1.tsv                # Check conventions and coverage`,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultOutputDir := filepath.Join(home, ".local", "state", "zhkit", "out")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.zhkit.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.OutputDir, "output", "o", defaultOutputDir, "Output directory")
	cmd.PersistentFlags().StringSliceVar(&flags.AudioDirs, "audio-dir", nil, "Pinyin audio library directories, searched in order")
	cmd.PersistentFlags().StringVar(&flags.StrokeDir, "stroke-dir", filepath.Join(home, ".cache", "zhkit", "strokes"), "Local stroke-order SVG cache")
	cmd.PersistentFlags().StringVar(&flags.PinyinOverrides, "pinyin-overrides", "", "YAML file with hanzi to pinyin overrides")

	cmd.PersistentFlags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (wav or mp3)")
	cmd.PersistentFlags().StringVar(&flags.StrokeSource, "stroke-source", flags.StrokeSource, "Stroke-order data source (see zhkit sources)")
	cmd.PersistentFlags().StringVar(&flags.CJKFont, "cjk-font", "", "TTF/TTC font with CJK coverage")
	cmd.PersistentFlags().StringVar(&flags.LatinFont, "latin-font", "", "TTF font for pinyin and english text")
	cmd.PersistentFlags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.PersistentFlags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip audio resolution and synthesis")
	cmd.PersistentFlags().BoolVar(&flags.SkipStrokes, "skip-strokes", false, "Skip stroke-order diagrams")
	cmd.PersistentFlags().BoolVar(&flags.SkipGloss, "skip-gloss", false, "Do not fill missing english glosses via OpenAI")
	cmd.PersistentFlags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Audio provider flags
	cmd.PersistentFlags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "TTS provider for missing clips: openai or espeak")
	cmd.PersistentFlags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.PersistentFlags().StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.PersistentFlags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.PersistentFlags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("audio.provider", cmd.PersistentFlags().Lookup("audio-provider"))
	viper.BindPFlag("audio.format", cmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("audio.library_dirs", cmd.PersistentFlags().Lookup("audio-dir"))
	viper.BindPFlag("audio.openai_model", cmd.PersistentFlags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.PersistentFlags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.PersistentFlags().Lookup("openai-speed"))
	viper.BindPFlag("audio.openai_instruction", cmd.PersistentFlags().Lookup("openai-instruction"))
	viper.BindPFlag("output.directory", cmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("strokes.source", cmd.PersistentFlags().Lookup("stroke-source"))
	viper.BindPFlag("strokes.cache_dir", cmd.PersistentFlags().Lookup("stroke-dir"))
	viper.BindPFlag("fonts.cjk", cmd.PersistentFlags().Lookup("cjk-font"))
	viper.BindPFlag("fonts.latin", cmd.PersistentFlags().Lookup("latin-font"))
	viper.BindPFlag("anki.deck_name", cmd.PersistentFlags().Lookup("deck-name"))
	viper.BindPFlag("pinyin.overrides", cmd.PersistentFlags().Lookup("pinyin-overrides"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".zhkit" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".zhkit")
	}

	// Environment variables
	viper.SetEnvPrefix("ZHKIT")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}
