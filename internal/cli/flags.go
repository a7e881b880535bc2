package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile         string
	OutputDir       string
	AudioFormat     string
	AudioDirs       []string
	StrokeDir       string
	StrokeSource    string
	PinyinOverrides string
	CJKFont         string
	LatinFont       string
	DeckName        string
	AnkiCSV         bool
	ListModels      bool
	Archive         bool
	SkipAudio       bool
	SkipStrokes     bool
	SkipGloss       bool
	Force           bool

	// Audio provider flags
	AudioProvider     string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Slideshow flags
	FPS int
	CRF int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		AudioFormat:   "mp3",
		StrokeSource:  "animCJK",
		DeckName:      "Mandarin Vocabulary",
		AudioProvider: "openai",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAISpeed:   0.9,
		FPS:           1,
		CRF:           23,
	}
}
