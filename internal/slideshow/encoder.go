package slideshow

import (
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// EncodeOptions configures the ffmpeg encode
type EncodeOptions struct {
	Output string
	FPS    int
	CRF    int
}

// DefaultEncodeOptions returns the encode settings the original slideshows
// used: 1 fps stills, crf 23, aac audio.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{
		Output: "slideshow.mp4",
		FPS:    1,
		CRF:    23,
	}
}

// Encoder turns a slide sequence into an mp4 by driving ffmpeg: every
// slide becomes a short segment (still image, padded or real audio), then
// the segments are stitched with the concat demuxer.
type Encoder struct {
	options *EncodeOptions
}

// NewEncoder creates a new encoder
func NewEncoder(options *EncodeOptions) *Encoder {
	if options == nil {
		options = DefaultEncodeOptions()
	}
	return &Encoder{options: options}
}

// Encode writes all slides and produces the final video.
func (e *Encoder) Encode(slides []Slide) error {
	if len(slides) == 0 {
		return fmt.Errorf("no slides to encode")
	}
	if err := checkFFmpegInstalled(); err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "zhkit_slideshow_*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	var segments []string
	for i, slide := range slides {
		framePath := filepath.Join(workDir, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(framePath, slide); err != nil {
			return err
		}

		duration := slide.Duration
		if len(slide.AudioPaths) > 0 {
			// A clip longer than the slide extends the slide
			if total := totalAudioDuration(slide.AudioPaths); total > duration {
				duration = total
			}
		}

		segPath := filepath.Join(workDir, fmt.Sprintf("seg_%04d.mp4", i))
		args := segmentArgs(framePath, slide.AudioPaths, duration, e.options.FPS, e.options.CRF, segPath)
		if out, err := exec.Command("ffmpeg", args...).CombinedOutput(); err != nil {
			return fmt.Errorf("ffmpeg segment %d failed: %w\nOutput: %s", i, err, string(out))
		}
		segments = append(segments, segPath)
	}

	listPath := filepath.Join(workDir, "concat.txt")
	if err := writeConcatList(listPath, segments); err != nil {
		return err
	}

	args := concatArgs(listPath, e.options.Output)
	if out, err := exec.Command("ffmpeg", args...).CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w\nOutput: %s", err, string(out))
	}

	fmt.Printf("Written %s (%d slides)\n", e.options.Output, len(slides))
	return nil
}

// segmentArgs builds the ffmpeg arguments for one slide segment. Silent
// slides get an anullsrc track so every segment carries the same streams
// and the concat demuxer can copy them.
func segmentArgs(framePath string, audioPaths []string, duration float64, fps, crf int, outPath string) []string {
	args := []string{"-y", "-loop", "1", "-framerate", strconv.Itoa(fps), "-i", framePath}

	switch len(audioPaths) {
	case 0:
		args = append(args, "-f", "lavfi", "-i", "anullsrc=channel_layout=stereo:sample_rate=44100")
	default:
		for _, p := range audioPaths {
			args = append(args, "-i", p)
		}
	}

	if n := len(audioPaths); n > 1 {
		// Per-syllable clips are concatenated and padded with silence
		var b strings.Builder
		for i := 1; i <= n; i++ {
			fmt.Fprintf(&b, "[%d:a]", i)
		}
		fmt.Fprintf(&b, "concat=n=%d:v=0:a=1,apad[a]", n)
		args = append(args, "-filter_complex", b.String(), "-map", "0:v", "-map", "[a]")
	} else if n == 1 {
		args = append(args, "-af", "apad", "-map", "0:v", "-map", "1:a")
	}

	args = append(args,
		"-t", formatDuration(duration),
		"-c:v", "libx264",
		"-crf", strconv.Itoa(crf),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-ar", "44100",
		outPath,
	)
	return args
}

// concatArgs builds the ffmpeg arguments for the final stitch.
func concatArgs(listPath, output string) []string {
	return []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", output}
}

func writeConcatList(path string, segments []string) error {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "file '%s'\n", seg)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	return nil
}

func writePNG(path string, slide Slide) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, slide.Frame); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}

// totalAudioDuration sums the clip lengths via ffprobe. Unreadable clips
// count as zero; the slide then keeps its base duration.
func totalAudioDuration(paths []string) float64 {
	var total float64
	for _, path := range paths {
		out, err := exec.Command("ffprobe",
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			path,
		).Output()
		if err != nil {
			continue
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
		if err != nil {
			continue
		}
		total += d
	}
	return total
}

func formatDuration(d float64) string {
	return strconv.FormatFloat(d, 'f', 3, 64)
}

func checkFFmpegInstalled() error {
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	return nil
}
