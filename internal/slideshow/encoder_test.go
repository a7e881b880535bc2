package slideshow

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultEncodeOptions(t *testing.T) {
	opts := DefaultEncodeOptions()

	if opts.Output != "slideshow.mp4" {
		t.Errorf("Expected output 'slideshow.mp4', got '%s'", opts.Output)
	}
	if opts.FPS != 1 {
		t.Errorf("Expected FPS 1, got %d", opts.FPS)
	}
	if opts.CRF != 23 {
		t.Errorf("Expected CRF 23, got %d", opts.CRF)
	}
}

func TestSegmentArgsSilent(t *testing.T) {
	args := segmentArgs("frame.png", nil, 1.0, 1, 23, "seg.mp4")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "anullsrc") {
		t.Error("Silent segment should carry an anullsrc audio track")
	}
	if !strings.Contains(joined, "-loop 1") {
		t.Error("Expected looped still image input")
	}
	if !strings.Contains(joined, "-t 1.000") {
		t.Errorf("Expected duration 1.000, args: %s", joined)
	}
	if args[len(args)-1] != "seg.mp4" {
		t.Errorf("Expected output as last arg, got %q", args[len(args)-1])
	}
}

func TestSegmentArgsSingleClip(t *testing.T) {
	args := segmentArgs("frame.png", []string{"hao3.mp3"}, 1.5, 1, 23, "seg.mp4")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-i hao3.mp3") {
		t.Error("Expected audio clip input")
	}
	if !strings.Contains(joined, "-af apad") {
		t.Error("Expected apad filter for single clip")
	}
	if strings.Contains(joined, "filter_complex") {
		t.Error("Single clip should not use filter_complex")
	}
}

func TestSegmentArgsMultiClip(t *testing.T) {
	args := segmentArgs("frame.png", []string{"ni3.mp3", "hao3.mp3"}, 2.0, 1, 23, "seg.mp4")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "[1:a][2:a]concat=n=2:v=0:a=1,apad[a]") {
		t.Errorf("Expected concat filter for two clips, args: %s", joined)
	}
	if !strings.Contains(joined, "-map [a]") {
		t.Error("Expected mapped concat output")
	}
}

func TestConcatArgs(t *testing.T) {
	args := concatArgs("list.txt", "out.mp4")
	want := []string{"-y", "-f", "concat", "-safe", "0", "-i", "list.txt", "-c", "copy", "out.mp4"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("concatArgs = %v, want %v", args, want)
	}
}

func TestWriteConcatList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "concat.txt")
	if err := writeConcatList(path, []string{"/tmp/seg_0000.mp4", "/tmp/seg_0001.mp4"}); err != nil {
		t.Fatalf("writeConcatList failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "file '/tmp/seg_0000.mp4'\nfile '/tmp/seg_0001.mp4'\n"
	if string(data) != want {
		t.Errorf("Concat list = %q, want %q", string(data), want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.000"},
		{1.5, "1.500"},
		{2.3456, "2.346"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeNoSlides(t *testing.T) {
	enc := NewEncoder(nil)
	if err := enc.Encode(nil); err == nil {
		t.Error("Expected error for empty slide sequence")
	}
}
