package audio

import (
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/laohu/zhkit/internal/testutil"
)

func TestLibraryFind(t *testing.T) {
	root := testutil.CreateAudioLibrary(t, t.TempDir(), "ni3", "hao3", "shui3")
	lib := NewLibrary(root)

	path, ok := lib.Find("hǎo")
	if !ok {
		t.Fatal("Expected to find clip for hǎo")
	}
	if filepath.Base(path) != "hao3.mp3" {
		t.Errorf("Expected 'hao3.mp3', got %q", filepath.Base(path))
	}

	if _, ok := lib.Find("mà"); ok {
		t.Error("Did not expect a clip for mà")
	}
}

func TestLibraryFindTonelessFallback(t *testing.T) {
	// Neutral tone clip stored without the tone numeral
	root := testutil.CreateAudioLibrary(t, t.TempDir(), "ma")
	lib := NewLibrary(root)

	path, ok := lib.Find("ma")
	if !ok {
		t.Fatal("Expected toneless fallback to find 'ma.mp3'")
	}
	if filepath.Base(path) != "ma.mp3" {
		t.Errorf("Expected 'ma.mp3', got %q", filepath.Base(path))
	}
}

func TestLibraryRootOrder(t *testing.T) {
	base := t.TempDir()
	female := testutil.CreateAudioLibrary(t, filepath.Join(base, "f"), "hao3")
	male := testutil.CreateAudioLibrary(t, filepath.Join(base, "m"), "hao3")

	lib := NewLibrary(female, male)
	path, ok := lib.Find("hǎo")
	if !ok {
		t.Fatal("Expected to find clip")
	}
	if !strings.HasPrefix(path, female) {
		t.Errorf("Expected clip from first root %q, got %q", female, path)
	}
}

func TestFindWord(t *testing.T) {
	root := testutil.CreateAudioLibrary(t, t.TempDir(), "ni3", "hao3")
	lib := NewLibrary(root)

	paths, err := lib.FindWord("nǐ hǎo")
	if err != nil {
		t.Fatalf("FindWord failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Expected 2 clips, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "ni3.mp3" || filepath.Base(paths[1]) != "hao3.mp3" {
		t.Errorf("Clips out of order: %v", paths)
	}
}

func TestFindWordAllOrNothing(t *testing.T) {
	root := testutil.CreateAudioLibrary(t, t.TempDir(), "ni3")
	lib := NewLibrary(root)

	// One syllable missing fails the whole word
	if _, err := lib.FindWord("nǐ hǎo"); err == nil {
		t.Error("Expected error when one syllable has no clip")
	}

	if _, err := lib.FindWord(""); err == nil {
		t.Error("Expected error for empty pinyin")
	}
}

func TestTargetPath(t *testing.T) {
	lib := NewLibrary("/voices/female")

	path, err := lib.TargetPath("hǎo")
	if err != nil {
		t.Fatalf("TargetPath failed: %v", err)
	}
	want := filepath.Join("/voices/female", "hao3.mp3")
	if path != want {
		t.Errorf("TargetPath = %q, want %q", path, want)
	}

	empty := &Library{}
	if _, err := empty.TargetPath("hǎo"); err == nil {
		t.Error("Expected error for library without roots")
	}
}

func TestMissing(t *testing.T) {
	root := testutil.CreateAudioLibrary(t, t.TempDir(), "ni3", "hao3")
	lib := NewLibrary(root)

	missing := lib.Missing([]string{"nǐ hǎo", "shuǐ", "hǎo shuǐ"})
	if len(missing) != 1 {
		t.Fatalf("Expected 1 missing syllable, got %d: %v", len(missing), missing)
	}
	if missing[0] != "shuǐ" {
		t.Errorf("Expected missing 'shuǐ', got %q", missing[0])
	}
}
