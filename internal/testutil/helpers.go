package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// WriteVocabFile writes a tab-separated vocabulary fixture and returns its
// path. Each row is given as its cells; the first row is the header.
func WriteVocabFile(t *testing.T, dir string, rows ...[]string) string {
	t.Helper()

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}

	path := filepath.Join(dir, "vocab.tsv")
	CreateTestFile(t, path, []byte(b.String()))
	return path
}

// CreateAudioLibrary creates a voice directory populated with fake clips for
// the given numbered syllables (e.g. "hao3", "ma5") and returns the
// directory path.
func CreateAudioLibrary(t *testing.T, baseDir string, syllables ...string) string {
	t.Helper()

	root := filepath.Join(baseDir, "Pinyin-Female")
	for _, syl := range syllables {
		path := filepath.Join(root, syl+".mp3")
		CreateTestFile(t, path, GenerateAudioData())
	}
	return root
}

// GenerateAudioData generates mock audio data
func GenerateAudioData() []byte {
	// Simple mock MP3 header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
