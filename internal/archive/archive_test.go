package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveOutput(t *testing.T) {
	tmpDir := t.TempDir()

	outputDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatalf("Failed to create output directory: %v", err)
	}

	testFile := filepath.Join(outputDir, "cards.pdf")
	if err := os.WriteFile(testFile, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	subDir := filepath.Join(outputDir, "audio")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	subFile := filepath.Join(subDir, "hao3.mp3")
	if err := os.WriteFile(subFile, []byte("sub content"), 0644); err != nil {
		t.Fatalf("Failed to create sub file: %v", err)
	}

	if err := ArchiveOutput(outputDir); err != nil {
		t.Fatalf("ArchiveOutput failed: %v", err)
	}

	// Original directory is gone
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Error("Expected output directory to be moved away")
	}

	// Archive holds a timestamped copy with the contents intact
	archiveDir := filepath.Join(tmpDir, "archive")
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 archive entry, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "out-") {
		t.Errorf("Expected archive name prefixed with 'out-', got %q", entries[0].Name())
	}

	archived := filepath.Join(archiveDir, entries[0].Name())
	if _, err := os.Stat(filepath.Join(archived, "cards.pdf")); err != nil {
		t.Error("Expected cards.pdf inside the archive")
	}
	if _, err := os.Stat(filepath.Join(archived, "audio", "hao3.mp3")); err != nil {
		t.Error("Expected audio clip inside the archive")
	}
}

func TestArchiveOutputMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if err := ArchiveOutput(missing); err == nil {
		t.Error("Expected error for missing output directory")
	}
}
