package strokes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FetchOptions configures stroke SVG downloads
type FetchOptions struct {
	CacheDir     string // Directory for downloaded SVGs, named {codepoint}.svg
	MaxSizeBytes int64  // Maximum file size to download (0 = no limit)
	Timeout      time.Duration
}

// DefaultFetchOptions returns sensible defaults for stroke downloads
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		CacheDir:     "./stroke_svgs",
		MaxSizeBytes: 1 * 1024 * 1024, // 1MB, stroke SVGs are a few KB
		Timeout:      30 * time.Second,
	}
}

// Fetcher downloads per-character stroke-order SVGs from a registry source
// into a local cache.
type Fetcher struct {
	source  Source
	options *FetchOptions
	client  *http.Client
}

// NewFetcher creates a fetcher for the given source.
func NewFetcher(source Source, options *FetchOptions) *Fetcher {
	if options == nil {
		options = DefaultFetchOptions()
	}
	return &Fetcher{
		source:  source,
		options: options,
		client:  &http.Client{Timeout: options.Timeout},
	}
}

// CachePath returns where the SVG for a character is stored locally.
func (f *Fetcher) CachePath(char rune) string {
	return filepath.Join(f.options.CacheDir, fmt.Sprintf("%d.svg", char))
}

// Cached reports whether the SVG for a character is already downloaded.
func (f *Fetcher) Cached(char rune) bool {
	info, err := os.Stat(f.CachePath(char))
	return err == nil && !info.IsDir()
}

// Fetch downloads the stroke SVG for a character unless it is cached.
// It returns the local path. A 404 from the source is reported as a
// distinct error so callers can fall back to the font-rendered card front.
func (f *Fetcher) Fetch(ctx context.Context, char rune) (string, error) {
	outputPath := f.CachePath(char)
	if f.Cached(char) {
		return outputPath, nil
	}

	rawURL, err := f.source.RawURL(char)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(f.options.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download stroke SVG: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &NotFoundError{Char: char, Source: f.source.Name}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stroke SVG download failed with status %s", resp.Status)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Copy with size limit if specified
	if f.options.MaxSizeBytes > 0 {
		written, err := io.CopyN(file, resp.Body, f.options.MaxSizeBytes)
		if err != nil && err != io.EOF {
			os.Remove(outputPath) // Clean up on error
			return "", fmt.Errorf("failed to write file: %w", err)
		}
		if written == f.options.MaxSizeBytes {
			if _, err := resp.Body.Read(make([]byte, 1)); err != io.EOF {
				os.Remove(outputPath) // Clean up
				return "", fmt.Errorf("stroke SVG exceeds maximum size of %d bytes", f.options.MaxSizeBytes)
			}
		}
	} else {
		if _, err := io.Copy(file, resp.Body); err != nil {
			os.Remove(outputPath) // Clean up on error
			return "", fmt.Errorf("failed to write file: %w", err)
		}
	}

	return outputPath, nil
}

// FetchAll downloads stroke SVGs for every distinct Han character of the
// given strings. Characters the source does not cover are skipped with a
// warning; other errors abort.
func (f *Fetcher) FetchAll(ctx context.Context, words []string) (fetched, missing int, err error) {
	seen := make(map[rune]struct{})
	for _, word := range words {
		for _, char := range word {
			if _, ok := seen[char]; ok {
				continue
			}
			seen[char] = struct{}{}

			if f.Cached(char) {
				continue
			}
			_, err := f.Fetch(ctx, char)
			if err != nil {
				if IsNotFound(err) {
					fmt.Fprintf(os.Stderr, "Warning: %s has no stroke data for %c (U+%04X)\n",
						f.source.Name, char, char)
					missing++
					continue
				}
				return fetched, missing, err
			}
			fetched++
		}
	}
	return fetched, missing, nil
}

// NotFoundError reports that a source has no stroke data for a character.
type NotFoundError struct {
	Char   rune
	Source string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s has no stroke data for %c (U+%04X)", e.Source, e.Char, e.Char)
}

// IsNotFound reports whether err is a missing-character error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
