package vocab

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Common column names. The first column of the file, whatever its name,
// holds the hanzi (a single character for radical lists, possibly a word
// for vocabulary lists).
const (
	ColPinyin  = "pinyin"
	ColEnglish = "english"
)

// Entry is one row of a vocabulary file.
type Entry struct {
	Hanzi  string            // value of the first column
	Fields map[string]string // column name -> cell value
}

// Pinyin returns the tonal pinyin cell, if any.
func (e Entry) Pinyin() string { return e.Fields[ColPinyin] }

// English returns the english gloss cell, if any.
func (e Entry) English() string { return e.Fields[ColEnglish] }

// Details joins all cells except the hanzi column in file order, skipping
// empty ones. This is the text printed on the back of a flashcard.
func (e Entry) Details(columns []string) string {
	var parts []string
	for _, col := range columns[1:] {
		if v := e.Fields[col]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "  ·  ")
}

// File is a parsed vocabulary file.
type File struct {
	Columns []string // header columns in file order
	Entries []Entry
}

// Read parses a tab-separated vocabulary file. The first row is the header.
// Pinyin cells use diacritic tone marks, not tone numerals.
func Read(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("vocabulary file is empty: %s", path)
	}

	header := records[0]
	if len(header) == 0 || strings.TrimSpace(header[0]) == "" {
		return nil, fmt.Errorf("vocabulary file has no header row: %s", path)
	}
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	file := &File{Columns: columns}
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				fields[col] = strings.TrimSpace(record[i])
			}
		}
		hanzi := fields[columns[0]]
		if hanzi == "" {
			continue
		}
		file.Entries = append(file.Entries, Entry{Hanzi: hanzi, Fields: fields})
	}

	return file, nil
}

// HasColumn reports whether the file declares the named column.
func (f *File) HasColumn(name string) bool {
	for _, col := range f.Columns {
		if col == name {
			return true
		}
	}
	return false
}
