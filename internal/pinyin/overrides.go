package pinyin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Dict is a hanzi to tonal-pinyin override dictionary. It is consulted
// before the vocabulary file's own pinyin column, for rows where the column
// is missing or known to be wrong.
type Dict map[string]string

// LoadDict reads a YAML override dictionary. A missing file is not an
// error; it yields an empty dictionary.
func LoadDict(path string) (Dict, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Dict), nil
		}
		return nil, fmt.Errorf("failed to read pinyin overrides: %w", err)
	}
	var d Dict
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("failed to parse pinyin overrides: %w", err)
	}
	if d == nil {
		d = make(Dict)
	}
	return d, nil
}

// Update sets the pinyin for a hanzi entry.
func (d Dict) Update(hanzi, tonal string) {
	d[hanzi] = tonal
}

// Write persists the dictionary as YAML.
func (d Dict) Write(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal pinyin overrides: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write pinyin overrides: %w", err)
	}
	return nil
}
