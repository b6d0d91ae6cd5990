package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type document struct {
	Entries []Entry `yaml:"entries"`
}

// LoadYAML reads a corpus from a YAML document of the form
// {entries: [{id, author, text}, ...]}.
func LoadYAML(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (*Corpus, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	return New(doc.Entries)
}

// WriteYAML writes c to path in the format read by LoadYAML.
func WriteYAML(path string, c *Corpus) error {
	data, err := yaml.Marshal(document{Entries: c.Entries()})
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}
