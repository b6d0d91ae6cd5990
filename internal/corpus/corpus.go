// Package corpus holds the reference texts that input is compared against.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrDuplicateID is returned when two entries share an id.
	ErrDuplicateID = errors.New("duplicate entry id")
	// ErrEmptyAuthor is returned for an entry without an author.
	ErrEmptyAuthor = errors.New("entry author is empty")
)

// Entry is one reference text attributed to an author.
type Entry struct {
	ID     int    `yaml:"id" json:"id"`
	Author string `yaml:"author" json:"author"`
	Text   string `yaml:"text" json:"text"`
}

// Corpus is an ordered, read-only collection of entries.
type Corpus struct {
	entries []Entry
	byID    map[int]int
}

// New validates entries and returns a corpus holding a copy of them.
func New(entries []Entry) (*Corpus, error) {
	c := &Corpus{
		entries: make([]Entry, len(entries)),
		byID:    make(map[int]int, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		if strings.TrimSpace(e.Author) == "" {
			return nil, fmt.Errorf("entry %d: %w", e.ID, ErrEmptyAuthor)
		}
		if _, ok := c.byID[e.ID]; ok {
			return nil, fmt.Errorf("entry %d: %w", e.ID, ErrDuplicateID)
		}
		c.byID[e.ID] = i
	}
	return c, nil
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in corpus order.
func (c *Corpus) Entries() []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.entries...)
}

// At returns the i-th entry.
func (c *Corpus) At(i int) Entry {
	return c.entries[i]
}

// Get looks an entry up by id.
func (c *Corpus) Get(id int) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Load reads a corpus from source. The format is chosen by extension:
// .yaml/.yml and .db/.sqlite/.sqlite3. An empty source returns Sample().
func Load(ctx context.Context, source string) (*Corpus, error) {
	if source == "" {
		return Sample(), nil
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return LoadYAML(source)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, source)
	default:
		return nil, fmt.Errorf("unsupported corpus format: %s", source)
	}
}
