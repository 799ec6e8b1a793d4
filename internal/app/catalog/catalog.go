// Package catalog holds the fixed, ordered curriculum problem list.
//
// The catalog is loaded once at process start (from a YAML file, or the
// embedded default sheet) and treated as immutable for the process
// lifetime. Ordering is the position in the file; "next problem" means the
// positional successor of the entry with a given id.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed dsa_sheet.yaml
var defaultSheet []byte

// Entry is one problem in the curriculum.
type Entry struct {
	ID            int      `yaml:"id"`
	Platform      string   `yaml:"platform"`
	PracticeLinks []string `yaml:"practice_links"`
	ResourceLinks []string `yaml:"resource_links"`
}

// Catalog is an immutable ordered problem list with id lookup.
type Catalog struct {
	entries []Entry
	byID    map[int]int // id -> index
}

type sheetFile struct {
	Problems []Entry `yaml:"problems"`
}

// Load reads the catalog from path. An empty path loads the embedded
// default sheet.
func Load(path string) (*Catalog, error) {
	data := defaultSheet
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read curriculum file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse builds a Catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f sheetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	if len(f.Problems) == 0 {
		return nil, fmt.Errorf("curriculum has no problems")
	}

	byID := make(map[int]int, len(f.Problems))
	for i, e := range f.Problems {
		if e.ID <= 0 {
			return nil, fmt.Errorf("curriculum entry %d: id must be positive, got %d", i, e.ID)
		}
		if _, dup := byID[e.ID]; dup {
			return nil, fmt.Errorf("curriculum entry %d: duplicate id %d", i, e.ID)
		}
		byID[e.ID] = i
	}
	return &Catalog{entries: f.Problems, byID: byID}, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// List returns the entries in order. The returned slice must not be
// modified.
func (c *Catalog) List() []Entry { return c.entries }

// First returns the entry at position 0.
func (c *Catalog) First() Entry { return c.entries[0] }

// ByID returns the entry with the given id.
func (c *Catalog) ByID(id int) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Next returns the positional successor of the entry with the given id.
// ok is false when id is unknown or when the entry is the last one.
func (c *Catalog) Next(id int) (Entry, bool) {
	i, found := c.byID[id]
	if !found || i+1 >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[i+1], true
}

// Resources maps an entry's first practice and resource links into the
// label→URL form tasks carry.
func Resources(e Entry) map[string]string {
	res := make(map[string]string, 2)
	if len(e.PracticeLinks) > 0 {
		res["practice"] = e.PracticeLinks[0]
	}
	if len(e.ResourceLinks) > 0 {
		res["resource"] = e.ResourceLinks[0]
	}
	return res
}
