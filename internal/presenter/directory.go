package presenter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Record describes one known presenter: the canonical display name and the
// accepted name variations (short forms, common transcription spellings).
type Record struct {
	Name       string   `json:"name"`
	Variations []string `json:"variations"`
}

// Directory is the read-only registry of known presenters. Order is
// significant: matching walks records in directory order.
type Directory struct {
	records []Record
}

type directoryFile struct {
	Presenters []Record `json:"presenters"`
}

// NewDirectory builds a directory from records, rejecting duplicate
// canonical names.
func NewDirectory(records []Record) (*Directory, error) {
	seen := make(map[string]struct{}, len(records))
	cleaned := make([]Record, 0, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, fmt.Errorf("presenter directory: empty canonical name")
		}
		key := fold(name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("presenter directory: duplicate canonical name %q", name)
		}
		seen[key] = struct{}{}
		variations := make([]string, 0, len(rec.Variations))
		for _, v := range rec.Variations {
			if v = strings.TrimSpace(v); v != "" {
				variations = append(variations, v)
			}
		}
		cleaned = append(cleaned, Record{Name: name, Variations: variations})
	}
	return &Directory{records: cleaned}, nil
}

// LoadDirectory reads the presenter directory JSON file. A malformed file is
// a hard error: resolution cannot proceed without canonical reference data.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presenter directory %s: %w", path, err)
	}
	var parsed directoryFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse presenter directory %s: %w", path, err)
	}
	dir, err := NewDirectory(parsed.Presenters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dir, nil
}

// Records returns the directory entries in matching order.
func (d *Directory) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Names returns the canonical names in directory order.
func (d *Directory) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.records))
	for _, rec := range d.records {
		names = append(names, rec.Name)
	}
	return names
}

// Len reports the number of known presenters.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Verify returns the canonical name matching the supplied value
// case-insensitively, or "" when the value is not in the directory.
func (d *Directory) Verify(name string) string {
	if d == nil {
		return ""
	}
	folded := fold(strings.TrimSpace(name))
	if folded == "" {
		return ""
	}
	for _, rec := range d.records {
		if fold(rec.Name) == folded {
			return rec.Name
		}
	}
	return ""
}

// fold applies Unicode case folding for caseless comparison. A fresh Caser is
// taken per call; cases.Caser is stateful and not safe for shared use.
func fold(s string) string {
	return cases.Fold().String(s)
}
