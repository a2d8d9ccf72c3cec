package voiceprint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Database maps presenter names to their ordered reference embeddings.
// The on-disk form is {"<presenter>": [[float, ...], ...], ...}.
type Database struct {
	references map[string][]Embedding
}

// NewDatabase builds a database from a reference map. Presenters with no
// embeddings are dropped; mixed embedding dimensions are rejected.
func NewDatabase(references map[string][]Embedding) (*Database, error) {
	dim := 0
	cleaned := make(map[string][]Embedding, len(references))
	for name, embeddings := range references {
		if len(embeddings) == 0 {
			continue
		}
		kept := make([]Embedding, 0, len(embeddings))
		for i, emb := range embeddings {
			if len(emb) == 0 {
				return nil, fmt.Errorf("voiceprint database: empty embedding %d for %q", i, name)
			}
			if dim == 0 {
				dim = len(emb)
			}
			if len(emb) != dim {
				return nil, fmt.Errorf("voiceprint database: embedding dimension %d for %q, want %d", len(emb), name, dim)
			}
			kept = append(kept, emb)
		}
		cleaned[name] = kept
	}
	return &Database{references: cleaned}, nil
}

// LoadDatabase reads a voiceprint database JSON file. A malformed file is a
// hard error; the biometric fallback cannot run on corrupt reference data.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read voiceprint database %s: %w", path, err)
	}
	var parsed map[string][]Embedding
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse voiceprint database %s: %w", path, err)
	}
	db, err := NewDatabase(parsed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// Save writes the database JSON, creating parent directories as needed.
func (d *Database) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure database dir: %w", err)
	}
	data, err := json.MarshalIndent(d.references, "", "  ")
	if err != nil {
		return fmt.Errorf("encode voiceprint database: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write voiceprint database %s: %w", path, err)
	}
	return nil
}

// Names returns the presenter names in sorted order.
func (d *Database) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.references))
	for name := range d.references {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// References returns the embeddings stored for a presenter.
func (d *Database) References(name string) []Embedding {
	if d == nil {
		return nil
	}
	return d.references[name]
}

// Len reports the number of presenters with at least one embedding.
func (d *Database) Len() int {
	if d == nil {
		return 0
	}
	return len(d.references)
}

// TotalEmbeddings reports the number of stored embeddings across presenters.
func (d *Database) TotalEmbeddings() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, embeddings := range d.references {
		total += len(embeddings)
	}
	return total
}
