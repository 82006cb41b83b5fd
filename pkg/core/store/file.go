package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileRepo stores artifacts as JSON files under <dir>/Extractions/, the
// same layout batch runs write for inspection. It serves single-machine
// runs and tests that have no database.
type FileRepo struct {
	dir string
}

// NewFileRepo roots a repository at a company data directory.
func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{dir: dir}
}

func (r *FileRepo) path(kind string) string {
	return filepath.Join(r.dir, "Extractions", kind+".json")
}

// SaveDocument writes the artifact, fully replacing any previous file.
func (r *FileRepo) SaveDocument(_ context.Context, leadID, customerName, kind string, doc interface{}) error {
	_ = leadID
	_ = customerName
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	path := r.path(kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	return nil
}

// LoadDocument reads the artifact back; a missing file is ErrNotFound.
func (r *FileRepo) LoadDocument(_ context.Context, leadID, kind string, out interface{}) error {
	data, err := os.ReadFile(r.path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s for lead %s", ErrNotFound, kind, leadID)
		}
		return fmt.Errorf("read %s: %w", kind, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}
