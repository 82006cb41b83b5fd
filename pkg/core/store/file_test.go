package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRepoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepo(dir)
	ctx := context.Background()

	type doc struct {
		Total float64 `json:"total"`
	}
	if err := repo.SaveDocument(ctx, "lead-1", "Acme", KindRatios, doc{Total: 82.31}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Artifacts land under Extractions/ next to the statements.
	if _, err := os.Stat(filepath.Join(dir, "Extractions", "ratios.json")); err != nil {
		t.Fatalf("artifact file: %v", err)
	}

	var out doc
	if err := repo.LoadDocument(ctx, "lead-1", KindRatios, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Total != 82.31 {
		t.Errorf("total = %v", out.Total)
	}

	// Saving again replaces the document wholesale.
	if err := repo.SaveDocument(ctx, "lead-1", "Acme", KindRatios, doc{Total: 90}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	if err := repo.LoadDocument(ctx, "lead-1", KindRatios, &out); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if out.Total != 90 {
		t.Errorf("total after overwrite = %v", out.Total)
	}
}

func TestFileRepoMissingDocument(t *testing.T) {
	repo := NewFileRepo(t.TempDir())
	var out map[string]interface{}
	err := repo.LoadDocument(context.Background(), "lead-1", KindSummaries, &out)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing document error = %v, want ErrNotFound", err)
	}
}
