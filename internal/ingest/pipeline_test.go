package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	ris := writeFile(t, dir, "refs.ris",
		"TY  - JOUR\nTI  - Title A\nAU  - Smith, J\nPY  - 2020\nER  - \n")
	medline := writeFile(t, dir, "refs.nbib",
		"PMID- 1\nTI  - Title B\nAB  - An abstract.\nDP  - 2019\n")
	unknown := writeFile(t, dir, "notes.txt", "just some prose\n")

	batch := ImportFiles([]string{ris, medline, unknown}, types.IngestConfig{Workers: 2})

	if len(batch.Files) != 3 {
		t.Fatalf("got %d file results, want 3", len(batch.Files))
	}
	// Results keep input order regardless of worker completion.
	if batch.Files[0].Path != ris || batch.Files[1].Path != medline || batch.Files[2].Path != unknown {
		t.Errorf("file results out of input order")
	}

	if batch.Files[0].Format != types.FormatRIS {
		t.Errorf("format = %q, want ris", batch.Files[0].Format)
	}
	if !errors.Is(batch.Files[2].Err, ErrUnknownFormat) {
		t.Errorf("unknown file error = %v, want ErrUnknownFormat", batch.Files[2].Err)
	}
	if got := len(batch.Failed()); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}

	if len(batch.Citations) != 2 {
		t.Fatalf("got %d merged citations, want 2", len(batch.Citations))
	}
	if !sort.SliceIsSorted(batch.Citations, func(i, j int) bool {
		return batch.Citations[i].ID < batch.Citations[j].ID
	}) {
		t.Errorf("merged citations not sorted by ID")
	}
}

func TestImportFilesIdempotentIdentity(t *testing.T) {
	dir := t.TempDir()
	content := "TY  - JOUR\nTI  - Title A\nAU  - Smith, J\nPY  - 2020\nER  - \n"
	a := writeFile(t, dir, "a.ris", content)
	b := writeFile(t, dir, "b.ris", content)

	batch := ImportFiles([]string{a, b}, types.IngestConfig{})
	if len(batch.Citations) != 2 {
		t.Fatalf("got %d citations, want 2", len(batch.Citations))
	}
	// Identical raw content yields the identical ID regardless of which
	// file carried it.
	if batch.Citations[0].ID != batch.Citations[1].ID {
		t.Errorf("IDs differ for identical content: %s vs %s",
			batch.Citations[0].ID, batch.Citations[1].ID)
	}
}

func TestImportFilesUnreadable(t *testing.T) {
	batch := ImportFiles([]string{filepath.Join(t.TempDir(), "missing.ris")}, types.IngestConfig{})
	if len(batch.Failed()) != 1 {
		t.Fatalf("Failed() = %d, want 1", len(batch.Failed()))
	}
	if len(batch.Citations) != 0 {
		t.Errorf("got %d citations from a missing file", len(batch.Citations))
	}
}
