// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/pdiddy/screening-engine/internal/normalize"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// FileResult is the outcome of importing one file. Err is set when the
// whole file failed (unreadable or unknown format); record-level
// problems land in Warnings instead.
type FileResult struct {
	Path      string           `json:"path"`
	Format    types.FormatKind `json:"format,omitempty"`
	Citations []types.Citation `json:"citations,omitempty"`
	Warnings  []Warning        `json:"warnings,omitempty"`
	Err       error            `json:"-"`
}

// BatchResult aggregates a multi-file import run.
type BatchResult struct {
	Files []FileResult `json:"files"`

	// Citations is the merged output of every successful file, sorted
	// by identifier so the result is reproducible regardless of which
	// worker finished first.
	Citations []types.Citation `json:"citations"`
}

// Failed returns the results whose whole file failed.
func (b BatchResult) Failed() []FileResult {
	var failed []FileResult
	for _, f := range b.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// WarningCount returns the total number of record-level warnings.
func (b BatchResult) WarningCount() int {
	n := 0
	for _, f := range b.Files {
		n += len(f.Warnings)
	}
	return n
}

// ImportFiles runs the detect-parse-normalize pipeline for each file on
// a bounded worker pool. Files are independent, so workers share no
// mutable state; an unknown format fails that file only and the batch
// continues. Results keep the input file order.
func ImportFiles(paths []string, cfg types.IngestConfig) BatchResult {
	results := make([]FileResult, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.WorkerCount(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = importFile(paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	batch := BatchResult{Files: results}
	for _, f := range results {
		batch.Citations = append(batch.Citations, f.Citations...)
	}
	// Identity is content-derived, so sorting by ID makes the merge
	// order-independent of completion order.
	sort.Slice(batch.Citations, func(i, j int) bool {
		return batch.Citations[i].ID < batch.Citations[j].ID
	})
	return batch
}

// importFile runs detect, parse, and normalize for a single file.
func importFile(path string) FileResult {
	result := FileResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", path, err)
		return result
	}

	kind, err := Detect(data, path)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	result.Format = kind

	records, warnings, err := Parse(data, kind)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	result.Warnings = warnings

	for _, rec := range records {
		result.Citations = append(result.Citations, normalize.Normalize(rec, kind))
	}
	return result
}
