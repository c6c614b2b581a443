// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
)

// YearCount is one bucket of the corpus year distribution.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// Stats summarizes the stored corpus.
type Stats struct {
	Citations int `json:"citations" yaml:"citations"`
	Decisions int `json:"decisions" yaml:"decisions"`
	Included  int `json:"included" yaml:"included"`

	// ByFormat counts citations per source format.
	ByFormat map[string]int `json:"by_format" yaml:"by_format"`

	// Years is the publication-year distribution, ascending, with
	// unknown years (stored as zero) omitted.
	Years []YearCount `json:"years" yaml:"years"`
}

// Stats returns corpus-level counts and the year distribution.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByFormat: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM citations`).Scan(&stats.Citations); err != nil {
		return Stats{}, fmt.Errorf("counting citations: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM decisions`).Scan(&stats.Decisions); err != nil {
		return Stats{}, fmt.Errorf("counting decisions: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM decisions WHERE verdict = 'Include'`).Scan(&stats.Included); err != nil {
		return Stats{}, fmt.Errorf("counting inclusions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT format, count(*) FROM citations GROUP BY format`)
	if err != nil {
		return Stats{}, fmt.Errorf("querying format counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var format string
		var count int
		if err := rows.Scan(&format, &count); err != nil {
			return Stats{}, fmt.Errorf("scanning format count: %w", err)
		}
		stats.ByFormat[format] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	yearRows, err := s.db.QueryContext(ctx,
		`SELECT year, count(*) FROM citations WHERE year > 0 GROUP BY year ORDER BY year`)
	if err != nil {
		return Stats{}, fmt.Errorf("querying year distribution: %w", err)
	}
	defer yearRows.Close()
	for yearRows.Next() {
		var yc YearCount
		if err := yearRows.Scan(&yc.Year, &yc.Count); err != nil {
			return Stats{}, fmt.Errorf("scanning year count: %w", err)
		}
		stats.Years = append(stats.Years, yc)
	}
	return stats, yearRows.Err()
}
