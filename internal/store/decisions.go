// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// DecisionSummary holds counts from a decision import run. Rejected
// lists the citation IDs that decisions referenced but the store does
// not hold.
type DecisionSummary struct {
	Inserted int
	Existing int
	Rejected []string
}

// InsertDecisions stores a batch of screening decisions. A decision
// referencing an unknown citation is rejected individually; the rest
// of the batch still commits. Decision identity is content-derived, so
// re-importing the same results only grows the Existing count.
func (s *Store) InsertDecisions(ctx context.Context, decisions []types.ScreeningDecision) (DecisionSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DecisionSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PrepareContext(ctx, `SELECT 1 FROM citations WHERE id = ?`)
	if err != nil {
		return DecisionSummary{}, fmt.Errorf("preparing lookup: %w", err)
	}
	defer exists.Close()

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO decisions (id, citation_id, verdict, rationale, matched_criteria, confidence)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return DecisionSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	var summary DecisionSummary
	for _, d := range decisions {
		var one int
		err := exists.QueryRowContext(ctx, d.CitationID).Scan(&one)
		if err == sql.ErrNoRows {
			summary.Rejected = append(summary.Rejected, d.CitationID)
			continue
		}
		if err != nil {
			return DecisionSummary{}, fmt.Errorf("checking citation %s: %w", d.CitationID, err)
		}

		matchedJSON, _ := json.Marshal(d.MatchedCriteria)
		res, err := insert.ExecContext(ctx,
			d.ID, d.CitationID, string(d.Verdict), d.Rationale,
			string(matchedJSON), string(d.Confidence))
		if err != nil {
			return DecisionSummary{}, fmt.Errorf("inserting decision %s: %w", d.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return DecisionSummary{}, fmt.Errorf("inserting decision %s: %w", d.ID, err)
		}
		if n > 0 {
			summary.Inserted++
		} else {
			summary.Existing++
		}
	}

	if err := tx.Commit(); err != nil {
		return DecisionSummary{}, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// ListDecisions returns stored decisions ordered by ID. With citation
// IDs given, only decisions on those citations are returned; with none,
// all decisions.
func (s *Store) ListDecisions(ctx context.Context, citationIDs []string) ([]types.ScreeningDecision, error) {
	q := `SELECT id, citation_id, verdict, rationale, matched_criteria, confidence FROM decisions`
	var args []any
	if len(citationIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(citationIDs)), ",")
		q += ` WHERE citation_id IN (` + placeholders + `)`
		for _, id := range citationIDs {
			args = append(args, id)
		}
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []types.ScreeningDecision
	for rows.Next() {
		var (
			d           types.ScreeningDecision
			verdict     string
			confidence  sql.NullString
			matchedJSON sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.CitationID, &verdict, &d.Rationale, &matchedJSON, &confidence); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		d.Verdict = types.Verdict(verdict)
		if confidence.Valid {
			d.Confidence = types.Confidence(confidence.String)
		}
		if matchedJSON.Valid {
			json.Unmarshal([]byte(matchedJSON.String), &d.MatchedCriteria)
		}
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}
