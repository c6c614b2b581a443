// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// SetCriteria stores the review's screening criteria, replacing any
// previous version. One review, one criteria record.
func (s *Store) SetCriteria(ctx context.Context, criteria types.ScreeningCriteria) error {
	payload, err := yaml.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("encoding criteria: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO criteria (id, payload) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET payload=excluded.payload`,
		string(payload))
	if err != nil {
		return fmt.Errorf("storing criteria: %w", err)
	}
	return nil
}

// GetCriteria returns the stored screening criteria. The boolean is
// false when none have been set yet.
func (s *Store) GetCriteria(ctx context.Context) (types.ScreeningCriteria, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM criteria WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return types.ScreeningCriteria{}, false, nil
	}
	if err != nil {
		return types.ScreeningCriteria{}, false, fmt.Errorf("loading criteria: %w", err)
	}

	var criteria types.ScreeningCriteria
	if err := yaml.Unmarshal([]byte(payload), &criteria); err != nil {
		return types.ScreeningCriteria{}, false, fmt.Errorf("decoding criteria: %w", err)
	}
	return criteria, true, nil
}
