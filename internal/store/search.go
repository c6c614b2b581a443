// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SearchResult is one full-text search hit over the corpus.
type SearchResult struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet"`

	// URL points at the citation's PubMed page when a PMID is known,
	// else its DOI resolver page, else empty.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Search runs an FTS5 full-text query over titles and abstracts,
// ranked by relevance. A limit of zero applies the default of 20.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.title,
			snippet(citations_fts, 1, '', '', '...', 24),
			c.pmid, c.doi
		FROM citations_fts
		JOIN citations c ON c.rowid = citations_fts.rowid
		WHERE citations_fts MATCH ?
		ORDER BY citations_fts.rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching corpus: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			r       SearchResult
			snippet sql.NullString
			pmid    sql.NullString
			doi     sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Title, &snippet, &pmid, &doi); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		if snippet.Valid && strings.TrimSpace(snippet.String) != "" {
			r.Snippet = snippet.String
		} else {
			r.Snippet = r.Title
		}
		switch {
		case pmid.Valid && pmid.String != "":
			r.URL = "https://pubmed.ncbi.nlm.nih.gov/" + pmid.String + "/"
		case doi.Valid && doi.String != "":
			r.URL = "https://doi.org/" + doi.String
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
