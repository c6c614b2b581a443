// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks an imported citation corpus for data-quality
// problems before screening. Checks are read-only and advisory: issues
// are reported to the caller, never fixed up or persisted.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/screening-engine/internal/normalize"
	"github.com/pdiddy/screening-engine/pkg/types"
)

// nowFunc is a seam for tests that pin the year-plausibility window.
var nowFunc = time.Now

// Check runs every data-quality rule over the corpus and returns the
// issues found, per-citation rules first, duplicate classes after.
func Check(citations []types.Citation) []types.ValidationIssue {
	var issues []types.ValidationIssue

	maxYear := nowFunc().Year() + 1
	for _, c := range citations {
		if strings.TrimSpace(c.Title) == "" {
			issues = append(issues, issue(types.IssueMissingTitle, types.SeverityCritical,
				"citation has no title", c.ID))
		}
		if strings.TrimSpace(c.Abstract) == "" {
			issues = append(issues, issue(types.IssueMissingAbstract, types.SeverityCritical,
				"citation has no abstract; it cannot be screened on content", c.ID))
		}
		if c.Year == 0 {
			issues = append(issues, issue(types.IssueInvalidYear, types.SeverityWarning,
				"citation has no publication year", c.ID))
		} else if c.Year < 1900 || c.Year > maxYear {
			issues = append(issues, issue(types.IssueInvalidYear, types.SeverityWarning,
				fmt.Sprintf("publication year %d is outside the plausible range [1900, %d]", c.Year, maxYear), c.ID))
		}
	}

	issues = append(issues, duplicateDOIs(citations)...)
	issues = append(issues, likelyDuplicates(citations)...)
	return issues
}

func issue(code types.IssueCode, sev types.Severity, msg string, ids ...string) types.ValidationIssue {
	sort.Strings(ids)
	return types.ValidationIssue{CitationIDs: ids, Severity: sev, Code: code, Message: msg}
}

// duplicateDOIs groups citations by normalized DOI and reports one
// issue per group with more than one member.
func duplicateDOIs(citations []types.Citation) []types.ValidationIssue {
	groups := make(map[string][]string)
	for _, c := range citations {
		doi := strings.ToLower(normalize.NormalizeDOI(c.DOI))
		if doi == "" {
			continue
		}
		groups[doi] = append(groups[doi], c.ID)
	}
	return dupIssues(groups, func(key string, n int) types.ValidationIssue {
		return issue(types.IssueDuplicateDOI, types.SeverityWarning,
			fmt.Sprintf("%d citations share DOI %s", n, key))
	})
}

var nonWord = regexp.MustCompile(`[^a-z0-9 ]+`)

// dedupeKey is the fuzzy-duplicate signature: punctuation- and
// case-normalized title, plus year and first-author family name.
func dedupeKey(c types.Citation) string {
	title := nonWord.ReplaceAllString(strings.ToLower(c.Title), "")
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return ""
	}
	family := c.FirstAuthor()
	if f, _, ok := strings.Cut(family, ","); ok {
		family = f
	}
	return fmt.Sprintf("%s|%d|%s", title, c.Year, strings.ToLower(strings.TrimSpace(family)))
}

// likelyDuplicates reports citation groups whose titles, years, and
// first authors coincide after normalization. DOI-identical pairs are
// already covered by duplicateDOIs, but metadata twins without DOIs
// only surface here.
func likelyDuplicates(citations []types.Citation) []types.ValidationIssue {
	groups := make(map[string][]string)
	titles := make(map[string]string)
	for _, c := range citations {
		key := dedupeKey(c)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], c.ID)
		titles[key] = c.Title
	}
	return dupIssues(groups, func(key string, n int) types.ValidationIssue {
		return issue(types.IssueLikelyDuplicate, types.SeverityWarning,
			fmt.Sprintf("%d citations look like the same work: %q", n, titles[key]))
	})
}

// dupIssues turns duplicate groups into issues, one per group, with
// every member referenced. Groups are emitted in sorted-key order so
// the report is deterministic.
func dupIssues(groups map[string][]string, build func(key string, n int) types.ValidationIssue) []types.ValidationIssue {
	keys := make([]string, 0, len(groups))
	for k, ids := range groups {
		if len(ids) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var issues []types.ValidationIssue
	for _, k := range keys {
		is := build(k, len(groups[k]))
		is.CitationIDs = append([]string(nil), groups[k]...)
		sort.Strings(is.CitationIDs)
		issues = append(issues, is)
	}
	return issues
}
