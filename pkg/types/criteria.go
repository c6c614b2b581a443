// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// notSpecified is the conventional placeholder for a PICOTT element the
// review team chose not to constrain.
const notSpecified = "Not specified"

// Requirement marks whether a criterion must be satisfied for inclusion
// or merely informs the screener.
type Requirement string

const (
	RequirementRequired Requirement = "required"
	RequirementAdvisory Requirement = "advisory"
)

// CriterionRule is an additional named screening rule beyond the PICOTT
// elements, e.g. "English language" or "Human subjects".
type CriterionRule struct {
	Name        string      `json:"name" yaml:"name"`
	Requirement Requirement `json:"requirement" yaml:"requirement"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
}

// Required reports whether the rule must be satisfied for inclusion.
func (r CriterionRule) Required() bool {
	return r.Requirement == RequirementRequired
}

// ScreeningCriteria is the PICOTT schema used to screen citations:
// Population, Intervention, Comparator, Outcome, Timeframe, and study
// Type, plus any number of additional named rules.
type ScreeningCriteria struct {
	Population   string `json:"population" yaml:"population"`
	Intervention string `json:"intervention" yaml:"intervention"`
	Comparator   string `json:"comparator" yaml:"comparator"`
	Outcome      string `json:"outcome" yaml:"outcome"`
	Timeframe    string `json:"timeframe" yaml:"timeframe"`
	StudyType    string `json:"study_type" yaml:"study_type"`

	Rules []CriterionRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// picottElements pairs each PICOTT element name with its value accessor.
// Element names double as criterion names in decisions.
func (c ScreeningCriteria) picottElements() []struct{ name, value string } {
	return []struct{ name, value string }{
		{"population", c.Population},
		{"intervention", c.Intervention},
		{"comparator", c.Comparator},
		{"outcome", c.Outcome},
		{"timeframe", c.Timeframe},
		{"study_type", c.StudyType},
	}
}

// RequiredNames returns the names of every criterion marked required:
// each specified PICOTT element plus each rule with the required mark.
// A PICOTT element is required when it is non-empty and not the
// "Not specified" placeholder.
func (c ScreeningCriteria) RequiredNames() []string {
	var names []string
	for _, el := range c.picottElements() {
		v := strings.TrimSpace(el.value)
		if v != "" && !strings.EqualFold(v, notSpecified) {
			names = append(names, el.name)
		}
	}
	for _, rule := range c.Rules {
		if rule.Required() {
			names = append(names, rule.Name)
		}
	}
	return names
}

// IsEmpty reports whether no PICOTT element and no rule is specified.
func (c ScreeningCriteria) IsEmpty() bool {
	for _, el := range c.picottElements() {
		v := strings.TrimSpace(el.value)
		if v != "" && !strings.EqualFold(v, notSpecified) {
			return false
		}
	}
	return len(c.Rules) == 0
}
