// Package types provides type definitions for structured data used throughout the placement-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Category classifies a lexicon skill
type Category string

// Skill categories
const (
	CategoryLanguage  Category = "LANGUAGE"
	CategoryFramework Category = "FRAMEWORK"
	CategoryTool      Category = "TOOL"
	CategorySoftSkill Category = "SOFT_SKILL"
	CategoryDomain    Category = "DOMAIN"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryLanguage, CategoryFramework, CategoryTool, CategorySoftSkill, CategoryDomain:
		return true
	default:
		return false
	}
}

// MatchType records how a skill surface form was recognized
type MatchType string

// Match types
const (
	MatchExact   MatchType = "EXACT"
	MatchSynonym MatchType = "SYNONYM"
)

// Seniority is a coarse experience band derived from a job description
type Seniority string

// Seniority bands
const (
	SeniorityEntry   Seniority = "ENTRY"
	SeniorityMid     Seniority = "MID"
	SenioritySenior  Seniority = "SENIOR"
	SeniorityUnknown Seniority = "UNKNOWN"
)

// ExtractedSkill is a canonical skill found in a piece of text
type ExtractedSkill struct {
	Canonical     string    `json:"canonical"`
	Category      Category  `json:"category"`
	MatchType     MatchType `json:"match_type"`
	SourceSection string    `json:"source_section,omitempty"`
}

// MatchResult compares a candidate skill set against a target skill set
type MatchResult struct {
	Score            float64  `json:"score"` // 0-100
	MatchedSkills    []string `json:"matched_skills"`
	MissingRequired  []string `json:"missing_required"`
	MissingPreferred []string `json:"missing_preferred"`
}

// StructuralCheck is one pass/fail completeness check with its weight under the active profile
type StructuralCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Weight int    `json:"weight"`
}

// ResumeAnalysis is the result of analyzing one resume
type ResumeAnalysis struct {
	Skills                  []ExtractedSkill  `json:"skills"`
	Sections                map[string]bool   `json:"sections"`
	StructuralScore         float64           `json:"structural_score"` // 0-100
	Checks                  []StructuralCheck `json:"checks"`
	RoleProfile             string            `json:"role_profile"`
	WordCount               int               `json:"word_count"`
	RequirementMatch        *MatchResult      `json:"requirement_match,omitempty"`
	MeetsMinCGPA            *bool             `json:"meets_min_cgpa,omitempty"`
	UnverifiedProfileSkills []string          `json:"unverified_profile_skills,omitempty"`
	Warnings                []string          `json:"warnings"`
}

// SkillNames returns the canonical names of the extracted skills in order.
func (a *ResumeAnalysis) SkillNames() []string {
	names := make([]string, len(a.Skills))
	for i, s := range a.Skills {
		names[i] = s.Canonical
	}
	return names
}

// JDAnalysis is the skill set and seniority implied by a job description
type JDAnalysis struct {
	ImpliedRequired  []string  `json:"implied_required"`
	ImpliedPreferred []string  `json:"implied_preferred"`
	SeniorityHint    Seniority `json:"seniority_hint"`
	ExperienceYears  *int      `json:"experience_years,omitempty"` // Minimum years of the strongest phrase
	Warnings         []string  `json:"warnings,omitempty"`
}
