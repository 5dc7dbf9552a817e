// Package types provides type definitions for structured data used throughout the placement-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxCGPA is the top of the CGPA scale
const MaxCGPA = 10.0

// StudentProfile is the structured profile supplied by the persistence layer.
// CGPA is not range-checked here; the analyzer warns when it is off the scale.
type StudentProfile struct {
	CGPA     float64 `json:"cgpa"`
	Branch   string  `json:"branch"`
	Backlogs int     `json:"backlogs" validate:"gte=0"`
	Skills   string  `json:"skills,omitempty"` // Free text, comma-separated
}

// JobRequirements is a fixed requirement set for a drive
type JobRequirements struct {
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	MinCGPA         *float64 `json:"min_cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Description     string   `json:"description,omitempty"`
}

// ProfileSkillList splits the free-text skills field on commas, semicolons and newlines.
func (p *StudentProfile) ProfileSkillList() []string {
	if p.Skills == "" {
		return nil
	}
	parts := strings.FieldsFunc(p.Skills, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the StudentProfile using the validator.
func (p *StudentProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the JobRequirements using the validator.
func (r *JobRequirements) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
