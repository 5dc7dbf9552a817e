package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/ranking"
	"github.com/jonathan/placement-matcher/internal/types"
)

// AnalyzeResume segments resume text, extracts skills per section, scores
// structural completeness under the weight profile selected by roleID, and
// matches against requirements when given.
//
// Content problems never fail the call; they are reported as warnings. This
// includes invalid UTF-8 and a CGPA off the 10-point scale. A nil profile,
// negative backlogs and an out-of-range minimum CGPA return a
// *parsing.ValidationError.
func (e *Engine) AnalyzeResume(
	text string,
	profile *types.StudentProfile,
	requirements *types.JobRequirements,
	roleID string,
) (*types.ResumeAnalysis, error) {
	if profile == nil {
		return nil, &parsing.ValidationError{Field: "profile", Message: "student profile is required"}
	}
	if err := profile.Validate(); err != nil {
		return nil, fromValidator("profile", err)
	}
	if requirements != nil {
		if err := requirements.Validate(); err != nil {
			return nil, fromValidator("requirements", err)
		}
	}
	var warnings []string
	text, repaired := sanitizeText(text)
	if repaired {
		warnings = append(warnings, "resume text contained invalid UTF-8; bad bytes were replaced")
	}
	cgpaOnScale := profile.CGPA >= 0 && profile.CGPA <= types.MaxCGPA
	if !cgpaOnScale {
		warnings = append(warnings, fmt.Sprintf("profile CGPA %.2f is outside the 0-%.0f scale; eligibility not evaluated", profile.CGPA, types.MaxCGPA))
	}

	empty := strings.TrimSpace(text) == ""
	if empty {
		warnings = append(warnings, "resume text is empty")
	}

	weights, known := ranking.Profile(roleID)
	if !known {
		warnings = append(warnings, fmt.Sprintf("unknown role %q; using %s weight profile", roleID, weights.Name))
	}

	sections := parsing.Segment(text)
	extracted := e.extractor.ExtractSections(sections)
	structure := ranking.EvaluateStructure(sections, text, weights)

	present := make(map[string]bool, len(parsing.AllSections))
	for _, name := range parsing.AllSections {
		present[name] = sections.Present(name)
	}

	result := &types.ResumeAnalysis{
		Skills:          extracted,
		Sections:        present,
		StructuralScore: structure.Score,
		Checks:          structure.Checks,
		RoleProfile:     weights.Name,
		WordCount:       structure.WordCount,
	}

	if !empty {
		warnings = append(warnings, contentWarnings(result, structure)...)
	}

	if requirements != nil {
		match, derived := e.matchRequirements(result.SkillNames(), requirements)
		result.RequirementMatch = &match
		if derived {
			warnings = append(warnings, "requirement skill lists are empty; matched against skills derived from the description")
		}
		if requirements.MinCGPA != nil && cgpaOnScale {
			meets := profile.CGPA >= *requirements.MinCGPA
			result.MeetsMinCGPA = &meets
			if !meets {
				warnings = append(warnings, fmt.Sprintf("CGPA %.2f is below the minimum %.2f", profile.CGPA, *requirements.MinCGPA))
			}
		}
	}

	result.UnverifiedProfileSkills = e.unverifiedProfileSkills(profile, extracted)
	if n := len(result.UnverifiedProfileSkills); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d profile skill(s) not evidenced in resume: %s",
			n, strings.Join(result.UnverifiedProfileSkills, ", ")))
	}
	if profile.Backlogs > 0 {
		warnings = append(warnings, fmt.Sprintf("profile lists %d active backlog(s)", profile.Backlogs))
	}

	if warnings == nil {
		warnings = []string{}
	}
	result.Warnings = warnings
	return result, nil
}

func contentWarnings(result *types.ResumeAnalysis, structure ranking.StructureResult) []string {
	var warnings []string
	if len(result.Skills) == 0 {
		warnings = append(warnings, "no recognized skills found")
	}
	for _, check := range structure.Checks {
		if check.Passed || check.Weight == 0 {
			continue
		}
		switch check.Name {
		case ranking.CheckContact:
			warnings = append(warnings, "no email address or phone number found in the header or contact section")
		case ranking.CheckEducation:
			warnings = append(warnings, "no education section found")
		case ranking.CheckExperienceOrProjects:
			warnings = append(warnings, "no experience or projects section found")
		case ranking.CheckQuantified:
			warnings = append(warnings, "no quantified achievement found")
		case ranking.CheckLength:
			if structure.WordCount < ranking.MinWords {
				warnings = append(warnings, fmt.Sprintf("resume is short: %d words, at least %d expected", structure.WordCount, ranking.MinWords))
			} else {
				warnings = append(warnings, fmt.Sprintf("resume is long: %d words, at most %d expected", structure.WordCount, ranking.MaxWords))
			}
		case ranking.CheckPublications:
			warnings = append(warnings, "no publications section found")
		}
	}
	return warnings
}

// matchRequirements matches against the explicit skill lists, or against the
// skills implied by the description when both lists are empty.
func (e *Engine) matchRequirements(candidate []string, req *types.JobRequirements) (types.MatchResult, bool) {
	required, preferred := req.RequiredSkills, req.PreferredSkills
	derived := false
	if nonBlank(required) == 0 && nonBlank(preferred) == 0 && strings.TrimSpace(req.Description) != "" {
		jd := e.analyzeJD(req.Description)
		required, preferred = jd.ImpliedRequired, jd.ImpliedPreferred
		derived = true
	}
	return ranking.Match(candidate, required, preferred, e.extractor), derived
}

func (e *Engine) unverifiedProfileSkills(profile *types.StudentProfile, extracted []types.ExtractedSkill) []string {
	found := make(map[string]struct{}, len(extracted))
	for _, s := range extracted {
		found[s.Canonical] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, name := range profile.ProfileSkillList() {
		key, _ := e.extractor.Canonical(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := found[key]; !ok {
			out = append(out, name)
		}
	}
	return out
}

func nonBlank(names []string) int {
	n := 0
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			n++
		}
	}
	return n
}
