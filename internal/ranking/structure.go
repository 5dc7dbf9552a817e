package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/types"
)

// Structural check names
const (
	CheckContact              = "contact"
	CheckEducation            = "education"
	CheckExperienceOrProjects = "experience_or_projects"
	CheckQuantified           = "quantified_achievement"
	CheckLength               = "length"
	CheckPublications         = "publications"
)

// checkOrder is the order checks are reported in
var checkOrder = []string{
	CheckContact,
	CheckEducation,
	CheckExperienceOrProjects,
	CheckQuantified,
	CheckLength,
	CheckPublications,
}

// Word-count band for the length check, inclusive
const (
	MinWords = 200
	MaxWords = 1200
)

// quantifierWindow is how many words an action verb may sit from a quantity
const quantifierWindow = 12

// DefaultProfile is the weight profile used when no role is given
const DefaultProfile = "default"

// WeightProfile assigns each structural check its pass weight. Weights sum to 100.
type WeightProfile struct {
	Name    string
	Weights map[string]int
}

var profiles = map[string]WeightProfile{
	DefaultProfile: {
		Name: DefaultProfile,
		Weights: map[string]int{
			CheckContact: 20, CheckEducation: 20, CheckExperienceOrProjects: 25,
			CheckQuantified: 20, CheckLength: 15, CheckPublications: 0,
		},
	},
	"research": {
		Name: "research",
		Weights: map[string]int{
			CheckContact: 15, CheckEducation: 20, CheckExperienceOrProjects: 15,
			CheckQuantified: 10, CheckLength: 10, CheckPublications: 30,
		},
	},
	"internship": {
		Name: "internship",
		Weights: map[string]int{
			CheckContact: 20, CheckEducation: 30, CheckExperienceOrProjects: 20,
			CheckQuantified: 15, CheckLength: 15, CheckPublications: 0,
		},
	},
}

// Profile returns the weight profile for roleID. An empty roleID selects the
// default profile. An unknown roleID returns the default profile and false.
func Profile(roleID string) (WeightProfile, bool) {
	id := strings.ToLower(strings.TrimSpace(roleID))
	if id == "" {
		return profiles[DefaultProfile], true
	}
	p, ok := profiles[id]
	if !ok {
		return profiles[DefaultProfile], false
	}
	return p, true
}

// ProfileNames returns the known role profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total returns the sum of the profile's weights.
func (p WeightProfile) Total() int {
	total := 0
	for _, w := range p.Weights {
		total += w
	}
	return total
}

// StructureResult holds the outcome of the structural checks
type StructureResult struct {
	Checks    []types.StructuralCheck
	Score     float64
	WordCount int
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// phoneCandidateRe finds digit runs with common separators; digit count is checked separately
	phoneCandidateRe = regexp.MustCompile(`\+?\(?\d[\d \t().\-]{6,}\d`)
	quantityRe       = regexp.MustCompile(`^([$€£₹]|rs\.?|inr)?\d+(?:[.,]\d+)*(%|\+|k|m|mn|x|ms|s|hrs?)?$`)
)

var actionVerbs = toSet(
	"accelerated", "achieved", "automated", "boosted", "built", "created", "cut",
	"decreased", "delivered", "deployed", "designed", "developed", "generated",
	"grew", "handled", "implemented", "improved", "increased", "launched", "led",
	"managed", "mentored", "migrated", "optimized", "organized", "processed",
	"raised", "reduced", "saved", "scaled", "served", "streamlined", "trained", "won",
)

var unitWords = toSet(
	"percent", "users", "customers", "clients", "requests", "queries", "records",
	"transactions", "downloads", "hours", "hrs", "minutes", "seconds", "ms", "days",
	"weeks", "months", "lakh", "lakhs", "crore", "crores", "million", "thousand",
	"students", "members", "people", "participants", "teams", "tickets", "rupees",
	"dollars", "usd", "inr", "times", "pages",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// EvaluateStructure runs every structural check and sums the weights of the
// passing ones under profile. Text is the full resume text.
func EvaluateStructure(sections *parsing.Sections, text string, profile WeightProfile) StructureResult {
	wordCount := len(strings.Fields(text))
	passed := map[string]bool{
		CheckContact:              hasContact(sections.Body(parsing.SectionHeader) + "\n" + sections.Body(parsing.SectionContact)),
		CheckEducation:            sections.Present(parsing.SectionEducation),
		CheckExperienceOrProjects: sections.Present(parsing.SectionExperience) || sections.Present(parsing.SectionProjects),
		CheckQuantified:           HasQuantifiedAchievement(text),
		CheckLength:               wordCount >= MinWords && wordCount <= MaxWords,
		CheckPublications:         sections.Present(parsing.SectionPublications),
	}

	result := StructureResult{
		Checks:    make([]types.StructuralCheck, 0, len(checkOrder)),
		WordCount: wordCount,
	}
	score := 0
	for _, name := range checkOrder {
		weight := profile.Weights[name]
		result.Checks = append(result.Checks, types.StructuralCheck{Name: name, Passed: passed[name], Weight: weight})
		if passed[name] {
			score += weight
		}
	}
	result.Score = float64(score)
	return result
}

func hasContact(text string) bool {
	if emailRe.MatchString(text) {
		return true
	}
	for _, candidate := range phoneCandidateRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 10 && digits <= 15 {
			return true
		}
	}
	return false
}

// HasQuantifiedAchievement reports whether any line pairs an action verb with a
// quantity (a number carrying a percent, currency, or unit) within a few words.
func HasQuantifiedAchievement(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(strings.ToLower(line))
		for i := range words {
			words[i] = strings.Trim(words[i], ",;:()[]{}\"'!?")
		}

		var verbs, quantities []int
		for i, w := range words {
			if _, ok := actionVerbs[w]; ok {
				verbs = append(verbs, i)
			}
			if isQuantity(words, i) {
				quantities = append(quantities, i)
			}
		}
		for _, v := range verbs {
			for _, q := range quantities {
				if abs(v-q) <= quantifierWindow {
					return true
				}
			}
		}
	}
	return false
}

func isQuantity(words []string, i int) bool {
	w := strings.TrimSuffix(words[i], ".")
	m := quantityRe.FindStringSubmatch(w)
	if m == nil {
		return false
	}
	if m[1] != "" || m[2] != "" {
		return true
	}
	if i+1 < len(words) {
		_, ok := unitWords[strings.TrimSuffix(words[i+1], ".")]
		return ok
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
