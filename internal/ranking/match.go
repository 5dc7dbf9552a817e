// Package ranking provides requirement matching and structural completeness scoring for resumes.
package ranking

import (
	"math"

	"github.com/jonathan/placement-matcher/internal/skills"
	"github.com/jonathan/placement-matcher/internal/types"
)

// Score weights for requirement matching
const (
	requiredWeight  = 0.7
	preferredWeight = 0.3
)

// Match compares a candidate skill set against required and preferred skills.
//
//	score = 100 * (matchedRequired / max(1, totalRequired)) * 0.7
//	      + 100 * (matchedPreferred / max(1, totalPreferred)) * 0.3
//
// With no required and no preferred skills the score is 100 and nothing is missing.
// A skill listed as both required and preferred counts in both terms but is
// reported once in MatchedSkills.
// All names are canonicalized through c before comparison; requirement names with
// no lexicon entry compare by their normalized spelling.
func Match(candidate []string, required, preferred []string, c skills.Canonicalizer) types.MatchResult {
	targets := skills.BuildTargets(required, preferred, c)
	if targets.Len() == 0 {
		return types.MatchResult{
			Score:            100,
			MatchedSkills:    []string{},
			MissingRequired:  []string{},
			MissingPreferred: []string{},
		}
	}

	have := make(map[string]struct{}, len(candidate))
	for _, name := range candidate {
		if key, _ := c.Canonical(name); key != "" {
			have[key] = struct{}{}
		}
	}

	result := types.MatchResult{
		MatchedSkills:    []string{},
		MissingRequired:  []string{},
		MissingPreferred: []string{},
	}
	listed := make(map[string]struct{}, targets.Len())
	addMatched := func(key string) {
		if _, dup := listed[key]; !dup {
			listed[key] = struct{}{}
			result.MatchedSkills = append(result.MatchedSkills, key)
		}
	}

	matchedRequired := 0
	for _, t := range targets.Required {
		if _, ok := have[t.Key]; ok {
			matchedRequired++
			addMatched(t.Key)
			continue
		}
		result.MissingRequired = append(result.MissingRequired, t.Input)
	}
	matchedPreferred := 0
	for _, t := range targets.Preferred {
		if _, ok := have[t.Key]; ok {
			matchedPreferred++
			addMatched(t.Key)
			continue
		}
		result.MissingPreferred = append(result.MissingPreferred, t.Input)
	}

	score := 100*ratio(matchedRequired, len(targets.Required))*requiredWeight +
		100*ratio(matchedPreferred, len(targets.Preferred))*preferredWeight
	result.Score = round2(clamp(score, 0, 100))
	return result
}

func ratio(matched, total int) float64 {
	return float64(matched) / float64(max(1, total))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
