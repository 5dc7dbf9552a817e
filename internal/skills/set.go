package skills

import "github.com/jonathan/placement-matcher/internal/types"

// Set is an insertion-ordered set of extracted skills keyed by canonical name.
// The zero value is ready to use.
type Set struct {
	skills []types.ExtractedSkill
	index  map[string]int
}

// Add inserts skill unless its canonical name is already present.
// It reports whether the skill was added.
func (s *Set) Add(skill types.ExtractedSkill) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[skill.Canonical]; exists {
		return false
	}
	s.index[skill.Canonical] = len(s.skills)
	s.skills = append(s.skills, skill)
	return true
}

// Has reports whether canonical is in the set.
func (s *Set) Has(canonical string) bool {
	_, ok := s.index[canonical]
	return ok
}

// Len returns the number of skills.
func (s *Set) Len() int {
	return len(s.skills)
}

// Skills returns the skills in insertion order. Never nil.
func (s *Set) Skills() []types.ExtractedSkill {
	out := make([]types.ExtractedSkill, len(s.skills))
	copy(out, s.skills)
	return out
}
