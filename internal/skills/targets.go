package skills

import "strings"

// Level is the requirement level of a target skill
type Level string

// Requirement levels
const (
	LevelRequired  Level = "required"
	LevelPreferred Level = "preferred"
)

// Canonicalizer resolves free-form skill names to canonical lexicon names.
// Extractor implements it.
type Canonicalizer interface {
	Canonical(name string) (string, bool)
}

// Target is one requirement skill after canonicalization
type Target struct {
	Input string // trimmed caller spelling, reported verbatim when missing
	Key   string // canonical name, or normalized spelling when unknown
	Known bool   // whether Key is a lexicon canonical name
	Level Level
}

// Targets holds deduplicated required and preferred skills in input order
type Targets struct {
	Required  []Target
	Preferred []Target
}

// Len returns the total number of targets.
func (t Targets) Len() int {
	return len(t.Required) + len(t.Preferred)
}

// BuildTargets canonicalizes requirement lists.
// Blank entries are skipped and duplicates within a list keep their first
// occurrence. The lists are independent: a skill may be both required and preferred.
func BuildTargets(required, preferred []string, c Canonicalizer) Targets {
	return Targets{
		Required:  collectTargets(required, LevelRequired, c),
		Preferred: collectTargets(preferred, LevelPreferred, c),
	}
}

func collectTargets(names []string, level Level, c Canonicalizer) []Target {
	seen := make(map[string]struct{}, len(names))
	out := make([]Target, 0, len(names))
	for _, name := range names {
		key, known := c.Canonical(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Target{Input: strings.TrimSpace(name), Key: key, Known: known, Level: level})
	}
	return out
}
