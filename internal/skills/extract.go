// Package skills provides lexicon-driven skill extraction and canonicalization.
package skills

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/types"
)

// phrase is one indexed surface form
type phrase struct {
	entry     int
	matchType types.MatchType
}

// Extractor finds lexicon skills in token streams.
// It is read-only after construction and safe for concurrent use.
type Extractor struct {
	normalizer *parsing.Normalizer
	entries    []lexicon.Entry
	index      map[string]phrase // space-joined tokens -> phrase
	maxLen     int               // longest phrase in tokens
}

// Occurrence is one longest-match hit in a token stream
type Occurrence struct {
	Skill types.ExtractedSkill
	Start int // first token index
	End   int // one past the last token
}

// NewExtractor indexes every canonical name and synonym of lex.
// Two surface forms that tokenize identically are rejected.
func NewExtractor(lex *lexicon.Lexicon) (*Extractor, error) {
	x := &Extractor{
		normalizer: parsing.NewNormalizer(lex.ProtectedSpellings()),
		entries:    lex.Entries(),
		index:      make(map[string]phrase),
	}

	for i, e := range x.entries {
		if err := x.add(e.Canonical, i, types.MatchExact); err != nil {
			return nil, err
		}
		for _, syn := range e.Synonyms {
			if err := x.add(syn, i, types.MatchSynonym); err != nil {
				return nil, err
			}
		}
	}
	return x, nil
}

func (x *Extractor) add(form string, entry int, mt types.MatchType) error {
	tokens := x.normalizer.Normalize(form)
	if len(tokens) == 0 {
		return &lexicon.InvariantError{
			Canonical: x.entries[entry].Canonical,
			Message:   fmt.Sprintf("surface form %q has no tokens", form),
		}
	}
	key := strings.Join(tokens, " ")
	if prev, exists := x.index[key]; exists {
		return &lexicon.InvariantError{
			Canonical: x.entries[entry].Canonical,
			Message:   fmt.Sprintf("surface form %q tokenizes like a form of %q", form, x.entries[prev.entry].Canonical),
		}
	}
	x.index[key] = phrase{entry: entry, matchType: mt}
	if len(tokens) > x.maxLen {
		x.maxLen = len(tokens)
	}
	return nil
}

// Normalizer returns the normalizer configured with the lexicon's protected spellings.
func (x *Extractor) Normalizer() *parsing.Normalizer {
	return x.normalizer
}

// Scan returns every longest-match occurrence in token order.
// At each position the longest indexed phrase wins and scanning resumes after it,
// so a shorter phrase contained in a longer match is never reported separately.
func (x *Extractor) Scan(tokens []string, sectionHint string) []Occurrence {
	var out []Occurrence
	for i := 0; i < len(tokens); {
		k := x.maxLen
		if rest := len(tokens) - i; rest < k {
			k = rest
		}
		matched := 0
		for ; k > 0; k-- {
			p, ok := x.index[strings.Join(tokens[i:i+k], " ")]
			if !ok {
				continue
			}
			e := x.entries[p.entry]
			out = append(out, Occurrence{
				Skill: types.ExtractedSkill{
					Canonical:     e.Canonical,
					Category:      e.Category,
					MatchType:     p.matchType,
					SourceSection: sectionHint,
				},
				Start: i,
				End:   i + k,
			})
			matched = k
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return out
}

// Extract returns the distinct skills found in tokens, keyed by canonical
// name, in order of first appearance.
func (x *Extractor) Extract(tokens []string, sectionHint string) []types.ExtractedSkill {
	var set Set
	for _, occ := range x.Scan(tokens, sectionHint) {
		set.Add(occ.Skill)
	}
	return set.Skills()
}

// ExtractText normalizes text and extracts skills from it.
func (x *Extractor) ExtractText(text, sectionHint string) []types.ExtractedSkill {
	return x.Extract(x.normalizer.Normalize(text), sectionHint)
}

// ExtractSections extracts from each present section independently, walking
// sections in document order. The first section a skill appears in is kept.
func (x *Extractor) ExtractSections(sections *parsing.Sections) []types.ExtractedSkill {
	var set Set
	for _, name := range sections.Names() {
		for _, skill := range x.ExtractText(sections.Body(name), name) {
			set.Add(skill)
		}
	}
	return set.Skills()
}

// Canonical resolves a skill name through the lexicon. For names with no
// lexicon entry it returns the normalized spelling and false. A blank name
// yields "".
func (x *Extractor) Canonical(name string) (string, bool) {
	key := x.normalizer.Key(name)
	if key == "" {
		return "", false
	}
	if p, ok := x.index[key]; ok {
		return x.entries[p.entry].Canonical, true
	}
	return key, false
}
