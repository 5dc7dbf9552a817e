// Package lexicon provides the skill lexicon: canonical skill names, their
// synonyms, and category tags. A Lexicon is immutable once constructed.
package lexicon

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/placement-matcher/internal/types"
)

// Entry is one canonical skill with its alternate spellings
type Entry struct {
	Canonical string         `json:"canonical"`
	Category  types.Category `json:"category"`
	Synonyms  []string       `json:"synonyms,omitempty"`
}

// InvariantError describes a lexicon that violates a uniqueness or shape rule
type InvariantError struct {
	Canonical string
	Message   string
}

func (e *InvariantError) Error() string {
	if e.Canonical != "" {
		return fmt.Sprintf("lexicon invariant violated for %q: %s", e.Canonical, e.Message)
	}
	return fmt.Sprintf("lexicon invariant violated: %s", e.Message)
}

// Lexicon is an ordered, read-only set of skill entries
type Lexicon struct {
	entries []Entry
	byName  map[string]int // canonical -> index
}

// New validates entries and builds a Lexicon.
// Canonical names and synonyms are lowercased and whitespace-collapsed;
// no surface form may belong to two entries.
func New(entries []Entry) (*Lexicon, error) {
	lex := &Lexicon{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	owner := make(map[string]string) // surface form -> canonical

	for _, e := range entries {
		canonical := normalizeForm(e.Canonical)
		if canonical == "" {
			return nil, &InvariantError{Message: "empty canonical name"}
		}
		if !e.Category.Valid() {
			return nil, &InvariantError{Canonical: canonical, Message: fmt.Sprintf("unknown category %q", e.Category)}
		}
		if prev, exists := owner[canonical]; exists {
			return nil, &InvariantError{Canonical: canonical, Message: fmt.Sprintf("name already used by %q", prev)}
		}
		owner[canonical] = canonical

		synonyms := make([]string, 0, len(e.Synonyms))
		for _, syn := range e.Synonyms {
			form := normalizeForm(syn)
			if form == "" {
				return nil, &InvariantError{Canonical: canonical, Message: "empty synonym"}
			}
			if prev, exists := owner[form]; exists {
				return nil, &InvariantError{Canonical: canonical, Message: fmt.Sprintf("synonym %q already used by %q", form, prev)}
			}
			owner[form] = canonical
			synonyms = append(synonyms, form)
		}

		lex.byName[canonical] = len(lex.entries)
		lex.entries = append(lex.entries, Entry{Canonical: canonical, Category: e.Category, Synonyms: synonyms})
	}

	return lex, nil
}

// MustNew is New that panics on error. Intended for static tables.
func MustNew(entries []Entry) *Lexicon {
	lex, err := New(entries)
	if err != nil {
		panic(err)
	}
	return lex
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in lexicon order.
func (l *Lexicon) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = Entry{
			Canonical: e.Canonical,
			Category:  e.Category,
			Synonyms:  append([]string(nil), e.Synonyms...),
		}
	}
	return out
}

// Get returns the entry for a canonical name.
func (l *Lexicon) Get(canonical string) (Entry, bool) {
	idx, ok := l.byName[normalizeForm(canonical)]
	if !ok {
		return Entry{}, false
	}
	e := l.entries[idx]
	e.Synonyms = append([]string(nil), e.Synonyms...)
	return e, true
}

// ProtectedSpellings returns every word of every surface form that contains
// punctuation other than a hyphen (node.js, c++, ci/cd), sorted.
func (l *Lexicon) ProtectedSpellings() []string {
	seen := make(map[string]struct{})
	for _, e := range l.entries {
		forms := append([]string{e.Canonical}, e.Synonyms...)
		for _, form := range forms {
			for _, word := range strings.Fields(form) {
				if hasInnerPunct(word) {
					seen[word] = struct{}{}
				}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for word := range seen {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

func hasInnerPunct(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' {
			return true
		}
	}
	return false
}

// normalizeForm lowercases and collapses whitespace.
func normalizeForm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
