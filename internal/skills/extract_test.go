package skills

import (
	"testing"

	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/parsing"
	"github.com/jonathan/placement-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultExtractor(t *testing.T) *Extractor {
	t.Helper()
	x, err := NewExtractor(lexicon.Default())
	require.NoError(t, err)
	return x
}

func canonicals(skills []types.ExtractedSkill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = s.Canonical
	}
	return out
}

func TestExtract_EveryEntryCanonicalAndSynonym(t *testing.T) {
	x := newDefaultExtractor(t)

	for _, e := range lexicon.Default().Entries() {
		got := x.ExtractText(e.Canonical, "")
		if assert.Len(t, got, 1, "canonical %q", e.Canonical) {
			assert.Equal(t, e.Canonical, got[0].Canonical)
			assert.Equal(t, types.MatchExact, got[0].MatchType, "canonical %q", e.Canonical)
			assert.Equal(t, e.Category, got[0].Category)
		}

		for _, syn := range e.Synonyms {
			got := x.ExtractText(syn, "")
			if assert.Len(t, got, 1, "synonym %q", syn) {
				assert.Equal(t, e.Canonical, got[0].Canonical, "synonym %q", syn)
				assert.Equal(t, types.MatchSynonym, got[0].MatchType, "synonym %q", syn)
			}
		}
	}
}

func TestExtract_LongestMatchWins(t *testing.T) {
	x := newDefaultExtractor(t)

	got := x.ExtractText("react native developer", "")
	assert.Equal(t, []string{"react native"}, canonicals(got))

	got = x.ExtractText("React Native and React", "")
	assert.Equal(t, []string{"react native", "react"}, canonicals(got))

	got = x.ExtractText("data structures and algorithms in java se", "")
	assert.Equal(t, []string{"data structures", "java"}, canonicals(got))
}

func TestExtract_CaseAndPunctuationInsensitive(t *testing.T) {
	x := newDefaultExtractor(t)

	got := x.ExtractText("Built APIs with NODE.JS, C++ and Machine\n  Learning (ML).", "")
	assert.Equal(t, []string{"node.js", "c++", "machine learning"}, canonicals(got))
	assert.Equal(t, types.MatchExact, got[0].MatchType)
}

func TestExtract_FirstOccurrenceWins(t *testing.T) {
	x := newDefaultExtractor(t)

	got := x.ExtractText("JS then JavaScript", "projects")
	require.Len(t, got, 1)
	assert.Equal(t, "javascript", got[0].Canonical)
	assert.Equal(t, types.MatchSynonym, got[0].MatchType)
	assert.Equal(t, "projects", got[0].SourceSection)
}

func TestExtract_ShortLanguageNamesNeedQualifiers(t *testing.T) {
	x := newDefaultExtractor(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"prose", "ready to go the extra mile in C. Ramesh team", []string{}},
		{"qualified", "Wrote firmware in Embedded C and tooling in the Go language", []string{"c programming", "golang"}},
		{"golang", "Golang, C language", []string{"golang", "c programming"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicals(x.ExtractText(tt.text, "")))
		})
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	x := newDefaultExtractor(t)

	assert.Empty(t, x.Extract(nil, ""))
	assert.NotNil(t, x.Extract(nil, ""))
	assert.Empty(t, x.ExtractText("   ", ""))
}

func TestScan_Positions(t *testing.T) {
	x := newDefaultExtractor(t)

	tokens := x.Normalizer().Normalize("must know react native and docker")
	occ := x.Scan(tokens, "")
	require.Len(t, occ, 2)
	assert.Equal(t, "react native", occ[0].Skill.Canonical)
	assert.Equal(t, 2, occ[0].Start)
	assert.Equal(t, 4, occ[0].End)
	assert.Equal(t, "docker", occ[1].Skill.Canonical)
	assert.Equal(t, 5, occ[1].Start)
}

func TestExtractSections_KeepsFirstSection(t *testing.T) {
	x := newDefaultExtractor(t)

	sections := parsing.Segment("EXPERIENCE\nBuilt services in Golang\nSKILLS\nGo language, Docker, Python\n")
	got := x.ExtractSections(sections)

	require.Len(t, got, 3)
	assert.Equal(t, types.ExtractedSkill{
		Canonical: "golang", Category: types.CategoryLanguage, MatchType: types.MatchExact, SourceSection: parsing.SectionExperience,
	}, got[0])
	assert.Equal(t, parsing.SectionSkills, got[1].SourceSection)
	assert.Equal(t, []string{"golang", "docker", "python"}, canonicals(got))
}

func TestCanonical(t *testing.T) {
	x := newDefaultExtractor(t)

	tests := []struct {
		input string
		want  string
		known bool
	}{
		{"Python", "python", true},
		{"  JS ", "javascript", true},
		{"Node.JS", "node.js", true},
		{"React-Native", "react native", true},
		{"Underwater Basket Weaving", "underwater basket weaving", false},
		{"   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, known := x.Canonical(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestNewExtractor_RejectsTokenCollision(t *testing.T) {
	lex := lexicon.MustNew([]lexicon.Entry{
		{Canonical: "c", Category: types.CategoryLanguage},
		{Canonical: "clang", Category: types.CategoryTool, Synonyms: []string{"c!"}},
	})

	_, err := NewExtractor(lex)
	require.Error(t, err)
	var invErr *lexicon.InvariantError
	assert.ErrorAs(t, err, &invErr)
}

func TestSet(t *testing.T) {
	var s Set
	assert.True(t, s.Add(types.ExtractedSkill{Canonical: "go", MatchType: types.MatchSynonym}))
	assert.False(t, s.Add(types.ExtractedSkill{Canonical: "go", MatchType: types.MatchExact}))
	assert.True(t, s.Add(types.ExtractedSkill{Canonical: "sql"}))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("go"))
	assert.False(t, s.Has("rust"))
	assert.Equal(t, types.MatchSynonym, s.Skills()[0].MatchType)
}
