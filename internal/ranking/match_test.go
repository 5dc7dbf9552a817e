package ranking

import (
	"testing"

	"github.com/jonathan/placement-matcher/internal/lexicon"
	"github.com/jonathan/placement-matcher/internal/skills"
	"github.com/jonathan/placement-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanonicalizer(t *testing.T) skills.Canonicalizer {
	t.Helper()
	x, err := skills.NewExtractor(lexicon.Default())
	require.NoError(t, err)
	return x
}

func TestMatch_NoRequirements(t *testing.T) {
	c := newCanonicalizer(t)
	want := types.MatchResult{
		Score:            100,
		MatchedSkills:    []string{},
		MissingRequired:  []string{},
		MissingPreferred: []string{},
	}

	for _, candidate := range [][]string{nil, {}, {"python", "golang"}} {
		assert.Equal(t, want, Match(candidate, nil, nil, c))
		assert.Equal(t, want, Match(candidate, []string{}, []string{}, c))
	}
	assert.Equal(t, want, Match([]string{"python"}, []string{" ", ""}, []string{"\t"}, c), "blank entries count as no requirements")
}

func TestMatch_HalfRequired(t *testing.T) {
	got := Match([]string{"python"}, []string{"python", "sql"}, nil, newCanonicalizer(t))

	assert.Equal(t, 35.0, got.Score)
	assert.Equal(t, []string{"python"}, got.MatchedSkills)
	assert.Equal(t, []string{"sql"}, got.MissingRequired)
	assert.Empty(t, got.MissingPreferred)
}

func TestMatch_Formula(t *testing.T) {
	c := newCanonicalizer(t)

	tests := []struct {
		name      string
		candidate []string
		required  []string
		preferred []string
		want      float64
	}{
		{"all matched", []string{"golang", "docker"}, []string{"golang"}, []string{"docker"}, 100},
		{"only preferred matched", []string{"docker"}, []string{"golang"}, []string{"docker"}, 30},
		{"nothing matched", []string{"rust"}, []string{"golang"}, []string{"docker"}, 0},
		{"preferred only list", []string{"docker"}, nil, []string{"docker", "aws"}, 15},
		{"required only list", []string{"golang", "sql"}, []string{"golang", "sql", "java"}, nil, 46.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.candidate, tt.required, tt.preferred, c).Score)
		})
	}
}

func TestMatch_SynonymsResolve(t *testing.T) {
	got := Match([]string{"javascript", "kubernetes"}, []string{"JS"}, []string{"K8s"}, newCanonicalizer(t))

	assert.Equal(t, 100.0, got.Score)
	assert.Equal(t, []string{"javascript", "kubernetes"}, got.MatchedSkills)
}

func TestMatch_OrderingAndVerbatimMissing(t *testing.T) {
	got := Match(
		[]string{"docker", "python"},
		[]string{"Quantum Widgets", "Python", "Golang"},
		[]string{"Docker", "AWS"},
		newCanonicalizer(t),
	)

	assert.Equal(t, []string{"python", "docker"}, got.MatchedSkills, "required matches come first")
	assert.Equal(t, []string{"Quantum Widgets", "Golang"}, got.MissingRequired)
	assert.Equal(t, []string{"AWS"}, got.MissingPreferred)
}

func TestMatch_SkillBothRequiredAndPreferred(t *testing.T) {
	c := newCanonicalizer(t)

	got := Match([]string{"python"}, []string{"python"}, []string{"python"}, c)
	assert.Equal(t, 100.0, got.Score)
	assert.Equal(t, []string{"python"}, got.MatchedSkills, "reported once")
	assert.Empty(t, got.MissingRequired)
	assert.Empty(t, got.MissingPreferred)

	got = Match(nil, []string{"python"}, []string{"python3"}, c)
	assert.Equal(t, 0.0, got.Score)
	assert.Equal(t, []string{"python"}, got.MissingRequired)
	assert.Equal(t, []string{"python3"}, got.MissingPreferred)
}

func TestMatch_Monotonic(t *testing.T) {
	c := newCanonicalizer(t)
	required := []string{"python", "sql", "golang", "docker"}
	preferred := []string{"aws", "react"}

	var candidate []string
	prev := Match(candidate, required, preferred, c).Score
	for _, skill := range append(append([]string{}, required...), preferred...) {
		candidate = append(candidate, skill)
		score := Match(candidate, required, preferred, c).Score
		assert.GreaterOrEqual(t, score, prev, "adding %q", skill)
		prev = score
	}
	assert.Equal(t, 100.0, prev)

	// Irrelevant skills never change the score
	before := Match([]string{"python"}, required, preferred, c).Score
	after := Match([]string{"python", "figma", "rust"}, required, preferred, c).Score
	assert.Equal(t, before, after)
}
