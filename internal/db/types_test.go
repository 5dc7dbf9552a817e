package db

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidKind(t *testing.T) {
	for _, kind := range []string{KindResume, KindJobDescription, KindMatch} {
		assert.True(t, IsValidKind(kind), kind)
	}
	assert.False(t, IsValidKind(""))
	assert.False(t, IsValidKind("RESUME"))
}

func TestAnalysis_JSONKeepsRawContent(t *testing.T) {
	score := 72.5
	a := Analysis{
		ID:      uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Kind:    KindResume,
		Score:   &score,
		Content: json.RawMessage(`{"structural_score":72.5}`),
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"content":{"structural_score":72.5}`)
	assert.Contains(t, string(data), `"score":72.5`)
	assert.NotContains(t, string(data), "student_ref")
	assert.NotContains(t, string(data), "role_id")
}

func TestSchemaSQLEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS analyses")
	assert.Contains(t, schemaSQL, "content     JSONB NOT NULL")
}
