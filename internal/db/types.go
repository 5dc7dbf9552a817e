package db

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Kind constants for stored analyses
const (
	KindResume         = "resume"
	KindJobDescription = "job_description"
	KindMatch          = "match"
)

// IsValidKind reports whether kind is a known analysis kind
func IsValidKind(kind string) bool {
	switch kind {
	case KindResume, KindJobDescription, KindMatch:
		return true
	default:
		return false
	}
}

// Analysis represents a stored analysis record
type Analysis struct {
	ID         uuid.UUID       `json:"id"`
	StudentRef string          `json:"student_ref,omitempty"`
	Kind       string          `json:"kind"`
	RoleID     string          `json:"role_id,omitempty"`
	Score      *float64        `json:"score,omitempty"`
	Content    json.RawMessage `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AnalysisCreateInput contains the data needed to store an analysis
type AnalysisCreateInput struct {
	StudentRef string
	Kind       string
	RoleID     string
	Score      *float64
	Content    any
}
