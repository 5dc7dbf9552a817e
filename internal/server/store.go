package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/placement-matcher/internal/db"
)

// AnalysisStore persists analysis results. *db.DB implements it.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, input *db.AnalysisCreateInput) (*db.Analysis, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*db.Analysis, error)
	Ping(ctx context.Context) error
}

var _ AnalysisStore = (*db.DB)(nil)
