package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultListLimit = 50

// SaveAnalysis stores an analysis result and returns the created record
func (db *DB) SaveAnalysis(ctx context.Context, input *AnalysisCreateInput) (*Analysis, error) {
	if !IsValidKind(input.Kind) {
		return nil, fmt.Errorf("invalid analysis kind %q", input.Kind)
	}

	content, err := json.Marshal(input.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	a := &Analysis{
		ID:         uuid.New(),
		StudentRef: input.StudentRef,
		Kind:       input.Kind,
		RoleID:     input.RoleID,
		Score:      input.Score,
		Content:    content,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, student_ref, kind, role_id, score, content)
		 VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), $5, $6)
		 RETURNING created_at`,
		a.ID, a.StudentRef, a.Kind, a.RoleID, a.Score, content,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return a, nil
}

// GetAnalysis retrieves an analysis by ID, or ErrNotFound
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, COALESCE(student_ref, ''), kind, COALESCE(role_id, ''), score, content, created_at
		 FROM analyses WHERE id = $1`,
		id,
	)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// ListAnalysesByStudent retrieves a student's analyses, newest first
func (db *DB) ListAnalysesByStudent(ctx context.Context, studentRef string, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, COALESCE(student_ref, ''), kind, COALESCE(role_id, ''), score, content, created_at
		 FROM analyses WHERE student_ref = $1
		 ORDER BY created_at DESC LIMIT $2`,
		studentRef, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis by ID, or returns ErrNotFound
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnalysis(row pgx.Row) (*Analysis, error) {
	var a Analysis
	var content []byte
	if err := row.Scan(&a.ID, &a.StudentRef, &a.Kind, &a.RoleID, &a.Score, &content, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Content = content
	return &a, nil
}
