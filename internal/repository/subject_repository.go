package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// SubjectRepository reads master subject records.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs the repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByIDs returns the subjects whose id is in ids. Unknown ids are simply
// missing from the result; the resolver decides what that means.
func (r *SubjectRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
SELECT id, name, code, academic_year_id, semester, created_at
FROM subjects
WHERE id = ANY($1)`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list subjects by ids: %w", err)
	}
	return subjects, nil
}
