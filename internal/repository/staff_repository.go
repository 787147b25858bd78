package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// StaffRepository reads staff records and their user display names.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs the repository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// ListDetailsByIDs returns staff rows joined with users for display names.
func (r *StaffRepository) ListDetailsByIDs(ctx context.Context, staffIDs []string) ([]models.StaffDetail, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	const query = `
SELECT s.id, s.user_id, s.department_id, u.full_name
FROM staff s
JOIN users u ON u.id = s.user_id
WHERE s.id = ANY($1)`
	var details []models.StaffDetail
	if err := r.db.SelectContext(ctx, &details, query, pq.Array(staffIDs)); err != nil {
		return nil, fmt.Errorf("list staff details: %w", err)
	}
	return details, nil
}
