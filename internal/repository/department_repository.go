package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// DepartmentRepository reads department records.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs the repository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// GetByID returns the department row or sql.ErrNoRows.
func (r *DepartmentRepository) GetByID(ctx context.Context, departmentID string) (*models.Department, error) {
	const query = `SELECT id, name, abbreviation, created_at FROM departments WHERE id = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, departmentID); err != nil {
		return nil, fmt.Errorf("get department %s: %w", departmentID, err)
	}
	return &department, nil
}
