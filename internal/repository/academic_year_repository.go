package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// AcademicYearRepository reads academic year records.
type AcademicYearRepository struct {
	db *sqlx.DB
}

// NewAcademicYearRepository constructs the repository.
func NewAcademicYearRepository(db *sqlx.DB) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// ListByDepartment returns the years scoped to the department plus the global
// ones that carry no department at all.
func (r *AcademicYearRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.AcademicYear, error) {
	const query = `
SELECT id, name, abbreviation, department_id
FROM academic_years
WHERE department_id = $1 OR department_id IS NULL
ORDER BY name ASC`
	var years []models.AcademicYear
	if err := r.db.SelectContext(ctx, &years, query, departmentID); err != nil {
		return nil, fmt.Errorf("list academic years for department %s: %w", departmentID, err)
	}
	return years, nil
}
