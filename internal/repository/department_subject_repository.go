package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// DepartmentSubjectRepository reads the department-subject link table.
type DepartmentSubjectRepository struct {
	db *sqlx.DB
}

// NewDepartmentSubjectRepository constructs the repository.
func NewDepartmentSubjectRepository(db *sqlx.DB) *DepartmentSubjectRepository {
	return &DepartmentSubjectRepository{db: db}
}

// ListByDepartment returns every link owned by the department.
func (r *DepartmentSubjectRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.DepartmentSubject, error) {
	const query = `
SELECT id, department_id, subject_id, academic_year_id, subject_code, created_at
FROM department_subjects
WHERE department_id = $1
ORDER BY created_at ASC`
	var links []models.DepartmentSubject
	if err := r.db.SelectContext(ctx, &links, query, departmentID); err != nil {
		return nil, fmt.Errorf("list department subjects for %s: %w", departmentID, err)
	}
	return links, nil
}
