package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// FacultyAssignmentRepository persists faculty teaching assignments.
type FacultyAssignmentRepository struct {
	db *sqlx.DB
}

// NewFacultyAssignmentRepository constructs the repository.
func NewFacultyAssignmentRepository(db *sqlx.DB) *FacultyAssignmentRepository {
	return &FacultyAssignmentRepository{db: db}
}

// ListBySubjectIDs returns assignments whose subject_id column matches any of
// the given identifiers. The column may hold Subject ids or DepartmentSubject
// ids; callers pass the union of both.
func (r *FacultyAssignmentRepository) ListBySubjectIDs(ctx context.Context, subjectIDs []string) ([]models.FacultyAssignment, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	const query = `
SELECT id, staff_id, subject_id, department_id, academic_year_id, semester, created_at
FROM faculty_assignments
WHERE subject_id = ANY($1)
ORDER BY created_at ASC NULLS LAST, id ASC`
	var assignments []models.FacultyAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, pq.Array(subjectIDs)); err != nil {
		return nil, fmt.Errorf("list assignments by subject ids: %w", err)
	}
	return assignments, nil
}

// ListByDepartment returns assignments owned by the department directly.
// Unioned with ListBySubjectIDs by callers: the raw subject_id comparison
// misses legacy-encoded rows, the department scope catches them.
func (r *FacultyAssignmentRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.FacultyAssignment, error) {
	const query = `
SELECT id, staff_id, subject_id, department_id, academic_year_id, semester, created_at
FROM faculty_assignments
WHERE department_id = $1
ORDER BY created_at ASC NULLS LAST, id ASC`
	var assignments []models.FacultyAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, departmentID); err != nil {
		return nil, fmt.Errorf("list assignments by department %s: %w", departmentID, err)
	}
	return assignments, nil
}

// ReplaceForStaffSemester swaps out the full assignment set for one staff
// member and semester: delete everything, then insert the new rows. The two
// steps are intentionally not wrapped in a transaction to match how the
// portal's admin surface has always behaved; readers tolerate the transient
// empty window.
func (r *FacultyAssignmentRepository) ReplaceForStaffSemester(ctx context.Context, staffID, semester string, assignments []models.FacultyAssignment) error {
	const deleteQuery = `DELETE FROM faculty_assignments WHERE staff_id = $1 AND semester = $2`
	if _, err := r.db.ExecContext(ctx, deleteQuery, staffID, semester); err != nil {
		return fmt.Errorf("delete assignments for staff %s: %w", staffID, err)
	}

	const insertQuery = `INSERT INTO faculty_assignments (id, staff_id, subject_id, department_id, academic_year_id, semester, created_at)
		VALUES (:id, :staff_id, :subject_id, :department_id, :academic_year_id, :semester, :created_at)`
	now := time.Now().UTC()
	for i := range assignments {
		if assignments[i].ID == "" {
			assignments[i].ID = uuid.NewString()
		}
		assignments[i].StaffID = staffID
		assignments[i].Semester = semester
		if assignments[i].CreatedAt == nil {
			created := now
			assignments[i].CreatedAt = &created
		}
		if _, err := r.db.NamedExecContext(ctx, insertQuery, assignments[i]); err != nil {
			return fmt.Errorf("insert assignment for staff %s: %w", staffID, err)
		}
	}
	return nil
}
