package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// StudentRepository reads student membership records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetByID returns the student row or sql.ErrNoRows.
func (r *StudentRepository) GetByID(ctx context.Context, studentID string) (*models.Student, error) {
	const query = `SELECT id, user_id, department_id, academic_year_id, created_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		return nil, fmt.Errorf("get student %s: %w", studentID, err)
	}
	return &student, nil
}
