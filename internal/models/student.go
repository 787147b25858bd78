package models

import "time"

// Student represents a learner's membership in a department and academic year.
type Student struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	DepartmentID   string    `db:"department_id" json:"department_id"`
	AcademicYearID string    `db:"academic_year_id" json:"academic_year_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
