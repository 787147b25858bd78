package models

import "time"

// DepartmentSubject links a master Subject to one Department's offering of it.
// A subject shared across departments has one row per department, each with its
// own academic year. SubjectCode is a denormalized copy of the master code and
// may diverge from it; AcademicYearID is authoritative for this department's
// offering when present.
type DepartmentSubject struct {
	ID             string    `db:"id" json:"id"`
	DepartmentID   string    `db:"department_id" json:"department_id"`
	SubjectID      string    `db:"subject_id" json:"subject_id"`
	AcademicYearID *string   `db:"academic_year_id" json:"academic_year_id,omitempty"`
	SubjectCode    string    `db:"subject_code" json:"subject_code"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
