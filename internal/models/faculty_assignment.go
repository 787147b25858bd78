package models

import "time"

// FacultyAssignment records that a staff member teaches a subject for one
// semester. SubjectID carries whatever the legacy write path stored: either a
// Subject id or a DepartmentSubject id, in any of the historical identifier
// encodings. DepartmentID is the owning department for the assignment,
// independent of the staff member's home department. AcademicYearID and
// CreatedAt are frequently absent in migrated rows.
type FacultyAssignment struct {
	ID             string     `db:"id" json:"id"`
	StaffID        string     `db:"staff_id" json:"staff_id"`
	SubjectID      string     `db:"subject_id" json:"subject_id"`
	DepartmentID   string     `db:"department_id" json:"department_id"`
	AcademicYearID *string    `db:"academic_year_id" json:"academic_year_id,omitempty"`
	Semester       string     `db:"semester" json:"semester"`
	CreatedAt      *time.Time `db:"created_at" json:"created_at,omitempty"`
}
