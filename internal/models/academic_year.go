package models

// AcademicYear represents a year/class cohort such as "TYCO" or "SYEE".
// DepartmentID is nil for years that are not scoped to a single department.
type AcademicYear struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Abbreviation string  `db:"abbreviation" json:"abbreviation"`
	DepartmentID *string `db:"department_id" json:"department_id,omitempty"`
}
