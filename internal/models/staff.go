package models

// Staff represents a faculty member. DepartmentID is the person's home
// department; assignments may still point them at another department's
// subjects (external faculty).
type Staff struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"user_id"`
	DepartmentID string `db:"department_id" json:"department_id"`
}

// StaffDetail enriches staff rows with the display name from users.
type StaffDetail struct {
	Staff
	FullName string `db:"full_name" json:"full_name"`
}
