package dto

// ReplaceAssignmentsRequest swaps out the full assignment set for one staff
// member and semester.
type ReplaceAssignmentsRequest struct {
	StaffID     string                   `json:"staff_id" validate:"required"`
	Semester    string                   `json:"semester" validate:"required"`
	Assignments []ReplaceAssignmentInput `json:"assignments" validate:"dive"`
}

// ReplaceAssignmentInput is one assignment row in a replacement request.
type ReplaceAssignmentInput struct {
	SubjectID      string  `json:"subject_id" validate:"required"`
	DepartmentID   string  `json:"department_id" validate:"required"`
	AcademicYearID *string `json:"academic_year_id"`
}
