package dto

import "github.com/noah-isme/campus-feedback-api/internal/models"

// AcademicYearSummary labels one academic year in diagnostics output.
type AcademicYearSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// DepartmentDiagnostics surfaces the data-quality findings of one resolution
// run over a whole department, for offline reconciliation.
type DepartmentDiagnostics struct {
	DepartmentID       string                         `json:"department_id"`
	DepartmentName     string                         `json:"department_name"`
	AcademicYears      []AcademicYearSummary          `json:"academic_years"`
	TotalAssignments   int                            `json:"total_assignments"`
	AssignmentsByYear  map[string]int                 `json:"assignments_by_year"`
	Unresolved         []models.UnresolvedAssignment  `json:"unresolved"`
	UnknownYear        []models.UnknownYearAssignment `json:"unknown_year"`
	AmbiguousLinkCount int                            `json:"ambiguous_link_count"`
	DuplicatesDropped  int                            `json:"duplicates_dropped"`
}
