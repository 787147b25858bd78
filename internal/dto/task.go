package dto

import "github.com/noah-isme/campus-feedback-api/internal/models"

// TaskListResponse is the payload for a student's resolved feedback tasks.
type TaskListResponse struct {
	StudentID        string        `json:"student_id"`
	DepartmentID     string        `json:"department_id"`
	AcademicYearID   string        `json:"academic_year_id"`
	GroupedBySubject bool          `json:"grouped_by_subject"`
	Tasks            []models.Task `json:"tasks"`
}

// SubmitFeedbackRequest records one feedback submission.
type SubmitFeedbackRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
}
