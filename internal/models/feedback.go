package models

import "time"

// Feedback marks a student's submitted evaluation for one faculty assignment.
// Existence of a (student, assignment) row is what flips a task to Completed;
// the ratings payload itself is owned by the portal's submission endpoints.
type Feedback struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	AssignmentID string    `db:"assignment_id" json:"assignment_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
