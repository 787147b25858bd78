package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

// FeedbackRepository reads feedback submission state.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs the repository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// SubmittedAssignmentIDs returns the assignment ids the student has already
// evaluated. Existence of a row is the completion signal; ratings are not read.
func (r *FeedbackRepository) SubmittedAssignmentIDs(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT DISTINCT assignment_id FROM feedbacks WHERE student_id = $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, studentID); err != nil {
		return nil, fmt.Errorf("list submitted assignments for student %s: %w", studentID, err)
	}
	return ids, nil
}

// Create records a feedback submission.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	const query = `INSERT INTO feedbacks (id, student_id, assignment_id, created_at)
		VALUES (:id, :student_id, :assignment_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, feedback); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}
