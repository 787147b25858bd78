package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	"github.com/noah-isme/campus-feedback-api/internal/models"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
)

type feedbackWriter interface {
	Create(ctx context.Context, feedback *models.Feedback) error
}

type taskResolver interface {
	ResolveTasksForStudent(ctx context.Context, studentID string, opts TaskQueryOptions) (*dto.TaskListResponse, bool, error)
}

// FeedbackService records feedback submissions against resolved tasks.
type FeedbackService struct {
	feedback feedbackWriter
	tasks    taskResolver
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
}

// NewFeedbackService constructs the service.
func NewFeedbackService(feedback feedbackWriter, tasks taskResolver, cache *CacheService, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{feedback: feedback, tasks: tasks, cache: cache, logger: logger, now: time.Now}
}

// Submit records one feedback submission. The assignment must be one of the
// student's current ungrouped tasks; submissions against tasks of other years
// or departments are rejected, and resubmission is a conflict.
func (s *FeedbackService) Submit(ctx context.Context, studentID string, req dto.SubmitFeedbackRequest) error {
	assignmentID, ok := NormalizeIdentifier(req.AssignmentID)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, "assignmentId is required")
	}

	result, _, err := s.tasks.ResolveTasksForStudent(ctx, studentID, TaskQueryOptions{GroupBySubject: false, Fresh: true})
	if err != nil {
		return err
	}

	var task *models.Task
	for i := range result.Tasks {
		if id, ok := NormalizeIdentifier(result.Tasks[i].AssignmentID); ok && id == assignmentID {
			task = &result.Tasks[i]
			break
		}
	}
	if task == nil {
		return appErrors.Clone(appErrors.ErrForbidden, "assignment is not a feedback task for this student")
	}
	if task.Status == models.TaskCompleted {
		return appErrors.Clone(appErrors.ErrConflict, "feedback already submitted for this assignment")
	}

	feedback := &models.Feedback{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		AssignmentID: task.AssignmentID,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, fmt.Sprintf("tasks:%s:*", studentID)); err != nil {
			s.logger.Warn("task cache invalidation failed after submission",
				zap.String("student_id", studentID), zap.Error(err))
		}
	}
	return nil
}
