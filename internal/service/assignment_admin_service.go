package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	"github.com/noah-isme/campus-feedback-api/internal/models"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
)

type assignmentReplacer interface {
	ReplaceForStaffSemester(ctx context.Context, staffID, semester string, assignments []models.FacultyAssignment) error
}

// AssignmentAdminService performs the wholesale per-(staff, semester)
// assignment replacement used by the portal's admin surface and keeps the task
// cache honest afterwards.
type AssignmentAdminService struct {
	repo     assignmentReplacer
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAssignmentAdminService constructs the service.
func NewAssignmentAdminService(repo assignmentReplacer, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentAdminService{repo: repo, cache: cache, validate: validate, logger: logger}
}

// Replace deletes the staff member's assignments for the semester and inserts
// the new set. Readers observing the window between the two steps see a
// transient empty result, never a partial join. Cached task lists are
// invalidated afterwards; a failed invalidation is logged and left to the
// cache's TTL, which bounds how long a stale list can survive.
func (s *AssignmentAdminService) Replace(ctx context.Context, req dto.ReplaceAssignmentsRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	rows := make([]models.FacultyAssignment, 0, len(req.Assignments))
	for _, input := range req.Assignments {
		rows = append(rows, models.FacultyAssignment{
			SubjectID:      input.SubjectID,
			DepartmentID:   input.DepartmentID,
			AcademicYearID: input.AcademicYearID,
		})
	}

	if err := s.repo.ReplaceForStaffSemester(ctx, req.StaffID, req.Semester, rows); err != nil {
		return err
	}

	// Assignments are staff-scoped, so the affected students are not knowable
	// here; the whole task namespace goes.
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "tasks:*"); err != nil {
			s.logger.Warn("task cache invalidation failed after replacement",
				zap.String("staff_id", req.StaffID),
				zap.String("semester", req.Semester),
				zap.Error(err))
		}
	}
	return nil
}
