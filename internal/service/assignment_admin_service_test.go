package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	"github.com/noah-isme/campus-feedback-api/internal/models"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
)

type fakeAssignmentReplacer struct {
	staffID  string
	semester string
	rows     []models.FacultyAssignment
	calls    int
}

func (f *fakeAssignmentReplacer) ReplaceForStaffSemester(_ context.Context, staffID, semester string, assignments []models.FacultyAssignment) error {
	f.calls++
	f.staffID = staffID
	f.semester = semester
	f.rows = assignments
	return nil
}

func TestReplaceAssignmentsValidatesRequest(t *testing.T) {
	repo := &fakeAssignmentReplacer{}
	svc := NewAssignmentAdminService(repo, nil, nil, nil)

	err := svc.Replace(context.Background(), dto.ReplaceAssignmentsRequest{Semester: "Odd 2025-26"})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
	assert.Zero(t, repo.calls)
}

func TestReplaceAssignmentsWritesAndInvalidatesWholeNamespace(t *testing.T) {
	repo := &fakeAssignmentReplacer{}
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewAssignmentAdminService(repo, cache, nil, nil)

	err := svc.Replace(context.Background(), dto.ReplaceAssignmentsRequest{
		StaffID:  "staff-1",
		Semester: "Odd 2025-26",
		Assignments: []dto.ReplaceAssignmentInput{
			{SubjectID: "subj-ds", DepartmentID: "dept-co", AcademicYearID: strPtr("year-tyco")},
			{SubjectID: "link-mp", DepartmentID: "dept-co"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 1, repo.calls)
	assert.Equal(t, "staff-1", repo.staffID)
	assert.Equal(t, "Odd 2025-26", repo.semester)
	require.Len(t, repo.rows, 2)
	assert.Equal(t, "subj-ds", repo.rows[0].SubjectID)
	assert.Equal(t, "link-mp", repo.rows[1].SubjectID)
	assert.Nil(t, repo.rows[1].AcademicYearID)

	// Replacements affect unknown students, so everything cached goes.
	require.Len(t, cacheRepo.deletedPatterns, 1)
	assert.Equal(t, "tasks:*", cacheRepo.deletedPatterns[0])
}

func TestReplaceAssignmentsAllowsEmptySet(t *testing.T) {
	repo := &fakeAssignmentReplacer{}
	svc := NewAssignmentAdminService(repo, nil, nil, nil)

	err := svc.Replace(context.Background(), dto.ReplaceAssignmentsRequest{StaffID: "staff-1", Semester: "Odd 2025-26"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Empty(t, repo.rows)
}
