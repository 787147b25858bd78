package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	"github.com/noah-isme/campus-feedback-api/internal/models"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
)

// DiagnosticsForDepartment runs the resolution pipeline over a whole
// department and reports its data-quality findings: unresolved subject
// references, assignments with no provable academic year, ambiguous
// shared-subject resolutions and duplicate counts. Nothing here mutates data;
// the report exists for manual reconciliation.
func (s *TaskService) DiagnosticsForDepartment(ctx context.Context, departmentID string) (*dto.DepartmentDiagnostics, error) {
	if strings.TrimSpace(departmentID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "departmentId is required")
	}

	department, err := s.departments.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, err
	}

	years, err := s.years.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	run, err := s.resolveDepartmentAssignments(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	report := &dto.DepartmentDiagnostics{
		DepartmentID:       departmentID,
		DepartmentName:     department.Name,
		TotalAssignments:   len(run.candidates) + len(run.unresolved),
		AssignmentsByYear:  make(map[string]int),
		Unresolved:         run.unresolved,
		AmbiguousLinkCount: run.ambiguous,
	}
	for _, year := range years {
		report.AcademicYears = append(report.AcademicYears, dto.AcademicYearSummary{
			ID:           year.ID,
			Name:         year.Name,
			Abbreviation: year.Abbreviation,
		})
	}

	for _, candidate := range run.candidates {
		report.AssignmentsByYear[candidate.Year.YearID]++
		if !candidate.Year.Known() {
			report.UnknownYear = append(report.UnknownYear, models.UnknownYearAssignment{
				AssignmentID: candidate.Assignment.ID,
				StaffID:      candidate.Assignment.StaffID,
				SubjectID:    candidate.Subject.ID,
				SubjectName:  candidate.Subject.Name,
				Semester:     strings.TrimSpace(candidate.Assignment.Semester),
				Reason:       "unknown-year",
			})
		}
	}

	// Deduplicate within each resolved year, matching what the student path
	// drops: rows sharing staff, subject and semester but resolving to
	// different years are distinct offerings, not duplicates.
	byYear := make(map[string][]taskCandidate)
	for _, candidate := range run.candidates {
		byYear[candidate.Year.YearID] = append(byYear[candidate.Year.YearID], candidate)
	}
	for _, group := range byYear {
		_, dropped := dedupeCandidates(group)
		report.DuplicatesDropped += dropped
	}

	return report, nil
}
