package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-feedback-api/internal/models"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func assignmentColumns() []string {
	return []string{"id", "staff_id", "subject_id", "department_id", "academic_year_id", "semester", "created_at"}
}

func TestFacultyAssignmentRepositoryListBySubjectIDs(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewFacultyAssignmentRepository(db)
	created := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(assignmentColumns()).
		AddRow("asg-1", "staff-1", "subj-ds", "dept-co", nil, "Odd 2025-26", created).
		AddRow("asg-2", "staff-2", "link-mp", "dept-co", "year-tyco", "Odd 2025-26", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, staff_id, subject_id, department_id, academic_year_id, semester, created_at")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	assignments, err := repo.ListBySubjectIDs(context.Background(), []string{"subj-ds", "link-mp"})
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	require.Equal(t, "asg-1", assignments[0].ID)
	require.NotNil(t, assignments[0].CreatedAt)
	require.Nil(t, assignments[0].AcademicYearID)
	require.Equal(t, "link-mp", assignments[1].SubjectID)
	require.Nil(t, assignments[1].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyAssignmentRepositoryListBySubjectIDsEmptyInput(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewFacultyAssignmentRepository(db)
	assignments, err := repo.ListBySubjectIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, assignments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyAssignmentRepositoryListByDepartment(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewFacultyAssignmentRepository(db)
	rows := sqlmock.NewRows(assignmentColumns()).
		AddRow("asg-1", "staff-1", `ObjectID("subj-ds")`, "dept-co", nil, "Odd 2025-26", nil)
	mock.ExpectQuery("WHERE department_id").
		WithArgs("dept-co").
		WillReturnRows(rows)

	assignments, err := repo.ListByDepartment(context.Background(), "dept-co")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	require.Equal(t, `ObjectID("subj-ds")`, assignments[0].SubjectID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyAssignmentRepositoryReplaceForStaffSemester(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewFacultyAssignmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_assignments")).
		WithArgs("staff-1", "Odd 2025-26").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty_assignments")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty_assignments")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assignments := []models.FacultyAssignment{
		{SubjectID: "subj-ds", DepartmentID: "dept-co"},
		{ID: "asg-keep", SubjectID: "link-mp", DepartmentID: "dept-co"},
	}
	require.NoError(t, repo.ReplaceForStaffSemester(context.Background(), "staff-1", "Odd 2025-26", assignments))

	// Missing ids and timestamps are filled in before insert.
	require.NotEmpty(t, assignments[0].ID)
	require.Equal(t, "asg-keep", assignments[1].ID)
	require.Equal(t, "staff-1", assignments[0].StaffID)
	require.Equal(t, "Odd 2025-26", assignments[1].Semester)
	require.NotNil(t, assignments[0].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyAssignmentRepositoryReplaceEmptySetOnlyDeletes(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewFacultyAssignmentRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faculty_assignments")).
		WithArgs("staff-1", "Odd 2025-26").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.ReplaceForStaffSemester(context.Background(), "staff-1", "Odd 2025-26", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
