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

func newFeedbackRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestFeedbackRepositorySubmittedAssignmentIDs(t *testing.T) {
	db, mock, cleanup := newFeedbackRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	rows := sqlmock.NewRows([]string{"assignment_id"}).
		AddRow("asg-1").
		AddRow("asg-2")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT assignment_id FROM feedbacks")).
		WithArgs("stu-1").
		WillReturnRows(rows)

	ids, err := repo.SubmittedAssignmentIDs(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Equal(t, []string{"asg-1", "asg-2"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newFeedbackRepoMock(t)
	defer cleanup()

	repo := NewFeedbackRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO feedbacks")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	feedback := &models.Feedback{
		ID:           "fb-1",
		StudentID:    "stu-1",
		AssignmentID: "asg-1",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), feedback))
	require.NoError(t, mock.ExpectationsWereMet())
}
