package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
	"github.com/noah-isme/campus-feedback-api/pkg/response"
)

type feedbackServiceMock struct {
	err         error
	lastStudent string
	lastReq     dto.SubmitFeedbackRequest
}

func (m *feedbackServiceMock) Submit(_ context.Context, studentID string, req dto.SubmitFeedbackRequest) error {
	m.lastStudent = studentID
	m.lastReq = req
	return m.err
}

func newSubmitContext(t *testing.T, studentID string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/students/"+studentID+"/feedbacks", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "studentId", Value: studentID}}
	return c, w
}

func TestFeedbackHandlerSubmit(t *testing.T) {
	mock := &feedbackServiceMock{}
	handler := NewFeedbackHandler(mock)
	body, _ := json.Marshal(dto.SubmitFeedbackRequest{AssignmentID: "asg-1"})
	c, w := newSubmitContext(t, "stu-1", body)

	handler.Submit(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "stu-1", mock.lastStudent)
	assert.Equal(t, "asg-1", mock.lastReq.AssignmentID)
}

func TestFeedbackHandlerSubmitInvalidBody(t *testing.T) {
	handler := NewFeedbackHandler(&feedbackServiceMock{})
	c, w := newSubmitContext(t, "stu-1", []byte(`not-json`))

	handler.Submit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackHandlerSubmitConflict(t *testing.T) {
	mock := &feedbackServiceMock{err: appErrors.Clone(appErrors.ErrConflict, "feedback already submitted for this assignment")}
	handler := NewFeedbackHandler(mock)
	body, _ := json.Marshal(dto.SubmitFeedbackRequest{AssignmentID: "asg-1"})
	c, w := newSubmitContext(t, "stu-1", body)

	handler.Submit(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrConflict.Code, envelope.Error.Code)
}
