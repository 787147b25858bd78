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
)

type assignmentServiceMock struct {
	err     error
	lastReq dto.ReplaceAssignmentsRequest
}

func (m *assignmentServiceMock) Replace(_ context.Context, req dto.ReplaceAssignmentsRequest) error {
	m.lastReq = req
	return m.err
}

func TestAssignmentHandlerReplace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := &assignmentServiceMock{}
	handler := NewAssignmentHandler(mock)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(dto.ReplaceAssignmentsRequest{
		// Body staff id is ignored; the path parameter is authoritative.
		StaffID:  "staff-spoofed",
		Semester: "Odd 2025-26",
		Assignments: []dto.ReplaceAssignmentInput{
			{SubjectID: "subj-ds", DepartmentID: "dept-co"},
		},
	})
	req, err := http.NewRequest(http.MethodPut, "/staff/staff-1/assignments", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "staffId", Value: "staff-1"}}

	handler.Replace(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "staff-1", mock.lastReq.StaffID)
	assert.Equal(t, "Odd 2025-26", mock.lastReq.Semester)
	require.Len(t, mock.lastReq.Assignments, 1)
}

func TestAssignmentHandlerReplaceInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAssignmentHandler(&assignmentServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPut, "/staff/staff-1/assignments", bytes.NewReader([]byte(`{`)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "staffId", Value: "staff-1"}}

	handler.Replace(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
