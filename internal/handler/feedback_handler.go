package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
	"github.com/noah-isme/campus-feedback-api/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, studentID string, req dto.SubmitFeedbackRequest) error
}

// FeedbackHandler records feedback submissions.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(service feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit records a student's feedback for one assignment.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID := strings.TrimSpace(c.Param("studentId"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}
	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.service.Submit(c.Request.Context(), studentID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
