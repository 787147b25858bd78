package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
	"github.com/noah-isme/campus-feedback-api/pkg/response"
)

type assignmentAdminService interface {
	Replace(ctx context.Context, req dto.ReplaceAssignmentsRequest) error
}

// AssignmentHandler exposes the wholesale assignment replacement write path.
type AssignmentHandler struct {
	service assignmentAdminService
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service assignmentAdminService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// Replace swaps out the full assignment set for one staff member and semester.
func (h *AssignmentHandler) Replace(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	staffID := strings.TrimSpace(c.Param("staffId"))
	if staffID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "staffId is required"))
		return
	}
	var req dto.ReplaceAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	req.StaffID = staffID
	if err := h.service.Replace(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
