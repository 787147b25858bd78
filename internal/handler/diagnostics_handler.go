package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
	"github.com/noah-isme/campus-feedback-api/pkg/response"
)

type diagnosticsService interface {
	DiagnosticsForDepartment(ctx context.Context, departmentID string) (*dto.DepartmentDiagnostics, error)
}

// DiagnosticsHandler exposes resolution data-quality reports for admins.
type DiagnosticsHandler struct {
	service diagnosticsService
}

// NewDiagnosticsHandler constructs the handler.
func NewDiagnosticsHandler(service diagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{service: service}
}

// Department returns the resolution diagnostics for one department.
func (h *DiagnosticsHandler) Department(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	departmentID := strings.TrimSpace(c.Param("departmentId"))
	if departmentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "departmentId is required"))
		return
	}
	report, err := h.service.DiagnosticsForDepartment(c.Request.Context(), departmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
