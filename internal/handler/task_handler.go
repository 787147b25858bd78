package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-feedback-api/internal/dto"
	"github.com/noah-isme/campus-feedback-api/internal/middleware"
	"github.com/noah-isme/campus-feedback-api/internal/service"
	appErrors "github.com/noah-isme/campus-feedback-api/pkg/errors"
	"github.com/noah-isme/campus-feedback-api/pkg/response"
)

type taskService interface {
	ResolveTasksForStudent(ctx context.Context, studentID string, opts service.TaskQueryOptions) (*dto.TaskListResponse, bool, error)
}

// TaskHandler wires task resolution to HTTP endpoints.
type TaskHandler struct {
	service taskService
}

// NewTaskHandler constructs the handler.
func NewTaskHandler(service taskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List returns the student's feedback tasks. groupBySubject=true collapses
// multiple faculty per subject into one row (the student dashboard view);
// fresh=true bypasses the cache.
func (h *TaskHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID := strings.TrimSpace(c.Param("studentId"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}
	opts := service.TaskQueryOptions{
		GroupBySubject: parseBoolQuery(c, "groupBySubject"),
		Fresh:          parseBoolQuery(c, "fresh"),
	}
	start := time.Now()
	result, cacheHit, err := h.service.ResolveTasksForStudent(c.Request.Context(), studentID, opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, result, meta)
}

func parseBoolQuery(c *gin.Context, name string) bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}
