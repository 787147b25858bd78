package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-feedback-api/internal/handler"
	"github.com/noah-isme/campus-feedback-api/internal/middleware"
	"github.com/noah-isme/campus-feedback-api/internal/repository"
	"github.com/noah-isme/campus-feedback-api/internal/service"
	"github.com/noah-isme/campus-feedback-api/pkg/cache"
	"github.com/noah-isme/campus-feedback-api/pkg/config"
	"github.com/noah-isme/campus-feedback-api/pkg/database"
	"github.com/noah-isme/campus-feedback-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-feedback-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-feedback-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Tasks.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Tasks.CacheTTL, logr, true)
	}

	students := repository.NewStudentRepository(db)
	departments := repository.NewDepartmentRepository(db)
	years := repository.NewAcademicYearRepository(db)
	links := repository.NewDepartmentSubjectRepository(db)
	subjects := repository.NewSubjectRepository(db)
	assignments := repository.NewFacultyAssignmentRepository(db)
	staff := repository.NewStaffRepository(db)
	feedbacks := repository.NewFeedbackRepository(db)

	taskSvc := service.NewTaskService(service.TaskServiceParams{
		Students:    students,
		Departments: departments,
		Years:       years,
		Links:       links,
		Subjects:    subjects,
		Assignments: assignments,
		Staff:       staff,
		Feedback:    feedbacks,
		Cache:       cacheSvc,
		Metrics:     metricsSvc,
		Logger:      logr,
		Config:      service.TaskServiceConfig{CacheTTL: cfg.Tasks.CacheTTL},
	})
	feedbackSvc := service.NewFeedbackService(feedbacks, taskSvc, cacheSvc, logr)
	adminSvc := service.NewAssignmentAdminService(assignments, cacheSvc, nil, logr)

	taskHandler := handler.NewTaskHandler(taskSvc)
	diagnosticsHandler := handler.NewDiagnosticsHandler(taskSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	assignmentHandler := handler.NewAssignmentHandler(adminSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.GET("/students/:studentId/tasks", taskHandler.List)
	api.POST("/students/:studentId/feedbacks", feedbackHandler.Submit)
	api.GET("/departments/:departmentId/diagnostics", diagnosticsHandler.Department)
	api.PUT("/staff/:staffId/assignments", assignmentHandler.Replace)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
