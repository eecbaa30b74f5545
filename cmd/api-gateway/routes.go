package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/middleware"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/pkg/config"
	"github.com/noah-isme/verticx-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/verticx-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/verticx-api/pkg/middleware/requestid"
)

var (
	staff = []models.UserRole{
		models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal,
		models.RoleRegistrar, models.RoleTeacher, models.RoleLibrarian,
	}
	sheetWriters = []models.UserRole{
		models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal,
		models.RoleRegistrar, models.RoleTeacher,
	}
	reviewers = []models.UserRole{
		models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal, models.RoleRegistrar,
	}
	feeWriters = []models.UserRole{
		models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal,
	}
	academicWriters = []models.UserRole{
		models.RoleSuperAdmin, models.RoleAdmin, models.RolePrincipal,
		models.RoleRegistrar, models.RoleTeacher,
	}
)

func roles(list []models.UserRole, extra ...string) gin.HandlerFunc {
	allowed := make([]string, 0, len(list)+len(extra))
	for _, r := range list {
		allowed = append(allowed, string(r))
	}
	return middleware.RBAC(append(allowed, extra...)...)
}

func newRouter(cfg *config.Config, logr *zap.Logger, a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.metrics, "/metrics", "/health", "/ready"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", a.metricsHandler.Health)
	r.GET("/metrics", a.metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.POST("/auth/login", a.authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(a.auth))
	secured.GET("/auth/me", a.authHandler.Me)
	secured.GET("/stats", middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin), a.metricsHandler.Stats)

	attendance := secured.Group("/attendance")
	attendance.POST("/sheets", roles(sheetWriters), a.attendance.SaveSheet)
	attendance.GET("/sheets", roles(sheetWriters), a.attendance.GetSheet)

	people := secured.Group("/people/:id")
	people.GET("/attendance", roles(staff, middleware.Self), a.attendance.ListForPerson)
	people.GET("/calendar", roles(staff, middleware.Self), a.attendance.Calendar)
	people.GET("/calendar/export", roles(staff, middleware.Self), a.attendance.ExportCalendar)
	people.GET("/leaves", roles(staff, middleware.Self), a.leaves.ListForPerson)

	leaves := secured.Group("/leaves")
	leaves.POST("", a.leaves.Apply)
	leaves.GET("", roles(reviewers), a.leaves.ListByBranch)
	leaves.POST("/:id/review", roles(reviewers), a.leaves.Review)

	requests := secured.Group("/change-requests")
	requests.POST("", roles(academicWriters), a.changeRequests.Submit)
	requests.GET("", roles(academicWriters), a.changeRequests.List)
	requests.GET("/:id", roles(academicWriters), a.changeRequests.Get)
	requests.POST("/:id/review", roles(reviewers), a.changeRequests.Review)

	fees := secured.Group("/fee-templates")
	fees.GET("", roles(staff), a.fees.List)
	fees.GET("/:id", roles(staff), a.fees.Get)
	fees.GET("/:id/export", roles(staff), a.fees.ExportPDF)
	fees.POST("", roles(feeWriters), a.fees.Create)
	fees.PUT("/:id", roles(feeWriters), a.fees.Update)
	fees.DELETE("/:id", roles(feeWriters), a.fees.Delete)
	fees.POST("/:id/commit", roles(feeWriters), a.fees.Commit)
	fees.POST("/:id/update-requests", roles(feeWriters), a.fees.RequestUpdate)
	fees.POST("/:id/deletion-requests", roles(feeWriters), a.fees.RequestDeletion)

	lectures := secured.Group("/syllabus/lectures")
	lectures.GET("", roles(staff), a.syllabus.List)
	lectures.GET("/:id", roles(staff), a.syllabus.Get)
	lectures.POST("", roles(academicWriters), a.syllabus.Create)
	lectures.PUT("/:id", roles(academicWriters), a.syllabus.Update)
	lectures.DELETE("/:id", roles(academicWriters), a.syllabus.Delete)
	lectures.POST("/:id/commit", roles(academicWriters), a.syllabus.Commit)
	lectures.POST("/:id/update-requests", roles(academicWriters), a.syllabus.RequestUpdate)
	lectures.POST("/:id/deletion-requests", roles(academicWriters), a.syllabus.RequestDeletion)

	marks := secured.Group("/exam-marks")
	marks.GET("", roles(staff), a.examMarks.List)
	marks.GET("/:id", roles(staff), a.examMarks.Get)
	marks.POST("", roles(academicWriters), a.examMarks.Create)
	marks.PUT("/:id", roles(academicWriters), a.examMarks.Update)
	marks.DELETE("/:id", roles(academicWriters), a.examMarks.Delete)
	marks.POST("/:id/update-requests", roles(academicWriters), a.examMarks.RequestUpdate)
	marks.POST("/:id/deletion-requests", roles(academicWriters), a.examMarks.RequestDeletion)
	secured.POST("/exams/:id/commit", roles(academicWriters), a.examMarks.CommitExam)

	dashboard := secured.Group("/dashboard")
	dashboard.GET("/branch", roles(staff), a.dashboard.Branch)
	dashboard.GET("/people/:id", roles(staff, middleware.Self), a.dashboard.Person)

	return r
}
