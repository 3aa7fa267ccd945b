package app

import (
	"jaagrmind_backend/docs"
	"jaagrmind_backend/internal/config"
	"jaagrmind_backend/internal/middleware"
	"jaagrmind_backend/internal/model"
	"jaagrmind_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	auth := router.Group("/api/auth")
	{
		auth.POST("/admin/login", c.auth.AdminLogin)
		auth.POST("/school/login", c.auth.SchoolLogin)
		auth.POST("/student/login", c.auth.StudentLogin)
	}

	// Platform administration: school lifecycle and assessment authoring.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/profile", c.auth.Profile)

		admin.POST("/schools", c.school.Register)
		admin.GET("/schools", c.school.List)
		admin.GET("/schools/:id", c.school.Get)
		admin.PUT("/schools/:id", c.school.Update)
		admin.POST("/schools/:id/logo", c.school.UploadLogo)
		admin.POST("/schools/:id/reset-password", c.school.ResetPassword)
		admin.DELETE("/schools/:id", c.school.Delete)

		admin.POST("/assessments", c.assessment.Create)
		admin.GET("/assessments", c.assessment.List)
		admin.GET("/assessments/:id", c.assessment.Get)
		admin.PUT("/assessments/:id", c.assessment.Update)
		admin.PATCH("/assessments/:id/publish", c.assessment.SetPublished)
		admin.DELETE("/assessments/:id", c.assessment.Delete)

		admin.GET("/analytics", c.analytics.GetSummary)
	}

	// School dashboard. Admins pass the role check too and scope by the
	// schoolId query instead of token claims.
	school := router.Group("/api/school")
	school.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleSchool))
	{
		school.GET("/profile", c.auth.Profile)

		school.POST("/students", c.student.Create)
		school.POST("/students/batch", c.student.CreateBatch)
		school.GET("/students", c.student.List)
		school.PUT("/students/:id", c.student.Update)
		school.DELETE("/students/:id", c.student.Delete)

		school.GET("/analytics", c.analytics.GetSummary)
		school.GET("/analytics/classes", c.analytics.GetClasses)
		school.GET("/submissions/:id", c.submission.Get)
	}

	// Student assessment flow over the access-ID token.
	student := router.Group("/api/student")
	student.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAccess))
	{
		student.GET("/assessments", c.assessment.ListPublished)
		student.GET("/assessments/:id", c.assessment.GetForStudent)
		student.GET("/assessments/:id/submission", c.submission.GetOwnForAssessment)
		student.POST("/submissions", c.submission.Submit)
		student.GET("/submissions", c.submission.ListOwn)
	}
}
