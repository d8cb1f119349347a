package app

import (
	"academic_portal_backend/docs"
	"academic_portal_backend/internal/config"
	"academic_portal_backend/internal/middleware"
	"academic_portal_backend/internal/model"
	"academic_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/", c.health.Index)

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		api.GET("/ws", c.ws.Connect)

		api.GET("/users", c.user.List)
		api.GET("/students", c.user.ListStudents)

		api.GET("/assignments", c.assignment.List)
		api.POST("/assignments", middleware.RoleMiddleware(model.Teacher), c.assignment.Create)
		api.GET("/assignments/:id/stats", middleware.RoleMiddleware(model.Teacher), c.assignment.Stats)

		api.GET("/submissions", c.submission.List)
		api.POST("/submissions", middleware.RoleMiddleware(model.Student), c.submission.Create)
		api.POST("/submissions/:id/grade", middleware.RoleMiddleware(model.Teacher), c.submission.Grade)

		api.GET("/quizzes", c.quiz.List)
		api.POST("/quizzes", middleware.RoleMiddleware(model.Teacher), c.quiz.Create)
		api.GET("/quizzes/:id/questions", c.quiz.Questions)
		api.POST("/quizzes/:id/attempts", middleware.RoleMiddleware(model.Student), c.quiz.SubmitAttempt)

		api.GET("/reflections", c.reflection.List)
		api.POST("/reflections", middleware.RoleMiddleware(model.Student), c.reflection.Create)

		api.GET("/notifications", c.notification.List)
		api.POST("/notifications", middleware.RoleMiddleware(model.Teacher), c.notification.Create)
		api.GET("/notifications/:id", c.notification.ListByUser)
		api.POST("/notifications/:id/read", c.notification.MarkRead)

		api.GET("/portfolio", c.portfolio.ListEvidence)
		api.POST("/portfolio", c.portfolio.CreateEvidence)
		api.GET("/skills", c.portfolio.ListSkills)
		api.GET("/outcomes", c.portfolio.ListOutcomes)

		api.POST("/upload", c.upload.Upload)
		api.DELETE("/upload/*file", middleware.RoleMiddleware(model.Teacher), c.upload.Delete)

		students := api.Group("/students/:id")
		{
			students.GET("/submissions", c.submission.ListByStudent)
			students.GET("/reflections", c.reflection.ListByStudent)
			students.GET("/outcomes", c.portfolio.OutcomeProgress)
			students.GET("/analytics", c.analytics.StudentAnalytics)
			students.GET("/recent-activity", c.analytics.RecentActivity)
			students.GET("/grades", c.analytics.Grades)
			students.GET("/dashboard", c.analytics.StudentDashboard)
		}

		api.GET("/analytics", c.analytics.GlobalAnalytics)
		api.GET("/teachers/:id/analytics", middleware.RoleMiddleware(model.Teacher), c.analytics.TeacherAnalytics)
		api.GET("/teachers/:id/assignments", c.assignment.ListByTeacher)
		api.GET("/teachers/:id/quizzes", c.quiz.ListByTeacher)
		api.GET("/dashboard/analytics", c.analytics.DashboardAnalytics)

		api.GET("/calendar/:userId", c.calendar.Month)
		api.GET("/calendar/:userId/upcoming", c.calendar.Upcoming)
	}
}
