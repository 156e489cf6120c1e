package app

import (
	"elearn_backend/docs"
	"elearn_backend/internal/config"
	"elearn_backend/internal/middleware"
	"elearn_backend/internal/model"
	"elearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
		public.GET("/courses/:id/modules", c.course.GetCourseModules)

		// 证书验真是对外公开能力，雇主无账号也可查验
		public.GET("/certificates/verify/:number", c.certificate.VerifyCertificate)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/profile", c.user.UpdateProfile)

		authGroup.GET("/modules/:moduleId/quizzes", c.quiz.GetModuleQuizzes)
		authGroup.GET("/quizzes/:id", c.quiz.GetQuiz)
		authGroup.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
		authGroup.GET("/quiz-results", c.quiz.GetMyResults)

		authGroup.POST("/enrollments", c.enrollment.Enroll)
		authGroup.GET("/enrollments", c.enrollment.GetMyEnrollments)
		authGroup.PUT("/enrollments/:id/progress", c.enrollment.UpdateProgress)
		authGroup.POST("/enrollments/:id/complete", c.enrollment.Complete)

		authGroup.GET("/certificates", c.certificate.GetMyCertificates)
	}

	// 课程管理接口，讲师与管理员可用
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor, model.Admin))
	{
		adminGroup.POST("/courses", c.course.CreateCourse)
		adminGroup.PUT("/courses/:id", c.course.UpdateCourse)
		adminGroup.DELETE("/courses/:id", c.course.DeleteCourse)
		adminGroup.POST("/courses/:id/modules", c.course.CreateModule)
		adminGroup.POST("/courses/:id/thumbnail", c.course.UploadThumbnail)
		adminGroup.POST("/modules/:moduleId/quizzes", c.course.CreateQuiz)
	}
}
