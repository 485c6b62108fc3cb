package app

import (
	"fitacademy_backend/docs"
	"fitacademy_backend/internal/config"
	"fitacademy_backend/internal/middleware"
	"fitacademy_backend/internal/model"
	"fitacademy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 公开路由：目录、内容板块和留言表单，无需登录
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/courses", c.course.ListPublic)
		public.GET("/courses/:id", c.course.GetPublic)

		public.GET("/blogs", c.blog.ListPublic)
		public.GET("/blogs/:id", c.blog.GetPublic)
		public.GET("/programs", c.program.ListPublic)
		public.GET("/trainers", c.trainer.ListPublic)
		public.GET("/gallery", c.gallery.List)

		public.POST("/contact", c.contact.Submit)
	}

	// 会员路由：报名、进度和个人资料
	member := router.Group("/api")
	member.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		member.GET("/auth/me", c.auth.Me)
		member.PUT("/auth/profile", c.auth.UpdateProfile)
		member.POST("/auth/avatar", c.auth.UploadAvatar)

		member.POST("/enrollments", c.enrollment.SubmitPayment)
		member.GET("/enrollments", c.enrollment.ListMine)
		member.GET("/enrollments/:id", c.enrollment.GetEnrollment)
		member.POST("/enrollments/:id/topics/:order/start", c.enrollment.StartTopic)
		member.POST("/enrollments/:id/topics/:order/complete", c.enrollment.CompleteTopic)
	}

	// 管理端路由
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/enrollments", c.enrollment.List)
		admin.POST("/enrollments/:id/verify", c.enrollment.Verify)
		admin.DELETE("/enrollments/:id", c.enrollment.Delete)

		admin.GET("/courses", c.course.List)
		admin.GET("/courses/:id", c.course.Get)
		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)

		admin.GET("/blogs", c.blog.List)
		admin.POST("/blogs", c.blog.Create)
		admin.POST("/blogs/cover", c.blog.UploadCover)
		admin.PUT("/blogs/:id", c.blog.Update)
		admin.DELETE("/blogs/:id", c.blog.Delete)

		admin.GET("/programs", c.program.List)
		admin.POST("/programs", c.program.Create)
		admin.PUT("/programs/:id", c.program.Update)
		admin.DELETE("/programs/:id", c.program.Delete)

		admin.GET("/trainers", c.trainer.List)
		admin.POST("/trainers", c.trainer.Create)
		admin.POST("/trainers/photo", c.trainer.UploadPhoto)
		admin.PUT("/trainers/:id", c.trainer.Update)
		admin.DELETE("/trainers/:id", c.trainer.Delete)

		admin.POST("/gallery", c.gallery.Upload)
		admin.DELETE("/gallery/:id", c.gallery.Delete)

		admin.GET("/contact", c.contact.List)
		admin.POST("/contact/:id/read", c.contact.MarkRead)
		admin.DELETE("/contact/:id", c.contact.Delete)
	}
}
