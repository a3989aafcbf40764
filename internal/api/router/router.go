package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profguide/backend/config"
	"profguide/backend/internal/api/handler"
	"profguide/backend/internal/api/middleware"
	"profguide/backend/internal/repository"
	"profguide/backend/pkg/jwt"
	"profguide/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不启用限流
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *gin.Engine {
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimit > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authLimit := middleware.RateLimit(rdb, cfg.RateLimit.AuthLimit, cfg.RateLimit.Window, logger)
	ratingLimit := middleware.RateLimit(rdb, cfg.RateLimit.RatingLimit, cfg.RateLimit.Window, logger)
	requireAuth := middleware.JWTAuth(jwtMgr)

	api := r.Group("/api")
	{
		// 认证模块
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimit, h.Auth.Register)
			auth.POST("/login", authLimit, h.Auth.Login)
			auth.GET("/me", requireAuth, h.Auth.Me)
		}

		// 教授模块（公开）
		professors := api.Group("/professors")
		{
			professors.GET("", h.Professor.Search)
			professors.GET("/underrated", h.Professor.Underrated)
			professors.GET("/:id/details", h.Professor.GetDetails)
			professors.GET("/:id/course-semesters", h.Professor.ListOfferings)
			professors.GET("/:id/ratings", h.Professor.ListRatings)
			professors.GET("/:id/rating-distribution", h.Professor.RatingDistribution)
			professors.GET("/:id/tag-distribution", h.Professor.TagDistribution)
			professors.POST("/:id/view", h.Professor.RecordView)
		}

		api.GET("/tags", h.Tag.List)
		api.GET("/courses", h.Course.List)
		api.GET("/courses/top-rated", h.Course.TopRated)
		api.GET("/semesters", h.Semester.List)
		api.GET("/enrollments/verify", h.Enrollment.Verify)

		// 评分模块
		api.GET("/ratings/stats", h.Rating.Stats)
		api.POST("/ratings", requireAuth, ratingLimit, h.Rating.Submit)

		// 管理端（需登录且为管理员）
		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.AdminAuth(userRepo, logger))
		{
			admin.GET("/departments", h.Department.List)
			admin.POST("/departments", h.Department.Create)
			admin.PUT("/departments/:id", h.Department.Update)
			admin.DELETE("/departments/:id", h.Department.Delete)

			admin.GET("/professors", h.Professor.AdminList)
			admin.POST("/professors", h.Professor.Create)
			admin.PUT("/professors/:id", h.Professor.Update)
			admin.DELETE("/professors/:id", h.Professor.Delete)

			admin.POST("/courses", h.Course.Create)
			admin.PUT("/courses/:id", h.Course.Update)
			admin.DELETE("/courses/:id", h.Course.Delete)

			admin.POST("/semesters", h.Semester.Create)
			admin.PUT("/semesters/:id", h.Semester.Update)
			admin.DELETE("/semesters/:id", h.Semester.Delete)

			admin.GET("/course-semesters", h.Offering.ListCourseSemesters)
			admin.POST("/course-semesters", h.Offering.CreateCourseSemester)
			admin.DELETE("/course-semesters/:id", h.Offering.DeleteCourseSemester)

			admin.POST("/professor-course-semesters", h.Offering.AssignProfessor)
			admin.DELETE("/professor-course-semesters/:course_semester_id", h.Offering.UnassignProfessor)

			admin.GET("/available-courses/:semester_id", h.Course.Available)
			admin.GET("/available-professors/:course_semester_id", h.Offering.AvailableProfessors)

			admin.POST("/enrollments", h.Enrollment.Create)
			admin.GET("/enrollments/:pcs_id", h.Enrollment.ListByAssignment)
			admin.DELETE("/enrollments/:pcs_id/:student_email", h.Enrollment.Delete)

			admin.POST("/professor-tags/rebuild", h.Tag.Rebuild)
			admin.GET("/export/ratings", h.Export.ExportRatings)
		}
	}

	return r
}
