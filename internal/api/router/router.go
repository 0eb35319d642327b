package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"openhackathon/backend/config"
	"openhackathon/backend/internal/api/handler"
	"openhackathon/backend/internal/api/middleware"
	"openhackathon/backend/pkg/jwt"
	"openhackathon/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20)) // 1 MiB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录注册限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 公开排行榜（无需认证，未发布时返回占位响应）
		v1.GET("/hackathons/:id/leaderboard", h.Leaderboard.GetPublicLeaderboard)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin", "organizer"), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth("admin", "organizer"), h.User.GetUser)
			}

			// 黑客松模块
			hackathons := authorized.Group("/hackathons")
			{
				hackathons.GET("", h.Hackathon.ListHackathons)
				hackathons.GET("/:id", h.Hackathon.GetHackathon)
				hackathons.POST("", middleware.RoleAuth("admin", "organizer"), h.Hackathon.CreateHackathon)
				hackathons.PUT("/:id", middleware.RoleAuth("admin", "organizer"), h.Hackathon.UpdateHackathon)
				hackathons.DELETE("/:id", middleware.RoleAuth("admin"), h.Hackathon.DeleteHackathon)
				hackathons.PUT("/:id/criteria", middleware.RoleAuth("admin", "organizer"), h.Hackathon.UpdateCriteria)
				hackathons.PUT("/:id/submission-fields", middleware.RoleAuth("admin", "organizer"), h.Hackathon.UpdateSubmissionFields)

				// 赛段
				hackathons.GET("/:id/sessions", h.Session.ListSessions)
				hackathons.POST("/:id/sessions", middleware.RoleAuth("admin", "organizer"), h.Session.CreateSession)

				// 项目
				hackathons.GET("/:id/projects", h.Project.ListProjects)
				hackathons.POST("/:id/projects", h.Project.CreateProject)

				// 排行榜（管理端）
				hackathons.GET("/:id/leaderboard/admin", middleware.RoleAuth("admin", "organizer"), h.Leaderboard.GetAdminLeaderboard)
				hackathons.PUT("/:id/leaderboard", middleware.RoleAuth("admin", "organizer"), h.Leaderboard.SaveLeaderboard)

				// 报表与导出
				hackathons.GET("/:id/report/matrix", middleware.RoleAuth("admin", "organizer"), h.Report.GetMatrix)
				hackathons.GET("/:id/report/export/csv", middleware.RoleAuth("admin", "organizer"), h.Report.ExportCSV)
				hackathons.GET("/:id/report/export/excel", middleware.RoleAuth("admin", "organizer"), h.Report.ExportExcel)
				hackathons.GET("/:id/report/export/schedule", h.Report.ExportSchedule)
			}

			// 赛段模块
			sessions := authorized.Group("/sessions")
			{
				sessions.GET("/:id", h.Session.GetSession)
				sessions.PUT("/:id", middleware.RoleAuth("admin", "organizer"), h.Session.UpdateSession)
				sessions.DELETE("/:id", middleware.RoleAuth("admin", "organizer"), h.Session.DeleteSession)
			}

			// 项目模块
			projects := authorized.Group("/projects")
			{
				projects.GET("/:id", h.Project.GetProject)
				projects.PUT("/:id", h.Project.UpdateProject)       // 提交者本人（Service 层鉴权）
				projects.POST("/:id/submit", h.Project.SubmitProject)
				projects.DELETE("/:id", h.Project.DeleteProject) // 本人或 admin/organizer（Service 层鉴权）
			}

			// 评审分配与评分模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", middleware.RoleAuth("admin", "organizer"), h.Assignment.ListAssignments)
				assignments.GET("/mine", middleware.RoleAuth("judge"), h.Assignment.ListMyAssignments)
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.POST("", middleware.RoleAuth("admin", "organizer"), h.Assignment.CreateAssignment)
				assignments.POST("/bulk", middleware.RoleAuth("admin", "organizer"), h.Assignment.BulkAssign)
				assignments.DELETE("/:id", middleware.RoleAuth("admin", "organizer"), h.Assignment.DeleteAssignment)

				assignments.POST("/:id/start", middleware.RoleAuth("judge"), h.Assignment.StartAssignment)
				assignments.POST("/:id/score", middleware.RoleAuth("judge"), h.Assignment.SubmitScore)
				assignments.GET("/:id/score", h.Assignment.GetScoreDetail)
			}
		}
	}

	return r
}
