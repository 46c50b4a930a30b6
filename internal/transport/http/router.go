package httptransport

import (
	"strconv"
	"time"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dockspace/backend/internal/config"
	"dockspace/backend/internal/dms"
	"dockspace/backend/internal/health"
	"dockspace/backend/internal/middleware"
	"dockspace/backend/internal/monitoring"
	"dockspace/backend/internal/service"
)

// RouterDependencies 路由器依赖项
type RouterDependencies struct {
	Config         *config.Config
	AccountService *service.AccountService
	AliasService   *service.AliasService
	QuotaService   *service.QuotaService
	Exporter       *dms.Exporter
	Metrics        *monitoring.Metrics
	Health         *health.HealthChecker
	Logger         *zap.Logger
}

// NewRouter 创建并返回 Gin 路由实例。
func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()

	// 使用自定义中间件替代默认中间件
	router.Use(middleware.RecoveryHandler(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(1 * 1024 * 1024))
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
	}

	// CORS 配置
	corsConfig := gincors.Config{
		AllowOrigins:     deps.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// 如果允许所有来源，则需清空凭证支持。
	for _, origin := range corsConfig.AllowOrigins {
		if origin == "*" {
			corsConfig.AllowCredentials = false
			break
		}
	}
	router.Use(gincors.New(corsConfig))

	accountHandler := NewAccountHandler(deps.AccountService)
	aliasHandler := NewAliasHandler(deps.AliasService)
	quotaHandler := NewQuotaHandler(deps.QuotaService)
	dmsHandler := NewDMSHandler(deps.Exporter, deps.Logger)

	// 运维端点
	if deps.Health != nil {
		router.GET("/health", gin.WrapH(deps.Health.Handler()))
		router.GET("/health/live", gin.WrapH(deps.Health.Handler()))
		router.GET("/health/ready", gin.WrapH(deps.Health.Handler()))
	}
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.HTTPHandler()))
	}

	v1 := router.Group("/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:id", accountHandler.Get)
			accounts.PATCH("/:id", accountHandler.Update)
			accounts.DELETE("/:id", accountHandler.Delete)

			// 配额挂在账户之下：每个账户至多一条
			accounts.PUT("/:id/quota", quotaHandler.Set)
			accounts.GET("/:id/quota", quotaHandler.Get)
			accounts.DELETE("/:id/quota", quotaHandler.Delete)
		}

		v1.POST("/accounts/by-address/:address/password", accountHandler.SetPassword)

		aliases := v1.Group("/aliases")
		{
			aliases.POST("", aliasHandler.Create)
			aliases.GET("", aliasHandler.List)
			aliases.GET("/:id", aliasHandler.Get)
			aliases.PATCH("/:id", aliasHandler.Update)
			aliases.DELETE("/:id", aliasHandler.Delete)
		}

		v1.GET("/quotas", quotaHandler.List)

		dmsGroup := v1.Group("/dms")
		{
			dmsGroup.POST("/export", dmsHandler.Export)
			dmsGroup.POST("/verify", dmsHandler.Verify)
		}
	}

	return router
}

// metricsMiddleware 记录 HTTP 请求指标
func metricsMiddleware(metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
