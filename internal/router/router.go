package router

import (
	"time"

	"github.com/casalista/internal/config"
	"github.com/casalista/internal/db"
	"github.com/casalista/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// cacheSweepInterval 是去重缓存与限流计数器的后台清理周期。
const cacheSweepInterval = 10 * time.Minute

// Setup 配置 Gin 引擎和路由。
// 返回的停止函数用于关闭后台清理协程，测试中应在收尾时调用。
func Setup(cfg config.AppConfig) (*gin.Engine, func()) {
	r := gin.Default()

	// 配置后台管理会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("casalista_admin", store))

	api := handler.NewAPI(db.DB, cfg)
	stopSweeper := startSweeper(api)

	// 上传的房源图片静态服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 前台公开接口，各品牌站点共用
	public := r.Group("/api")
	{
		public.GET("/properties", api.ListPublishedProperties)
		public.GET("/properties/:slug", api.ShowProperty)
		public.GET("/storefronts", api.ListStorefronts)
		public.POST("/contact", api.RateLimit("contact"), api.SubmitContact)

		// 访客统计上报接口，整组限流
		track := public.Group("/track", api.RateLimit("track"))
		{
			track.POST("/session", api.StartTrackingSession)
			track.PATCH("/session", api.EndTrackingSession)
			track.POST("/pageview", api.RecordPageview)
			track.POST("/event", api.RecordEvent)
		}
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.RateLimit("login"), api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台接口，整组限流
		auth := admin.Group("/api")
		auth.Use(api.RateLimit("admin"), handler.AuthRequired())
		{
			auth.GET("/stats", api.GetStats)
			auth.GET("/messages", api.GetContactMessages)

			auth.GET("/properties", api.GetProperties)
			auth.GET("/properties/:id", api.GetProperty)
			auth.POST("/properties", api.CreateProperty)
			auth.PUT("/properties/:id", api.UpdateProperty)
			auth.POST("/properties/:id/archive", api.ArchiveProperty)
			auth.DELETE("/properties/:id", api.DeleteProperty)

			auth.GET("/storefronts", api.GetStorefronts)
			auth.PUT("/storefronts", api.UpsertStorefront)
			auth.DELETE("/storefronts/:id", api.DeleteStorefront)

			auth.POST("/upload", api.UploadImage)
		}
	}

	return r, stopSweeper
}

// startSweeper 周期性清理过期的去重缓存与限流计数器，
// 返回的函数用于停止清理协程。清理只是回收内存，不影响正确性。
func startSweeper(api *handler.API) func() {
	ticker := time.NewTicker(cacheSweepInterval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				api.Tracking().SweepCache(now)
				api.Limiter().Sweep(now)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
