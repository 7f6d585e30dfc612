package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/agrifeed/config"
	"github.com/d60-Lab/agrifeed/internal/api/handler"
	"github.com/d60-Lab/agrifeed/internal/api/middleware"
)

// NewRouter 组装路由与中间件
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("agrifeed"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	secret := cfg.JWT.Secret
	authed := middleware.Auth(secret, true)
	optional := middleware.Auth(secret, false)

	v1 := r.Group("/api/v1")
	{
		// 信息流匿名可读，带 token 时附 viewer 态
		v1.GET("/feed", optional, h.GlobalFeed)
		v1.GET("/users/:user_id/posts", optional, h.UserPosts)
		v1.GET("/posts/:post_id/comments", h.ListComments)

		v1.POST("/posts", authed, h.CreatePost)
		v1.DELETE("/posts/:post_id", authed, h.DeletePost)
		v1.POST("/posts/:post_id/like", authed, h.ToggleLike)
		v1.POST("/posts/:post_id/comments", authed, h.AddComment)
		v1.DELETE("/comments/:comment_id", authed, h.DeleteComment)

		v1.GET("/notifications", authed, h.ListNotifications)
		v1.POST("/notifications/read", authed, h.MarkNotificationsRead)

		v1.POST("/contact", h.SubmitContact)
		v1.GET("/contact", authed, h.ListContactMessages)

		ai := v1.Group("/ai", authed)
		{
			ai.POST("/crop-disease", h.CropDisease)
			ai.POST("/fertilizer", h.Fertilizer)
			ai.POST("/seasonal-advice", h.SeasonalAdvice)
			ai.POST("/chatbot", h.Chatbot)
		}
	}
	return r
}
