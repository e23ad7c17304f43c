package router

import (
	"time"

	"ideaforge/internal/config"
	"ideaforge/internal/handlers"
	"ideaforge/internal/middleware"
	"ideaforge/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// New builds the engine with the middleware chain and every route.
func New(cfg *config.Config, rdb *redis.Client, users *services.UserService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
	})
	r.Use(sessions.Sessions(cfg.SessionName, store))
	r.Use(middleware.LoadUser())

	RegisterRoutes(r, cfg, rdb, users)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, rdb *redis.Client, users *services.UserService) {
	// Handlers
	authHandler := handlers.NewAuthHandler(users)
	userHandler := handlers.NewUserHandler(users)
	ideaHandler := handlers.NewIdeaHandler()
	commentHandler := handlers.NewCommentHandler()
	creditHandler := handlers.NewCreditHandler()
	adHandler := handlers.NewAdHandler()

	voteLimit := middleware.RateLimit(rdb, "votes", cfg.VoteRateLimit, cfg.RateLimitWindow)
	writeLimit := middleware.RateLimit(rdb, "writes", cfg.WriteRateLimit, cfg.RateLimitWindow)
	authLimit := middleware.RateLimit(rdb, "auth", cfg.WriteRateLimit, cfg.RateLimitWindow)

	// 公共路由 (Public Routes)
	r.GET("/healthz", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authLimit, authHandler.Signup) // 注册
		auth.POST("/login", authLimit, authHandler.Login)   // 登录
		auth.POST("/logout", authHandler.Logout)            // 退出登录
		auth.GET("/session", authHandler.Session)           // 当前会话
	}

	// 受保护路由 (Protected Routes)
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/ideas", ideaHandler.List)
		authorized.POST("/ideas", writeLimit, ideaHandler.Create)
		authorized.GET("/ideas/:id", ideaHandler.Get)
		authorized.PUT("/ideas/:id/vote", voteLimit, ideaHandler.Vote)

		authorized.GET("/ideas/:id/comments", commentHandler.List)
		authorized.POST("/ideas/:id/comments", writeLimit, commentHandler.Create)
		authorized.PATCH("/ideas/:id/comments/:commentId", writeLimit, commentHandler.Edit)
		authorized.DELETE("/ideas/:id/comments/:commentId", commentHandler.Delete)
		authorized.PUT("/ideas/:id/comments/:commentId/vote", voteLimit, commentHandler.Vote)

		authorized.GET("/credits", creditHandler.Balance)
		authorized.GET("/credits/history", creditHandler.History)

		authorized.GET("/ads", adHandler.Draw)
		authorized.PUT("/ads", writeLimit, adHandler.Create)

		authorized.GET("/profile", userHandler.Profile)
		authorized.PUT("/profile", userHandler.UpdateProfile)
		authorized.PUT("/profile/password", userHandler.ChangePassword)
		authorized.DELETE("/profile/delete", userHandler.DeleteAccount)
		authorized.PUT("/profile/avatar", writeLimit, userHandler.SetAvatar)
		authorized.DELETE("/profile/avatar", userHandler.RemoveAvatar)

		authorized.GET("/users/:id/avatar", userHandler.Avatar)
	}
}
