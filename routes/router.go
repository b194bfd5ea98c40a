package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unbem/unbem/config"
	"github.com/unbem/unbem/controllers"
	"github.com/unbem/unbem/middleware"
	"github.com/unbem/unbem/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	identityController := controllers.NewIdentityController()
	moodController := controllers.NewMoodController()
	forumController := controllers.NewForumController(db)
	feedController := controllers.NewFeedController(db)
	statsController := controllers.NewStatsController(db)
	wellnessController := controllers.NewWellnessController()

	api := r.Group("/api/v1")

	api.POST("/identity", middleware.RateLimitMiddleware(), identityController.Create)

	// Calendar: fully local to the caller's identity, independent of the forum store
	moods := api.Group("/moods")
	moods.Use(middleware.IdentityRequired())
	moods.GET("/month", moodController.GetMonth)
	moods.PUT("", middleware.RateLimitMiddleware(), moodController.SelectMood)

	// Forum: anonymous reads and writes
	posts := api.Group("/posts")
	posts.GET("", forumController.ListPosts)
	posts.POST("", middleware.RateLimitMiddleware(), forumController.CreatePost)
	posts.GET("/:id/replies", forumController.ListReplies)
	posts.POST("/:id/replies", middleware.RateLimitMiddleware(), forumController.CreateReply)

	api.GET("/feed/ws", feedController.Live)

	api.GET("/stats", statsController.GetStats)
	api.GET("/resources", wellnessController.GetResources)
	api.GET("/support", wellnessController.GetSupport)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
