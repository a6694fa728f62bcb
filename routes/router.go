package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rooluDev/goboard/config"
	"github.com/rooluDev/goboard/controllers"
	"github.com/rooluDev/goboard/middleware"
	"github.com/rooluDev/goboard/repository"
	"github.com/rooluDev/goboard/services"
	"github.com/rooluDev/goboard/utils"
)

// SetupRouter wires routes, middlewares, services and controllers.
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
	// Replace the default console logger with a file-based zap logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl))
		r.Use(utils.RecoveryWithZap(gl))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	gateway := repository.NewGormGateway(db)
	store := services.NewLocalStore(cfg.UploadRoot, utils.Sugar)
	boardSvc := services.NewBoardService(gateway, store, utils.Sugar)
	commentSvc := services.NewCommentService(gateway)

	boardController := controllers.NewBoardController(boardSvc)
	commentController := controllers.NewCommentController(commentSvc)
	attachmentController := controllers.NewAttachmentController(boardSvc)
	categoryController := controllers.NewCategoryController(boardSvc)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	api.GET("/categories", categoryController.List)
	api.GET("/posts", boardController.ListPosts)
	api.GET("/posts/:id", boardController.GetPost)
	api.GET("/posts/:id/comments", commentController.List)
	api.GET("/attachments/:id/download", attachmentController.Download)

	mutating := api.Group("")
	mutating.Use(middleware.RateLimitMiddleware())
	mutating.POST("/posts", boardController.CreatePost)
	mutating.PUT("/posts/:id", boardController.UpdatePost)
	mutating.DELETE("/posts/:id", boardController.DeletePost)
	mutating.POST("/posts/:id/verify-password", boardController.VerifyPassword)
	mutating.POST("/posts/:id/attachments", attachmentController.Upload)
	mutating.DELETE("/posts/:id/attachments", attachmentController.Delete)
	mutating.POST("/posts/:id/comments", commentController.Create)
	mutating.PUT("/comments/:commentId", commentController.Update)
	mutating.DELETE("/comments/:commentId", commentController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
