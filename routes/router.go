package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/animeinsights/blog/config"
	"github.com/animeinsights/blog/controllers"
	"github.com/animeinsights/blog/middleware"
	"github.com/animeinsights/blog/repository"
	"github.com/animeinsights/blog/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(users repository.UserRepository, posts repository.PostRepository) *gin.Engine {
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
	if utils.Logger != nil {
		r.Use(utils.GinLogger(utils.Logger))
		r.Use(utils.GinRecovery(utils.Logger))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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

	// Frontend assets and uploaded images.
	r.Static("/uploads", cfg.UploadDir)
	r.Static("/assets", "./public/assets")
	r.GET("/", func(c *gin.Context) {
		c.File("./public/index.html")
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(users, cfg.JWTSecret)
	postController := controllers.NewPostController(posts, users, cfg.UploadDir)
	contactController := controllers.NewContactController()

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", middleware.LoginRateLimit(), authController.Login)

	// Public post endpoints bypass the access gate entirely.
	api.GET("/posts/public", postController.ListPublic)
	api.GET("/posts/public/slug/:slug", postController.GetPublicBySlug)
	api.GET("/posts/public/:id", postController.GetPublic)

	api.POST("/contact", contactController.Submit)

	protected := api.Group("/posts")
	protected.Use(middleware.AuthRequired(cfg.JWTSecret))
	protected.GET("", postController.List)
	protected.GET("/:id", postController.Get)
	protected.POST("", postController.Create)
	protected.PUT("/:id", postController.Update)
	protected.DELETE("/:id", postController.Delete)

	// SPA fallback for non-API paths.
	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/uploads/") {
			utils.Error(ctx, http.StatusNotFound, "file not found")
			return
		}
		ctx.Status(http.StatusOK)
		ctx.File("./public/index.html")
	})

	return r
}
