package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"ratehub/database"
	"ratehub/internal/cache"
	"ratehub/internal/config"
	"ratehub/internal/http-api/handler"
	"ratehub/internal/http-api/middleware"
	"ratehub/internal/http-api/repository"
	"ratehub/internal/http-api/service"
	"ratehub/internal/mailer"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional; a nil cache serves everything from the DB
	var listCache *cache.ListCache
	if cfg.RedisAddr != "" {
		listCache, err = cache.NewListCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		logger.Info("Connected to redis", "addr", cfg.RedisAddr)
	}

	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		logger.Warn("SMTP_HOST not set, confirmation codes will be logged")
		sender = mailer.NewLogSender(logger)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, sender, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, listCache)
	genreService := service.NewGenreService(genreRepo, listCache)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, nil)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	auth := api.Group("/auth", middleware.RateLimit(cfg.AuthRatePerMinute))
	handler.NewAuthHandler(authService).RegisterRoutes(auth)

	handler.NewCategoryHandler(categoryService, authService).RegisterRoutes(api.Group("/categories"))
	handler.NewGenreHandler(genreService, authService).RegisterRoutes(api.Group("/genres"))

	titles := api.Group("/titles")
	handler.NewTitleHandler(titleService, authService).RegisterRoutes(titles)
	handler.NewReviewHandler(reviewService, authService).RegisterRoutes(titles)
	handler.NewCommentHandler(commentService, authService).RegisterRoutes(titles)

	handler.NewUserHandler(userService, authService).RegisterRoutes(api.Group("/users"))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("API server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
