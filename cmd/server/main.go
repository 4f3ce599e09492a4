package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "yamdb/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"yamdb/internal/auth"
	"yamdb/internal/cache"
	"yamdb/internal/config"
	"yamdb/internal/db"
	"yamdb/internal/handler"
	"yamdb/internal/logger"
	"yamdb/internal/mail"
	"yamdb/internal/repository"
	"yamdb/internal/router"
	"yamdb/internal/service"
)

// @title YaMDb API
// @version 1.0
// @description Reviews of books, films and music with ratings, comments and role-based moderation.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(!cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}

	if cfg.ResetDB {
		zl.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, zl)
	defer cacheClient.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		zl.Warn("redis unavailable, running without cache", zap.Error(err))
	}
	cancel()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	genreRepo := repository.NewGenreRepository(gormDB)
	titleRepo := repository.NewTitleRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAccessTTL)
	mailer := mail.New(cfg, zl)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, mailer, service.CodeSettings{
		Length: cfg.ConfirmationCodeLength,
		TTL:    cfg.ConfirmationCodeTTL,
	}, zl)
	userService := service.NewUserService(userRepo, cacheClient, zl)
	categoryService := service.NewCategoryService(categoryRepo, zl)
	genreService := service.NewGenreService(genreRepo, zl)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, zl)
	reviewService := service.NewReviewService(titleRepo, reviewRepo, zl)
	commentService := service.NewCommentService(reviewService, commentRepo, zl)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	router.Register(e, zl, jwtService, userService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService, cfg.PageSize),
		Category: handler.NewCategoryHandler(categoryService, cfg.PageSize),
		Genre:    handler.NewGenreHandler(genreService, cfg.PageSize),
		Title:    handler.NewTitleHandler(titleService, cfg.PageSize),
		Review:   handler.NewReviewHandler(reviewService, cfg.PageSize),
		Comment:  handler.NewCommentHandler(commentService, cfg.PageSize),
	})

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	zl.Info("swagger documentation available", zap.String("url", "http://"+swaggerHost+"/swagger/index.html"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		zl.Info("server starting", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
