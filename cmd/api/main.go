package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	movieDelivery "github.com/raminsh/filmlog/internal/domain/movies/delivery"
	movieRepository "github.com/raminsh/filmlog/internal/domain/movies/repository"
	movieUsecase "github.com/raminsh/filmlog/internal/domain/movies/usecase"
	ratingDelivery "github.com/raminsh/filmlog/internal/domain/ratings/delivery"
	ratingRepository "github.com/raminsh/filmlog/internal/domain/ratings/repository"
	ratingUsecase "github.com/raminsh/filmlog/internal/domain/ratings/usecase"
	"github.com/raminsh/filmlog/internal/domain/users"
	userDelivery "github.com/raminsh/filmlog/internal/domain/users/delivery"
	userRepository "github.com/raminsh/filmlog/internal/domain/users/repository"
	userUsecase "github.com/raminsh/filmlog/internal/domain/users/usecase"
	watchDelivery "github.com/raminsh/filmlog/internal/domain/watchlist/delivery"
	watchRepository "github.com/raminsh/filmlog/internal/domain/watchlist/repository"
	watchUsecase "github.com/raminsh/filmlog/internal/domain/watchlist/usecase"
	"github.com/raminsh/filmlog/internal/platform/config"
	"github.com/raminsh/filmlog/internal/platform/database"
	"github.com/raminsh/filmlog/internal/platform/queue"
	"github.com/raminsh/filmlog/internal/platform/storage"
	"github.com/raminsh/filmlog/pkg/jwt"
	"github.com/raminsh/filmlog/pkg/password"
	customValidator "github.com/raminsh/filmlog/pkg/validator"
)

func main() {
	// Setup zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	zlog.Info().Msg("Starting FilmLog API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.InitMySQL(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()

	// Initialize MinIO
	minioClient, err := storage.InitMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}
	zlog.Info().Msg("MinIO initialized successfully")

	// Initialize Redis client
	redisClient, err := queue.InitRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	zlog.Info().Msg("Redis initialized successfully")

	// Initialize services
	posterStore := storage.NewPosterStore(minioClient, cfg.MinIO.BucketPosters, cfg.MinIO.UseSSL)
	queueService := queue.NewRedisQueue(redisClient)
	jwtService := jwt.NewService(cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	// Initialize repositories
	userRepo := userRepository.NewUserRepository(db)
	movieRepo := movieRepository.NewMovieRepository(db)
	watchRepo := watchRepository.NewWatchRepository(db)
	ratingRepo := ratingRepository.NewRatingRepository(db)

	// Initialize use cases
	userUC := userUsecase.NewUsecase(userRepo, hasher, jwtService)
	movieUC := movieUsecase.NewMovieUsecase(movieRepo, posterStore)
	watchUC := watchUsecase.NewWatchUsecase(watchRepo)
	ratingUC := ratingUsecase.NewRatingUsecase(ratingRepo, queueService)

	// Seed the first superuser so admin endpoints are reachable on a
	// fresh database.
	if cfg.Bootstrap.AdminEmail != "" {
		err := userUC.EnsureBootstrapAdmin(ctx, users.RegisterRequest{
			Email:     cfg.Bootstrap.AdminEmail,
			Username:  cfg.Bootstrap.AdminUsername,
			FirstName: cfg.Bootstrap.AdminFirstName,
			LastName:  cfg.Bootstrap.AdminLastName,
			Password:  cfg.Bootstrap.AdminPassword,
		})
		if err != nil {
			log.Fatalf("Failed to bootstrap admin user: %v", err)
		}
	}

	// Initialize handlers
	userHandler := userDelivery.NewHandler(userUC)
	movieHandler := movieDelivery.NewMovieHandler(movieUC)
	genreHandler := movieDelivery.NewGenreHandler(movieUC)
	watchHandler := watchDelivery.NewHandler(watchUC)
	ratingHandler := ratingDelivery.NewRatingHandler(ratingUC)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = false
	e.Validator = customValidator.New()

	// Setup routes
	setupRoutes(e, userHandler, movieHandler, genreHandler, watchHandler, ratingHandler, jwtService, userUC)

	// Start server in goroutine
	go func() {
		port := cfg.Server.Port
		if port == "" {
			port = "8080"
		}

		zlog.Info().Str("port", port).Msg("Starting HTTP server")
		if err := e.Start(":" + port); err != nil {
			zlog.Info().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	zlog.Info().Msg("Server exited successfully")
}
