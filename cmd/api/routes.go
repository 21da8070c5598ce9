package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	movieDelivery "github.com/raminsh/filmlog/internal/domain/movies/delivery"
	ratingDelivery "github.com/raminsh/filmlog/internal/domain/ratings/delivery"
	userDelivery "github.com/raminsh/filmlog/internal/domain/users/delivery"
	watchDelivery "github.com/raminsh/filmlog/internal/domain/watchlist/delivery"
	"github.com/raminsh/filmlog/pkg/jwt"
	appMiddleware "github.com/raminsh/filmlog/pkg/middleware"
	"github.com/raminsh/filmlog/pkg/response"
)

func setupRoutes(
	e *echo.Echo,
	userHandler *userDelivery.Handler,
	movieHandler *movieDelivery.MovieHandler,
	genreHandler *movieDelivery.GenreHandler,
	watchHandler *watchDelivery.Handler,
	ratingHandler *ratingDelivery.RatingHandler,
	jwtService *jwt.Service,
	adminChecker appMiddleware.AdminChecker,
) {
	// Middleware
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(appMiddleware.RequestID())
	e.Use(appMiddleware.Metrics())

	// Custom error handler
	e.HTTPErrorHandler = response.CustomErrorHandler

	authenticated := appMiddleware.Authenticate(jwtService)
	adminOnly := appMiddleware.AdminOnly(adminChecker)

	// Health check and metrics
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status": "ok",
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := e.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", userHandler.Register)
		auth.POST("/login", userHandler.Login)
		auth.POST("/refresh", userHandler.Refresh)

		// Protected routes (require JWT)
		auth.GET("/me", userHandler.GetMe, authenticated)
	}

	// Genre routes (authenticated reads, writes under /admin)
	genres := v1.Group("/genres", authenticated)
	{
		genres.GET("", genreHandler.SearchGenres)
		genres.GET("/:uuid", genreHandler.GetGenre)
	}

	// Movie routes (authenticated reads, writes under /admin)
	moviesGroup := v1.Group("/movies", authenticated)
	{
		moviesGroup.GET("", movieHandler.SearchMovies) // GET /api/v1/movies?page=1&page_size=10&title=...
		moviesGroup.GET("/:uuid", movieHandler.GetMovie)
	}

	// Watchlist routes (Protected)
	watchlist := v1.Group("/watchlist", authenticated)
	{
		watchlist.POST("", watchHandler.WatchMovie)
		watchlist.PATCH("/:uuid", watchHandler.UpdateStatus)
		watchlist.DELETE("/movie/:movie_uuid", watchHandler.DeleteWatch)
		watchlist.GET("/my-history", watchHandler.MyHistory)
	}

	// Rating routes (Protected)
	ratingsGroup := v1.Group("/ratings", authenticated)
	{
		ratingsGroup.POST("", ratingHandler.RateMovie)
		ratingsGroup.PATCH("/:uuid", ratingHandler.UpdateRating)
		ratingsGroup.GET("/my-ratings", ratingHandler.MyRatings)
	}

	// Admin routes (Protected with JWT + admin check)
	admin := v1.Group("/admin")
	admin.Use(authenticated, adminOnly)
	{
		// Admin user management
		adminUsers := admin.Group("/users")
		{
			adminUsers.POST("", userHandler.CreateUser)
			adminUsers.GET("", userHandler.SearchUsers)
			adminUsers.GET("/:uuid", userHandler.GetUser)
			adminUsers.PUT("/:uuid", userHandler.UpdateUser)
		}

		// Admin genre management
		adminGenres := admin.Group("/genres")
		{
			adminGenres.POST("", genreHandler.CreateGenre)
			adminGenres.POST("/bulk", genreHandler.BulkCreateGenres)
			adminGenres.PUT("/:uuid", genreHandler.UpdateGenre)
			adminGenres.DELETE("/:uuid", genreHandler.DeleteGenre)
		}

		// Admin movie management
		adminMovies := admin.Group("/movies")
		{
			adminMovies.POST("", movieHandler.CreateMovie)
			adminMovies.POST("/bulk", movieHandler.BulkCreateMovies)
			adminMovies.PUT("/:uuid", movieHandler.UpdateMovie)
			adminMovies.DELETE("/:uuid", movieHandler.DeleteMovie)
			adminMovies.POST("/:uuid/poster", movieHandler.UploadPoster)
		}

		// Admin watch and rating insight
		adminWatchlist := admin.Group("/watchlist")
		{
			adminWatchlist.GET("/user/:uuid", watchHandler.UserHistory)
			adminWatchlist.GET("/movie/:uuid/watchers", watchHandler.MovieWatchers)
		}

		adminRatings := admin.Group("/ratings")
		{
			adminRatings.GET("/user/:uuid", ratingHandler.UserRatings)
			adminRatings.GET("/movie/:uuid/raters", ratingHandler.MovieRaters)
		}
	}
}
