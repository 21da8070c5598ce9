package delivery

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raminsh/filmlog/internal/domain/movies"
	"github.com/raminsh/filmlog/pkg/middleware"
	"github.com/raminsh/filmlog/pkg/response"
)

type MovieUsecase interface {
	CreateMovie(ctx context.Context, req movies.MovieRequest) (*movies.Movie, error)
	BulkCreateMovies(ctx context.Context, req movies.BulkMovieRequest) (*movies.BulkCreateResponse, error)
	GetMovie(ctx context.Context, movieUUID string) (*movies.Movie, error)
	SearchMovies(ctx context.Context, filter movies.SearchFilter) (*movies.MovieListResponse, error)
	UpdateMovie(ctx context.Context, movieUUID string, req movies.UpdateMovieRequest) error
	DeleteMovie(ctx context.Context, movieUUID string) error
	UploadPoster(ctx context.Context, movieUUID string, file multipart.File, fileHeader *multipart.FileHeader) (*movies.PosterResponse, error)
}

type MovieHandler struct {
	usecase MovieUsecase
}

func NewMovieHandler(usecase MovieUsecase) *MovieHandler {
	return &MovieHandler{usecase: usecase}
}

// CreateMovie handles POST /api/v1/admin/movies
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var req movies.MovieRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.CreateMovie(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "movie_created", result)
}

// BulkCreateMovies handles POST /api/v1/admin/movies/bulk
func (h *MovieHandler) BulkCreateMovies(c echo.Context) error {
	var req movies.BulkMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.BulkCreateMovies(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "movies_created", result)
}

// GetMovie handles GET /api/v1/movies/:uuid
func (h *MovieHandler) GetMovie(c echo.Context) error {
	result, err := h.usecase.GetMovie(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// SearchMovies handles GET /api/v1/movies
func (h *MovieHandler) SearchMovies(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	filter := movies.SearchFilter{
		Title:     c.QueryParam("title"),
		GenreUUID: c.QueryParam("genre_uuid"),
		Page:      page,
		PageSize:  pageSize,
		SortDesc:  c.QueryParam("sort_order") != "asc",
	}

	result, err := h.usecase.SearchMovies(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// UpdateMovie handles PUT /api/v1/admin/movies/:uuid
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	var req movies.UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.usecase.UpdateMovie(c.Request().Context(), c.Param("uuid"), req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteMovie handles DELETE /api/v1/admin/movies/:uuid
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	if err := h.usecase.DeleteMovie(c.Request().Context(), c.Param("uuid")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadPoster handles POST /api/v1/admin/movies/:uuid/poster
func (h *MovieHandler) UploadPoster(c echo.Context) error {
	logger := middleware.GetLogger(c)

	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "missing_poster_file", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "unreadable_poster_file", err.Error())
	}
	defer file.Close()

	result, err := h.usecase.UploadPoster(c.Request().Context(), c.Param("uuid"), file, fileHeader)
	if err != nil {
		logger.Warn().Err(err).Msg("Poster upload failed")
		return err
	}

	return response.Success(c, http.StatusOK, "poster_uploaded", result)
}
