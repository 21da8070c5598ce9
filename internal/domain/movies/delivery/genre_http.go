package delivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raminsh/filmlog/internal/domain/movies"
	"github.com/raminsh/filmlog/pkg/response"
)

type GenreUsecase interface {
	CreateGenre(ctx context.Context, req movies.GenreRequest) (*movies.Genre, error)
	BulkCreateGenres(ctx context.Context, req movies.BulkGenreRequest) (*movies.BulkCreateResponse, error)
	GetGenre(ctx context.Context, genreUUID string) (*movies.Genre, error)
	SearchGenres(ctx context.Context, filter movies.GenreFilter) (*movies.GenreListResponse, error)
	UpdateGenre(ctx context.Context, genreUUID string, req movies.UpdateGenreRequest) error
	DeleteGenre(ctx context.Context, genreUUID string) error
}

type GenreHandler struct {
	usecase GenreUsecase
}

func NewGenreHandler(usecase GenreUsecase) *GenreHandler {
	return &GenreHandler{usecase: usecase}
}

// CreateGenre handles POST /api/v1/admin/genres
func (h *GenreHandler) CreateGenre(c echo.Context) error {
	var req movies.GenreRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.CreateGenre(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "genre_created", result)
}

// BulkCreateGenres handles POST /api/v1/admin/genres/bulk
func (h *GenreHandler) BulkCreateGenres(c echo.Context) error {
	var req movies.BulkGenreRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.BulkCreateGenres(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "genres_created", result)
}

// GetGenre handles GET /api/v1/genres/:uuid
func (h *GenreHandler) GetGenre(c echo.Context) error {
	result, err := h.usecase.GetGenre(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// SearchGenres handles GET /api/v1/genres
func (h *GenreHandler) SearchGenres(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	filter := movies.GenreFilter{
		Name:     c.QueryParam("name"),
		Page:     page,
		PageSize: pageSize,
		SortDesc: c.QueryParam("sort_order") != "asc",
	}

	result, err := h.usecase.SearchGenres(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// UpdateGenre handles PUT /api/v1/admin/genres/:uuid
func (h *GenreHandler) UpdateGenre(c echo.Context) error {
	var req movies.UpdateGenreRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.usecase.UpdateGenre(c.Request().Context(), c.Param("uuid"), req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteGenre handles DELETE /api/v1/admin/genres/:uuid
func (h *GenreHandler) DeleteGenre(c echo.Context) error {
	if err := h.usecase.DeleteGenre(c.Request().Context(), c.Param("uuid")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
