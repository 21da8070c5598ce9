package delivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raminsh/filmlog/internal/domain/watchlist"
	"github.com/raminsh/filmlog/pkg/middleware"
	"github.com/raminsh/filmlog/pkg/response"
)

type WatchUsecase interface {
	WatchMovie(ctx context.Context, userUUID string, req watchlist.WatchMovieRequest) (*watchlist.WatchRecord, error)
	UpdateStatus(ctx context.Context, watchUUID, userUUID string, req watchlist.UpdateStatusRequest) error
	DeleteWatch(ctx context.Context, userUUID, movieUUID string) error
	MyHistory(ctx context.Context, userUUID string, filter watchlist.HistoryFilter) (*watchlist.HistoryResponse, error)
	UserHistory(ctx context.Context, userUUID string, filter watchlist.HistoryFilter) (*watchlist.HistoryResponse, error)
	MovieWatchers(ctx context.Context, movieUUID string, filter watchlist.HistoryFilter) (*watchlist.WatchersResponse, error)
}

type Handler struct {
	usecase WatchUsecase
}

func NewHandler(usecase WatchUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// WatchMovie handles POST /api/v1/watchlist
func (h *Handler) WatchMovie(c echo.Context) error {
	subject, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	var req watchlist.WatchMovieRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.WatchMovie(c.Request().Context(), subject, req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "watch_created", result)
}

// UpdateStatus handles PATCH /api/v1/watchlist/:uuid
func (h *Handler) UpdateStatus(c echo.Context) error {
	subject, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	var req watchlist.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.usecase.UpdateStatus(c.Request().Context(), c.Param("uuid"), subject, req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteWatch handles DELETE /api/v1/watchlist/movie/:movie_uuid
func (h *Handler) DeleteWatch(c echo.Context) error {
	subject, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	if err := h.usecase.DeleteWatch(c.Request().Context(), subject, c.Param("movie_uuid")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// MyHistory handles GET /api/v1/watchlist/my-history
func (h *Handler) MyHistory(c echo.Context) error {
	subject, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	result, err := h.usecase.MyHistory(c.Request().Context(), subject, historyFilter(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// UserHistory handles GET /api/v1/admin/watchlist/user/:uuid
func (h *Handler) UserHistory(c echo.Context) error {
	result, err := h.usecase.UserHistory(c.Request().Context(), c.Param("uuid"), historyFilter(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// MovieWatchers handles GET /api/v1/admin/watchlist/movie/:uuid/watchers
func (h *Handler) MovieWatchers(c echo.Context) error {
	result, err := h.usecase.MovieWatchers(c.Request().Context(), c.Param("uuid"), historyFilter(c))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

func historyFilter(c echo.Context) watchlist.HistoryFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	return watchlist.HistoryFilter{
		Page:         page,
		PageSize:     pageSize,
		SortDesc:     c.QueryParam("sort_order") != "asc",
		StatusFilter: c.QueryParam("status"),
	}
}
