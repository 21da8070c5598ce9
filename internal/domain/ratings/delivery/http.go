package delivery

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/raminsh/filmlog/internal/domain/ratings"
	"github.com/raminsh/filmlog/pkg/apperr"
	"github.com/raminsh/filmlog/pkg/middleware"
	"github.com/raminsh/filmlog/pkg/response"
)

type RatingUsecase interface {
	RateMovie(ctx context.Context, userUUID string, req ratings.RateMovieRequest) (*ratings.Rating, error)
	UpdateRating(ctx context.Context, userUUID, rateUUID string, req ratings.UpdateRatingRequest) (*ratings.Rating, error)
	MyRatings(ctx context.Context, userUUID string, filter ratings.ListFilter) (*ratings.RatingsResponse, error)
	UserRatings(ctx context.Context, userUUID string, filter ratings.ListFilter) (*ratings.RatingsResponse, error)
	MovieRaters(ctx context.Context, movieUUID string, filter ratings.ListFilter) (*ratings.RatersResponse, error)
}

type RatingHandler struct {
	usecase RatingUsecase
}

func NewRatingHandler(usecase RatingUsecase) *RatingHandler {
	return &RatingHandler{usecase: usecase}
}

// RateMovie handles POST /api/v1/ratings.
func (h *RatingHandler) RateMovie(c echo.Context) error {
	var req ratings.RateMovieRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.KindInvalidArgument, "invalid_request_body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userUUID, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	rating, err := h.usecase.RateMovie(c.Request().Context(), userUUID, req)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, "movie_rated", rating)
}

// UpdateRating handles PATCH /api/v1/ratings/:uuid.
func (h *RatingHandler) UpdateRating(c echo.Context) error {
	var req ratings.UpdateRatingRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.KindInvalidArgument, "invalid_request_body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userUUID, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	rating, err := h.usecase.UpdateRating(c.Request().Context(), userUUID, c.Param("uuid"), req)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "rating_updated", rating)
}

// MyRatings handles GET /api/v1/ratings/my-ratings.
func (h *RatingHandler) MyRatings(c echo.Context) error {
	userUUID, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	result, err := h.usecase.MyRatings(c.Request().Context(), userUUID, listFilter(c))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "ratings_retrieved", result)
}

// UserRatings handles GET /api/v1/admin/ratings/user/:uuid.
func (h *RatingHandler) UserRatings(c echo.Context) error {
	result, err := h.usecase.UserRatings(c.Request().Context(), c.Param("uuid"), listFilter(c))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "ratings_retrieved", result)
}

// MovieRaters handles GET /api/v1/admin/ratings/movie/:uuid/raters.
func (h *RatingHandler) MovieRaters(c echo.Context) error {
	result, err := h.usecase.MovieRaters(c.Request().Context(), c.Param("uuid"), listFilter(c))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, "raters_retrieved", result)
}

func listFilter(c echo.Context) ratings.ListFilter {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	return ratings.ListFilter{
		Page:     page,
		PageSize: pageSize,
		SortDesc: c.QueryParam("sort_order") != "asc",
	}
}
