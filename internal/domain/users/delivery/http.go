package delivery

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/raminsh/filmlog/internal/domain/users"
	"github.com/raminsh/filmlog/pkg/apperr"
	"github.com/raminsh/filmlog/pkg/middleware"
	"github.com/raminsh/filmlog/pkg/response"
)

type UserUsecase interface {
	Register(ctx context.Context, req users.RegisterRequest) (*users.Summary, error)
	Login(ctx context.Context, req users.LoginRequest) (*users.TokenPairResponse, error)
	Refresh(ctx context.Context, req users.RefreshRequest) (*users.RefreshResponse, error)
	GetMe(ctx context.Context, userUUID string) (*users.Profile, error)
	CreateUser(ctx context.Context, req users.CreateUserRequest) (*users.Summary, error)
	GetUser(ctx context.Context, userUUID string) (*users.Profile, error)
	SearchUsers(ctx context.Context, filter users.SearchFilter) (*users.SearchResponse, error)
	UpdateUser(ctx context.Context, userUUID string, req users.UpdateUserRequest) error
}

type Handler struct {
	usecase UserUsecase
}

func NewHandler(usecase UserUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c echo.Context) error {
	logger := middleware.GetLogger(c)

	var req users.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.Register(c.Request().Context(), req)
	if err != nil {
		logger.Warn().Err(err).Msg("Registration failed")
		return err
	}

	logger.Info().Str("user_uuid", result.UUID).Msg("User registered")
	return response.Success(c, http.StatusCreated, "user_registered", result)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c echo.Context) error {
	logger := middleware.GetLogger(c)

	var req users.LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.Login(c.Request().Context(), req)
	if err != nil {
		logger.Warn().Msg("Login failed")
		return err
	}

	logger.Info().Msg("User logged in")
	return response.Success(c, http.StatusOK, "login_successful", result)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *Handler) Refresh(c echo.Context) error {
	var req users.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.Refresh(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "token_refreshed", result)
}

// GetMe handles GET /api/v1/auth/me
func (h *Handler) GetMe(c echo.Context) error {
	subject, err := middleware.SubjectFromContext(c)
	if err != nil {
		return err
	}

	result, err := h.usecase.GetMe(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// CreateUser handles POST /api/v1/admin/users
func (h *Handler) CreateUser(c echo.Context) error {
	var req users.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.usecase.CreateUser(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, "user_created", result)
}

// GetUser handles GET /api/v1/admin/users/:uuid
func (h *Handler) GetUser(c echo.Context) error {
	result, err := h.usecase.GetUser(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

// SearchUsers handles GET /api/v1/admin/users
func (h *Handler) SearchUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	birthDateFrom, err := birthDateParam(c, "birth_date_from")
	if err != nil {
		return err
	}
	birthDateTo, err := birthDateParam(c, "birth_date_to")
	if err != nil {
		return err
	}

	filter := users.SearchFilter{
		FirstName:     c.QueryParam("first_name"),
		LastName:      c.QueryParam("last_name"),
		BirthDateFrom: birthDateFrom,
		BirthDateTo:   birthDateTo,
		Page:          page,
		PageSize:      pageSize,
		SortDesc:      c.QueryParam("sort_order") != "asc",
	}

	result, err := h.usecase.SearchUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, "success", result)
}

func birthDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(users.BirthDateLayout, raw)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid_" + name)
	}
	return &parsed, nil
}

// UpdateUser handles PUT /api/v1/admin/users/:uuid
func (h *Handler) UpdateUser(c echo.Context) error {
	var req users.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid_request_body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.usecase.UpdateUser(c.Request().Context(), c.Param("uuid"), req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
