package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/raminsh/filmlog/internal/domain/users"
	"github.com/raminsh/filmlog/pkg/apperr"
	"github.com/raminsh/filmlog/pkg/jwt"
	"github.com/raminsh/filmlog/pkg/password"
)

// Usecase orchestrates registration, login, token refresh and the admin
// user-management operations. It is the only component that touches the
// password hasher or issues tokens.
type Usecase struct {
	repo   users.Repository
	hasher *password.Hasher
	tokens *jwt.Service
}

func NewUsecase(repo users.Repository, hasher *password.Hasher, tokens *jwt.Service) *Usecase {
	return &Usecase{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// parseBirthDate converts the wire date into a stored value. Empty means
// unset.
func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(users.BirthDateLayout, raw)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid_birth_date")
	}
	return &parsed, nil
}

// Register creates an active, non-admin account. A colliding email or
// username surfaces from the store as already_exists.
func (u *Usecase) Register(ctx context.Context, req users.RegisterRequest) (*users.Summary, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &users.User{
		UUID:           uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      birthDate,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperUser:    false,
	}

	err = u.repo.Atomic(ctx, func(repo users.Repository) error {
		return repo.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	summary := users.SummaryOf(user)
	return &summary, nil
}

// Login verifies credentials and issues an access/refresh token pair. A
// missing user, a wrong password and an inactive account all produce the
// same unauthenticated error so callers cannot tell which check failed.
func (u *Usecase) Login(ctx context.Context, req users.LoginRequest) (*users.TokenPairResponse, error) {
	user, err := u.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if user == nil || !u.hasher.Verify(req.Password, user.HashedPassword) || !user.IsActive {
		return nil, apperr.Unauthenticated("invalid_credentials")
	}

	accessToken, err := u.tokens.IssueAccess(user.UUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refreshToken, err := u.tokens.IssueRefresh(user.UUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &users.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is not rotated or invalidated.
func (u *Usecase) Refresh(ctx context.Context, req users.RefreshRequest) (*users.RefreshResponse, error) {
	subject, err := u.tokens.Validate(req.RefreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, apperr.AsUnauthenticated(err)
	}

	user, err := u.repo.FindByUUID(ctx, subject)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil || !user.IsActive {
		return nil, apperr.Unauthenticated("invalid_credentials")
	}

	accessToken, err := u.tokens.IssueAccess(user.UUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &users.RefreshResponse{AccessToken: accessToken}, nil
}

// GetMe fetches the full profile for an already-authenticated subject.
func (u *Usecase) GetMe(ctx context.Context, userUUID string) (*users.Profile, error) {
	user, err := u.repo.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("user_not_found")
	}

	profile := users.ProfileOf(user)
	return &profile, nil
}

// IsAdmin resolves the caller's admin flag from the store. Satisfies the
// middleware.AdminChecker interface.
func (u *Usecase) IsAdmin(ctx context.Context, userUUID string) (bool, error) {
	profile, err := u.GetMe(ctx, userUUID)
	if err != nil {
		return false, err
	}
	return profile.IsSuperUser, nil
}

// CreateUser is the admin-only creation path; unlike Register it may set
// the active and superuser flags explicitly.
func (u *Usecase) CreateUser(ctx context.Context, req users.CreateUserRequest) (*users.Summary, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &users.User{
		UUID:           uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      birthDate,
		HashedPassword: hashed,
		IsActive:       isActive,
		IsSuperUser:    req.IsSuperUser,
	}

	err = u.repo.Atomic(ctx, func(repo users.Repository) error {
		return repo.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	summary := users.SummaryOf(user)
	return &summary, nil
}

// GetUser returns another user's profile (admin only at the HTTP layer).
func (u *Usecase) GetUser(ctx context.Context, userUUID string) (*users.Profile, error) {
	return u.GetMe(ctx, userUUID)
}

// SearchUsers returns a paginated, filtered admin listing.
func (u *Usecase) SearchUsers(ctx context.Context, filter users.SearchFilter) (*users.SearchResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}

	found, total, err := u.repo.SearchUsers(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	profiles := make([]users.Profile, 0, len(found))
	for i := range found {
		profiles = append(profiles, users.ProfileOf(&found[i]))
	}

	return &users.SearchResponse{Users: profiles, Total: total}, nil
}

// UpdateUser applies a partial update. This is the only path that mutates
// the superuser flag or deactivates an account; users are never hard-deleted.
func (u *Usecase) UpdateUser(ctx context.Context, userUUID string, req users.UpdateUserRequest) error {
	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			return err
		}
		updates["birth_date"] = birthDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsSuperUser != nil {
		updates["is_super_user"] = *req.IsSuperUser
	}

	if len(updates) == 0 {
		return apperr.InvalidArgument("no_fields_to_update")
	}

	return u.repo.Atomic(ctx, func(repo users.Repository) error {
		user, err := repo.FindByUUID(ctx, userUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if user == nil {
			return apperr.NotFound("user_not_found")
		}
		return repo.UpdateUser(ctx, userUUID, updates)
	})
}

// EnsureBootstrapAdmin creates the first superuser if no account with the
// configured email exists yet. Called once at API startup.
func (u *Usecase) EnsureBootstrapAdmin(ctx context.Context, req users.RegisterRequest) error {
	existing, err := u.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return apperr.Internal(err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := u.hasher.Hash(req.Password)
	if err != nil {
		return apperr.Internal(err)
	}

	admin := &users.User{
		UUID:           uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: hashed,
		IsActive:       true,
		IsSuperUser:    true,
	}

	return u.repo.Atomic(ctx, func(repo users.Repository) error {
		return repo.CreateUser(ctx, admin)
	})
}
