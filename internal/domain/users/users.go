package users

import (
	"context"
	"time"
)

// BirthDateLayout is the wire format for birth dates, date only.
const BirthDateLayout = "2006-01-02"

// User is the stored account record. The hashed password never leaves this
// package through a response DTO.
type User struct {
	UUID           string     `json:"user_uuid" gorm:"column:user_uuid;primaryKey;type:char(36)"`
	Email          string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Username       string     `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName      string     `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName       string     `json:"last_name" gorm:"type:varchar(255);not null"`
	BirthDate      *time.Time `json:"birth_date" gorm:"type:date"`
	HashedPassword string     `json:"-" gorm:"type:varchar(320);not null"`
	IsActive       bool       `json:"is_active" gorm:"not null;default:true;index"`
	IsSuperUser    bool       `json:"is_super_user" gorm:"not null;default:false;index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// SearchFilter narrows and pages an admin user search. The birth-date
// bounds are inclusive; nil means unbounded.
type SearchFilter struct {
	FirstName     string
	LastName      string
	BirthDateFrom *time.Time
	BirthDateTo   *time.Time
	Page          int
	PageSize      int
	SortDesc      bool
}

// Repository is the credential-store boundary the usecases talk to.
// Implementations must translate unique-key violations into
// apperr.AlreadyExists and report absence as (nil, nil).
type Repository interface {
	Atomic(ctx context.Context, fn func(repo Repository) error) error
	CreateUser(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUUID(ctx context.Context, userUUID string) (*User, error)
	UpdateUser(ctx context.Context, userUUID string, updates map[string]interface{}) error
	SearchUsers(ctx context.Context, filter SearchFilter) ([]User, int64, error)
}

// Request DTOs

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	FirstName string `json:"first_name" validate:"required,min=3,max=50"`
	LastName  string `json:"last_name" validate:"required,min=3,max=50"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateUserRequest is the admin variant of registration: flags may be set
// explicitly.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=50"`
	FirstName   string `json:"first_name" validate:"required,min=3,max=50"`
	LastName    string `json:"last_name" validate:"required,min=3,max=50"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	IsActive    *bool  `json:"is_active"`
	IsSuperUser bool   `json:"is_super_user"`
}

// UpdateUserRequest carries a partial update; nil fields are untouched.
// This is also the privilege-escalation and soft-deactivation path.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=3,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,min=3,max=50"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool   `json:"is_active"`
	IsSuperUser *bool   `json:"is_super_user"`
}

// Response DTOs

// Summary is the public shape returned by registration and admin creation.
type Summary struct {
	UUID      string    `json:"user_uuid"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the full account view for an authenticated subject.
type Profile struct {
	UUID        string     `json:"user_uuid"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	BirthDate   *time.Time `json:"birth_date"`
	IsActive    bool       `json:"is_active"`
	IsSuperUser bool       `json:"is_super_user"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type SearchResponse struct {
	Users []Profile `json:"users"`
	Total int64     `json:"total"`
}

func SummaryOf(u *User) Summary {
	return Summary{
		UUID:      u.UUID,
		Email:     u.Email,
		Username:  u.Username,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ProfileOf(u *User) Profile {
	return Profile{
		UUID:        u.UUID,
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		BirthDate:   u.BirthDate,
		IsActive:    u.IsActive,
		IsSuperUser: u.IsSuperUser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
