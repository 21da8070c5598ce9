package movies

import (
	"context"
	"time"
)

// Genre is a movie category. Every movie references exactly one genre.
type Genre struct {
	UUID        string    `json:"genre_uuid" gorm:"column:genre_uuid;primaryKey;type:char(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Genre) TableName() string {
	return "genres"
}

// Movie is a catalogue entry. AvgScore and RatingsCount are maintained
// asynchronously by the rating-aggregate worker, never written by the API.
type Movie struct {
	UUID         string    `json:"movie_uuid" gorm:"column:movie_uuid;primaryKey;type:char(36)"`
	Title        string    `json:"title" gorm:"type:varchar(255);not null;index"`
	Description  string    `json:"description" gorm:"type:text"`
	GenreUUID    string    `json:"genre_uuid" gorm:"column:genre_uuid;type:char(36);not null;index"`
	PosterURL    string    `json:"poster_url" gorm:"type:varchar(512)"`
	AvgScore     float64   `json:"avg_score" gorm:"type:decimal(3,2);not null;default:0"`
	RatingsCount int64     `json:"ratings_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// SearchFilter pages and narrows the movie catalogue listing.
type SearchFilter struct {
	Title     string
	GenreUUID string
	Page      int
	PageSize  int
	SortDesc  bool
}

// GenreFilter pages the genre listing.
type GenreFilter struct {
	Name     string
	Page     int
	PageSize int
	SortDesc bool
}

// Repository is the catalogue-store boundary. Unique-key violations come
// back as apperr.AlreadyExists, absence as (nil, nil).
type Repository interface {
	Atomic(ctx context.Context, fn func(repo Repository) error) error

	CreateGenre(ctx context.Context, genre *Genre) error
	CreateGenres(ctx context.Context, genres []*Genre) error
	FindGenreByUUID(ctx context.Context, genreUUID string) (*Genre, error)
	SearchGenres(ctx context.Context, filter GenreFilter) ([]Genre, int64, error)
	UpdateGenre(ctx context.Context, genreUUID string, updates map[string]interface{}) error
	DeleteGenre(ctx context.Context, genreUUID string) error

	CreateMovie(ctx context.Context, movie *Movie) error
	CreateMovies(ctx context.Context, batch []*Movie) error
	FindMovieByUUID(ctx context.Context, movieUUID string) (*Movie, error)
	SearchMovies(ctx context.Context, filter SearchFilter) ([]Movie, int64, error)
	UpdateMovie(ctx context.Context, movieUUID string, updates map[string]interface{}) error
	DeleteMovie(ctx context.Context, movieUUID string) error
}

// Request DTOs

type GenreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
}

type BulkGenreRequest struct {
	Genres []GenreRequest `json:"genres" validate:"required,min=1,max=100,dive"`
}

type UpdateGenreRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

type MovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	GenreUUID   string `json:"genre_uuid" validate:"required,uuid4"`
}

type BulkMovieRequest struct {
	Movies []MovieRequest `json:"movies" validate:"required,min=1,max=100,dive"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	GenreUUID   *string `json:"genre_uuid" validate:"omitempty,uuid4"`
}

// Response DTOs

type GenreListResponse struct {
	Genres []Genre `json:"genres"`
	Total  int64   `json:"total"`
}

type MovieListResponse struct {
	Movies []Movie `json:"movies"`
	Total  int64   `json:"total"`
}

type BulkCreateResponse struct {
	Created int `json:"created"`
}

type PosterResponse struct {
	MovieUUID string `json:"movie_uuid"`
	PosterURL string `json:"poster_url"`
}
