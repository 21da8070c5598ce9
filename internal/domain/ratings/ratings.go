package ratings

import (
	"context"
	"time"
)

// Rating is one user's integer score for one movie. One rating per
// (user, movie) pair; a second attempt must go through update instead.
type Rating struct {
	UUID      string    `json:"rate_uuid" gorm:"column:rate_uuid;primaryKey;type:char(36)"`
	UserUUID  string    `json:"user_uuid" gorm:"column:user_uuid;type:char(36);not null;uniqueIndex:idx_user_movie_rating"`
	MovieUUID string    `json:"movie_uuid" gorm:"column:movie_uuid;type:char(36);not null;uniqueIndex:idx_user_movie_rating"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Rating) TableName() string {
	return "user_rate_movie"
}

// ListFilter pages a rating listing.
type ListFilter struct {
	Page     int
	PageSize int
	SortDesc bool
}

// RatedMovieItem is one row of a user's rating list, joined with the
// movie catalogue.
type RatedMovieItem struct {
	RateUUID    string    `json:"rate_uuid"`
	MovieUUID   string    `json:"movie_uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GenreUUID   string    `json:"genre_uuid"`
	Score       int       `json:"score"`
	RatedAt     time.Time `json:"rated_at"`
}

// RaterItem is one row of a movie's rater listing, joined with the user
// table.
type RaterItem struct {
	RateUUID  string    `json:"rate_uuid"`
	UserUUID  string    `json:"user_uuid"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Score     int       `json:"score"`
	RatedAt   time.Time `json:"rated_at"`
}

// Repository is the rating-store boundary. Absence is (nil, nil); the
// duplicate pair key surfaces as apperr.AlreadyExists.
type Repository interface {
	Atomic(ctx context.Context, fn func(repo Repository) error) error
	Exists(ctx context.Context, userUUID, movieUUID string) (bool, error)
	MovieExists(ctx context.Context, movieUUID string) (bool, error)
	Create(ctx context.Context, rating *Rating) error
	FindByUUIDAndUser(ctx context.Context, rateUUID, userUUID string) (*Rating, error)
	UpdateScore(ctx context.Context, rateUUID string, score int) error
	UserRatings(ctx context.Context, userUUID string, filter ListFilter) ([]RatedMovieItem, int64, error)
	MovieRaters(ctx context.Context, movieUUID string, filter ListFilter) ([]RaterItem, int64, error)
}

// Request DTOs

type RateMovieRequest struct {
	MovieUUID string `json:"movie_uuid" validate:"required,uuid4"`
	Score     int    `json:"score" validate:"required,min=1,max=5"`
}

type UpdateRatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// Response DTOs

type RatingsResponse struct {
	Ratings []RatedMovieItem `json:"ratings"`
	Total   int64            `json:"total"`
}

type RatersResponse struct {
	Raters []RaterItem `json:"raters"`
	Total  int64       `json:"total"`
}
