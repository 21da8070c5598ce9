package watchlist

import (
	"context"
	"time"
)

// Watch statuses. The transition graph is a straight line: a record starts
// at want_to_watch and may move to watched exactly once. A watched record
// is historical and can be neither changed nor deleted.
const (
	StatusWantToWatch = "want_to_watch"
	StatusWatched     = "watched"
)

// WatchRecord links a user to a movie with a lifecycle status. One record
// per (user, movie) pair, enforced by a unique key.
type WatchRecord struct {
	UUID      string    `json:"watch_uuid" gorm:"column:watch_uuid;primaryKey;type:char(36)"`
	UserUUID  string    `json:"user_uuid" gorm:"column:user_uuid;type:char(36);not null;uniqueIndex:idx_user_movie"`
	MovieUUID string    `json:"movie_uuid" gorm:"column:movie_uuid;type:char(36);not null;uniqueIndex:idx_user_movie"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null;default:want_to_watch;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (WatchRecord) TableName() string {
	return "user_watch_movie"
}

// HistoryFilter pages a watch-history query, optionally narrowed by status.
type HistoryFilter struct {
	Page         int
	PageSize     int
	SortDesc     bool
	StatusFilter string
}

// WatchedMovieItem is one row of a user's watch history, joined with the
// movie catalogue.
type WatchedMovieItem struct {
	WatchUUID   string    `json:"watch_uuid"`
	MovieUUID   string    `json:"movie_uuid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GenreUUID   string    `json:"genre_uuid"`
	Status      string    `json:"status"`
	WatchedAt   time.Time `json:"watched_at"`
}

// WatcherItem is one row of a movie's watcher listing, joined with the
// user table.
type WatcherItem struct {
	WatchUUID string    `json:"watch_uuid"`
	UserUUID  string    `json:"user_uuid"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	WatchedAt time.Time `json:"watched_at"`
}

// Repository is the watch-store boundary. Absence is (nil, nil); the
// duplicate pair key surfaces as apperr.AlreadyExists. MovieExists looks
// across to the movie catalogue so the referential check can run in the
// same transaction as the write.
type Repository interface {
	Atomic(ctx context.Context, fn func(repo Repository) error) error
	Exists(ctx context.Context, userUUID, movieUUID string) (bool, error)
	MovieExists(ctx context.Context, movieUUID string) (bool, error)
	Create(ctx context.Context, record *WatchRecord) error
	FindByUUIDAndUser(ctx context.Context, watchUUID, userUUID string) (*WatchRecord, error)
	FindByUserAndMovie(ctx context.Context, userUUID, movieUUID string) (*WatchRecord, error)
	UpdateStatus(ctx context.Context, watchUUID, status string) error
	Delete(ctx context.Context, userUUID, movieUUID string) error
	UserHistory(ctx context.Context, userUUID string, filter HistoryFilter) ([]WatchedMovieItem, int64, error)
	MovieWatchers(ctx context.Context, movieUUID string, filter HistoryFilter) ([]WatcherItem, int64, error)
}

// Request DTOs

type WatchMovieRequest struct {
	MovieUUID string `json:"movie_uuid" validate:"required,uuid4"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=want_to_watch watched"`
}

// Response DTOs

type HistoryResponse struct {
	Watches []WatchedMovieItem `json:"watches"`
	Total   int64              `json:"total"`
}

type WatchersResponse struct {
	Watchers []WatcherItem `json:"watchers"`
	Total    int64         `json:"total"`
}
