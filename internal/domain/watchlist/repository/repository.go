package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/raminsh/filmlog/internal/domain/watchlist"
	"github.com/raminsh/filmlog/internal/platform/database"
	"github.com/raminsh/filmlog/pkg/apperr"
)

type WatchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) *WatchRepository {
	return &WatchRepository{db: db}
}

func (r *WatchRepository) Atomic(ctx context.Context, fn func(repo watchlist.Repository) error) error {
	return database.RunInTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&WatchRepository{db: tx})
	})
}

func (r *WatchRepository) Exists(ctx context.Context, userUUID, movieUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&watchlist.WatchRecord{}).
		Where("user_uuid = ? AND movie_uuid = ?", userUUID, movieUUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MovieExists checks the movie catalogue directly. The schema declares no
// foreign key from user_watch_movie to movies, so callers run this inside
// Atomic alongside the write.
func (r *WatchRepository) MovieExists(ctx context.Context, movieUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("movies").
		Where("movie_uuid = ?", movieUUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WatchRepository) Create(ctx context.Context, record *watchlist.WatchRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if database.IsDuplicateEntry(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "watch_already_exists", err)
		}
		return err
	}
	return nil
}

func (r *WatchRepository) FindByUUIDAndUser(ctx context.Context, watchUUID, userUUID string) (*watchlist.WatchRecord, error) {
	var record watchlist.WatchRecord
	err := r.db.WithContext(ctx).
		Where("watch_uuid = ? AND user_uuid = ?", watchUUID, userUUID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *WatchRepository) FindByUserAndMovie(ctx context.Context, userUUID, movieUUID string) (*watchlist.WatchRecord, error) {
	var record watchlist.WatchRecord
	err := r.db.WithContext(ctx).
		Where("user_uuid = ? AND movie_uuid = ?", userUUID, movieUUID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *WatchRepository) UpdateStatus(ctx context.Context, watchUUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&watchlist.WatchRecord{}).
		Where("watch_uuid = ?", watchUUID).
		Update("status", status).Error
}

func (r *WatchRepository) Delete(ctx context.Context, userUUID, movieUUID string) error {
	return r.db.WithContext(ctx).
		Where("user_uuid = ? AND movie_uuid = ?", userUUID, movieUUID).
		Delete(&watchlist.WatchRecord{}).Error
}

func (r *WatchRepository) UserHistory(ctx context.Context, userUUID string, filter watchlist.HistoryFilter) ([]watchlist.WatchedMovieItem, int64, error) {
	query := r.db.WithContext(ctx).
		Table("user_watch_movie").
		Select(`user_watch_movie.watch_uuid, movies.movie_uuid, movies.title,
			movies.description, movies.genre_uuid, user_watch_movie.status,
			user_watch_movie.created_at AS watched_at`).
		Joins("JOIN movies ON movies.movie_uuid = user_watch_movie.movie_uuid").
		Where("user_watch_movie.user_uuid = ?", userUUID)

	if filter.StatusFilter != "" {
		query = query.Where("user_watch_movie.status = ?", filter.StatusFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "user_watch_movie.created_at ASC"
	if filter.SortDesc {
		order = "user_watch_movie.created_at DESC"
	}
	offset := (filter.Page - 1) * filter.PageSize

	var items []watchlist.WatchedMovieItem
	if err := query.Order(order).Offset(offset).Limit(filter.PageSize).Scan(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *WatchRepository) MovieWatchers(ctx context.Context, movieUUID string, filter watchlist.HistoryFilter) ([]watchlist.WatcherItem, int64, error) {
	query := r.db.WithContext(ctx).
		Table("user_watch_movie").
		Select(`user_watch_movie.watch_uuid, users.user_uuid, users.first_name,
			users.last_name, users.email, user_watch_movie.status,
			user_watch_movie.created_at AS watched_at`).
		Joins("JOIN users ON users.user_uuid = user_watch_movie.user_uuid").
		Where("user_watch_movie.movie_uuid = ?", movieUUID)

	if filter.StatusFilter != "" {
		query = query.Where("user_watch_movie.status = ?", filter.StatusFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "user_watch_movie.created_at ASC"
	if filter.SortDesc {
		order = "user_watch_movie.created_at DESC"
	}
	offset := (filter.Page - 1) * filter.PageSize

	var items []watchlist.WatcherItem
	if err := query.Order(order).Offset(offset).Limit(filter.PageSize).Scan(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
