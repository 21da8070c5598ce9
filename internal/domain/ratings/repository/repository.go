package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/raminsh/filmlog/internal/domain/ratings"
	"github.com/raminsh/filmlog/internal/platform/database"
	"github.com/raminsh/filmlog/pkg/apperr"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Atomic(ctx context.Context, fn func(repo ratings.Repository) error) error {
	return database.RunInTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&RatingRepository{db: tx})
	})
}

func (r *RatingRepository) Exists(ctx context.Context, userUUID, movieUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ratings.Rating{}).
		Where("user_uuid = ? AND movie_uuid = ?", userUUID, movieUUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MovieExists checks the movie catalogue directly. There is no foreign key
// from user_rate_movie to movies, so callers run this inside Atomic
// alongside the write.
func (r *RatingRepository) MovieExists(ctx context.Context, movieUUID string) (bool, error) {
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

func (r *RatingRepository) Create(ctx context.Context, rating *ratings.Rating) error {
	err := r.db.WithContext(ctx).Create(rating).Error
	if err != nil {
		if database.IsDuplicateEntry(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "rating_already_exists", err)
		}
		return err
	}
	return nil
}

func (r *RatingRepository) FindByUUIDAndUser(ctx context.Context, rateUUID, userUUID string) (*ratings.Rating, error) {
	var rating ratings.Rating
	err := r.db.WithContext(ctx).
		Where("rate_uuid = ? AND user_uuid = ?", rateUUID, userUUID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) UpdateScore(ctx context.Context, rateUUID string, score int) error {
	return r.db.WithContext(ctx).
		Model(&ratings.Rating{}).
		Where("rate_uuid = ?", rateUUID).
		Update("score", score).Error
}

func (r *RatingRepository) UserRatings(ctx context.Context, userUUID string, filter ratings.ListFilter) ([]ratings.RatedMovieItem, int64, error) {
	base := r.db.WithContext(ctx).
		Table("user_rate_movie").
		Joins("JOIN movies ON movies.movie_uuid = user_rate_movie.movie_uuid").
		Where("user_rate_movie.user_uuid = ?", userUUID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "user_rate_movie.created_at ASC"
	if filter.SortDesc {
		order = "user_rate_movie.created_at DESC"
	}

	var items []ratings.RatedMovieItem
	err := base.
		Select("user_rate_movie.rate_uuid, movies.movie_uuid, movies.title, movies.description, movies.genre_uuid, user_rate_movie.score, user_rate_movie.created_at AS rated_at").
		Order(order).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *RatingRepository) MovieRaters(ctx context.Context, movieUUID string, filter ratings.ListFilter) ([]ratings.RaterItem, int64, error) {
	base := r.db.WithContext(ctx).
		Table("user_rate_movie").
		Joins("JOIN users ON users.user_uuid = user_rate_movie.user_uuid").
		Where("user_rate_movie.movie_uuid = ?", movieUUID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "user_rate_movie.created_at ASC"
	if filter.SortDesc {
		order = "user_rate_movie.created_at DESC"
	}

	var items []ratings.RaterItem
	err := base.
		Select("user_rate_movie.rate_uuid, users.user_uuid, users.first_name, users.last_name, users.email, user_rate_movie.score, user_rate_movie.created_at AS rated_at").
		Order(order).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
