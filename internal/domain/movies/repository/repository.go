package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/raminsh/filmlog/internal/domain/movies"
	"github.com/raminsh/filmlog/internal/platform/database"
	"github.com/raminsh/filmlog/pkg/apperr"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Atomic(ctx context.Context, fn func(repo movies.Repository) error) error {
	return database.RunInTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&MovieRepository{db: tx})
	})
}

// Genres

func (r *MovieRepository) CreateGenre(ctx context.Context, genre *movies.Genre) error {
	if err := r.db.WithContext(ctx).Create(genre).Error; err != nil {
		if database.IsDuplicateEntry(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "genre_already_exists", err)
		}
		return err
	}
	return nil
}

func (r *MovieRepository) CreateGenres(ctx context.Context, genres []*movies.Genre) error {
	if err := r.db.WithContext(ctx).Create(genres).Error; err != nil {
		if database.IsDuplicateEntry(err) {
			return apperr.Wrap(apperr.KindAlreadyExists, "genre_already_exists", err)
		}
		return err
	}
	return nil
}

func (r *MovieRepository) FindGenreByUUID(ctx context.Context, genreUUID string) (*movies.Genre, error) {
	var genre movies.Genre
	err := r.db.WithContext(ctx).Where("genre_uuid = ?", genreUUID).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

func (r *MovieRepository) SearchGenres(ctx context.Context, filter movies.GenreFilter) ([]movies.Genre, int64, error) {
	query := r.db.WithContext(ctx).Model(&movies.Genre{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", filter.Name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC"
	if filter.SortDesc {
		order = "created_at DESC"
	}
	offset := (filter.Page - 1) * filter.PageSize

	var results []movies.Genre
	if err := query.Order(order).Offset(offset).Limit(filter.PageSize).Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *MovieRepository) UpdateGenre(ctx context.Context, genreUUID string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&movies.Genre{}).
		Where("genre_uuid = ?", genreUUID).
		Updates(updates)
	if result.Error != nil {
		if database.IsDuplicateEntry(result.Error) {
			return apperr.Wrap(apperr.KindAlreadyExists, "genre_already_exists", result.Error)
		}
		return result.Error
	}
	return nil
}

func (r *MovieRepository) DeleteGenre(ctx context.Context, genreUUID string) error {
	result := r.db.WithContext(ctx).
		Where("genre_uuid = ?", genreUUID).
		Delete(&movies.Genre{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("genre_not_found")
	}
	return nil
}

// Movies

func (r *MovieRepository) CreateMovie(ctx context.Context, movie *movies.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *MovieRepository) CreateMovies(ctx context.Context, batch []*movies.Movie) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *MovieRepository) FindMovieByUUID(ctx context.Context, movieUUID string) (*movies.Movie, error) {
	var movie movies.Movie
	err := r.db.WithContext(ctx).Where("movie_uuid = ?", movieUUID).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) SearchMovies(ctx context.Context, filter movies.SearchFilter) ([]movies.Movie, int64, error) {
	query := r.db.WithContext(ctx).Model(&movies.Movie{})

	if filter.Title != "" {
		query = query.Where("title LIKE ?", filter.Title+"%")
	}
	if filter.GenreUUID != "" {
		query = query.Where("genre_uuid = ?", filter.GenreUUID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC"
	if filter.SortDesc {
		order = "created_at DESC"
	}
	offset := (filter.Page - 1) * filter.PageSize

	var results []movies.Movie
	if err := query.Order(order).Offset(offset).Limit(filter.PageSize).Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *MovieRepository) UpdateMovie(ctx context.Context, movieUUID string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&movies.Movie{}).
		Where("movie_uuid = ?", movieUUID).
		Updates(updates).Error
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, movieUUID string) error {
	result := r.db.WithContext(ctx).
		Where("movie_uuid = ?", movieUUID).
		Delete(&movies.Movie{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("movie_not_found")
	}
	return nil
}

// RefreshRatingAggregates recomputes a movie's avg_score and ratings_count
// from the stored ratings in one statement. Only the worker calls this.
func (r *MovieRepository) RefreshRatingAggregates(ctx context.Context, movieUUID string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE movies m
		SET m.avg_score = COALESCE(
			(SELECT AVG(score) FROM user_rate_movie WHERE movie_uuid = ?), 0),
		    m.ratings_count = (
			SELECT COUNT(*) FROM user_rate_movie WHERE movie_uuid = ?)
		WHERE m.movie_uuid = ?`,
		movieUUID, movieUUID, movieUUID,
	).Error
}
