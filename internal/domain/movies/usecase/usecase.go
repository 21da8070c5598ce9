package usecase

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/raminsh/filmlog/internal/domain/movies"
	"github.com/raminsh/filmlog/pkg/apperr"
)

// PosterStore is the object-storage boundary for poster images.
type PosterStore interface {
	UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader, movieUUID string) (string, error)
	DeletePoster(ctx context.Context, objectName string) error
}

type MovieUsecase struct {
	repo    movies.Repository
	posters PosterStore
}

func NewMovieUsecase(repo movies.Repository, posters PosterStore) *MovieUsecase {
	return &MovieUsecase{
		repo:    repo,
		posters: posters,
	}
}

// Genre operations

func (u *MovieUsecase) CreateGenre(ctx context.Context, req movies.GenreRequest) (*movies.Genre, error) {
	genre := &movies.Genre{
		UUID:        uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}

	err := u.repo.Atomic(ctx, func(repo movies.Repository) error {
		return repo.CreateGenre(ctx, genre)
	})
	if err != nil {
		return nil, err
	}
	return genre, nil
}

// BulkCreateGenres inserts the whole batch in one unit of work; a single
// duplicate fails the batch.
func (u *MovieUsecase) BulkCreateGenres(ctx context.Context, req movies.BulkGenreRequest) (*movies.BulkCreateResponse, error) {
	batch := make([]*movies.Genre, 0, len(req.Genres))
	for _, g := range req.Genres {
		batch = append(batch, &movies.Genre{
			UUID:        uuid.NewString(),
			Name:        g.Name,
			Description: g.Description,
		})
	}

	err := u.repo.Atomic(ctx, func(repo movies.Repository) error {
		return repo.CreateGenres(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	return &movies.BulkCreateResponse{Created: len(batch)}, nil
}

func (u *MovieUsecase) GetGenre(ctx context.Context, genreUUID string) (*movies.Genre, error) {
	genre, err := u.repo.FindGenreByUUID(ctx, genreUUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if genre == nil {
		return nil, apperr.NotFound("genre_not_found")
	}
	return genre, nil
}

func (u *MovieUsecase) SearchGenres(ctx context.Context, filter movies.GenreFilter) (*movies.GenreListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}

	genres, total, err := u.repo.SearchGenres(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &movies.GenreListResponse{Genres: genres, Total: total}, nil
}

func (u *MovieUsecase) UpdateGenre(ctx context.Context, genreUUID string, req movies.UpdateGenreRequest) error {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return apperr.InvalidArgument("no_fields_to_update")
	}

	return u.repo.Atomic(ctx, func(repo movies.Repository) error {
		genre, err := repo.FindGenreByUUID(ctx, genreUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if genre == nil {
			return apperr.NotFound("genre_not_found")
		}
		return repo.UpdateGenre(ctx, genreUUID, updates)
	})
}

func (u *MovieUsecase) DeleteGenre(ctx context.Context, genreUUID string) error {
	return u.repo.Atomic(ctx, func(repo movies.Repository) error {
		return repo.DeleteGenre(ctx, genreUUID)
	})
}

// Movie operations

func (u *MovieUsecase) CreateMovie(ctx context.Context, req movies.MovieRequest) (*movies.Movie, error) {
	movie := &movies.Movie{
		UUID:        uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		GenreUUID:   req.GenreUUID,
	}

	err := u.repo.Atomic(ctx, func(repo movies.Repository) error {
		genre, err := repo.FindGenreByUUID(ctx, req.GenreUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if genre == nil {
			return apperr.NotFound("genre_not_found")
		}
		return repo.CreateMovie(ctx, movie)
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

func (u *MovieUsecase) BulkCreateMovies(ctx context.Context, req movies.BulkMovieRequest) (*movies.BulkCreateResponse, error) {
	batch := make([]*movies.Movie, 0, len(req.Movies))
	for _, m := range req.Movies {
		batch = append(batch, &movies.Movie{
			UUID:        uuid.NewString(),
			Title:       m.Title,
			Description: m.Description,
			GenreUUID:   m.GenreUUID,
		})
	}

	err := u.repo.Atomic(ctx, func(repo movies.Repository) error {
		for _, m := range batch {
			genre, err := repo.FindGenreByUUID(ctx, m.GenreUUID)
			if err != nil {
				return apperr.Internal(err)
			}
			if genre == nil {
				return apperr.NotFound("genre_not_found")
			}
		}
		return repo.CreateMovies(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	return &movies.BulkCreateResponse{Created: len(batch)}, nil
}

func (u *MovieUsecase) GetMovie(ctx context.Context, movieUUID string) (*movies.Movie, error) {
	movie, err := u.repo.FindMovieByUUID(ctx, movieUUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie_not_found")
	}
	return movie, nil
}

func (u *MovieUsecase) SearchMovies(ctx context.Context, filter movies.SearchFilter) (*movies.MovieListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}

	found, total, err := u.repo.SearchMovies(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &movies.MovieListResponse{Movies: found, Total: total}, nil
}

func (u *MovieUsecase) UpdateMovie(ctx context.Context, movieUUID string, req movies.UpdateMovieRequest) error {
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.GenreUUID != nil {
		updates["genre_uuid"] = *req.GenreUUID
	}
	if len(updates) == 0 {
		return apperr.InvalidArgument("no_fields_to_update")
	}

	return u.repo.Atomic(ctx, func(repo movies.Repository) error {
		movie, err := repo.FindMovieByUUID(ctx, movieUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if movie == nil {
			return apperr.NotFound("movie_not_found")
		}
		if req.GenreUUID != nil {
			genre, err := repo.FindGenreByUUID(ctx, *req.GenreUUID)
			if err != nil {
				return apperr.Internal(err)
			}
			if genre == nil {
				return apperr.NotFound("genre_not_found")
			}
		}
		return repo.UpdateMovie(ctx, movieUUID, updates)
	})
}

// DeleteMovie removes the row and then the stored poster object. The object
// removal is best-effort: the row is already gone, so a storage failure is
// logged rather than surfaced.
func (u *MovieUsecase) DeleteMovie(ctx context.Context, movieUUID string) error {
	movie, err := u.repo.FindMovieByUUID(ctx, movieUUID)
	if err != nil {
		return apperr.Internal(err)
	}
	if movie == nil {
		return apperr.NotFound("movie_not_found")
	}

	err = u.repo.Atomic(ctx, func(repo movies.Repository) error {
		return repo.DeleteMovie(ctx, movieUUID)
	})
	if err != nil {
		return err
	}

	if objectName := posterObjectName(movie.PosterURL); objectName != "" {
		if err := u.posters.DeletePoster(ctx, objectName); err != nil {
			log.Warn().Err(err).Str("movie_uuid", movieUUID).Str("object", objectName).Msg("failed to delete poster object")
		}
	}
	return nil
}

// posterObjectName recovers the storage object name from a poster URL
// produced by UploadPoster. Empty when the movie has no poster or the URL
// does not point into the posters prefix.
func posterObjectName(posterURL string) string {
	idx := strings.Index(posterURL, "/posters/")
	if idx < 0 {
		return ""
	}
	return posterURL[idx+1:]
}

// UploadPoster stores the image and records its public URL on the movie.
func (u *MovieUsecase) UploadPoster(ctx context.Context, movieUUID string, file multipart.File, fileHeader *multipart.FileHeader) (*movies.PosterResponse, error) {
	movie, err := u.repo.FindMovieByUUID(ctx, movieUUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie_not_found")
	}

	posterURL, err := u.posters.UploadPoster(ctx, file, fileHeader, movieUUID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	err = u.repo.Atomic(ctx, func(repo movies.Repository) error {
		return repo.UpdateMovie(ctx, movieUUID, map[string]interface{}{"poster_url": posterURL})
	})
	if err != nil {
		return nil, err
	}

	return &movies.PosterResponse{MovieUUID: movieUUID, PosterURL: posterURL}, nil
}
