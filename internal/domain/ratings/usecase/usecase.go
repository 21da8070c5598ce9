package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/raminsh/filmlog/internal/domain/ratings"
	"github.com/raminsh/filmlog/pkg/apperr"
)

// EventPublisher hands a movie UUID to the aggregate worker after a
// rating changes. Publish failures are logged, not surfaced: the rating
// itself is already committed.
type EventPublisher interface {
	PublishRatingEvent(ctx context.Context, movieUUID string) error
}

type RatingUsecase struct {
	repo   ratings.Repository
	events EventPublisher
}

func NewRatingUsecase(repo ratings.Repository, events EventPublisher) *RatingUsecase {
	return &RatingUsecase{repo: repo, events: events}
}

func (u *RatingUsecase) RateMovie(ctx context.Context, userUUID string, req ratings.RateMovieRequest) (*ratings.Rating, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, apperr.InvalidArgument("score_out_of_range")
	}

	rating := &ratings.Rating{
		UUID:      uuid.NewString(),
		UserUUID:  userUUID,
		MovieUUID: req.MovieUUID,
		Score:     req.Score,
	}

	err := u.repo.Atomic(ctx, func(repo ratings.Repository) error {
		movieExists, err := repo.MovieExists(ctx, req.MovieUUID)
		if err != nil {
			return err
		}
		if !movieExists {
			return apperr.NotFound("movie_not_found")
		}

		exists, err := repo.Exists(ctx, userUUID, req.MovieUUID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.AlreadyExists("rating_already_exists")
		}
		return repo.Create(ctx, rating)
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, req.MovieUUID)
	return rating, nil
}

func (u *RatingUsecase) UpdateRating(ctx context.Context, userUUID, rateUUID string, req ratings.UpdateRatingRequest) (*ratings.Rating, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, apperr.InvalidArgument("score_out_of_range")
	}

	var updated *ratings.Rating
	err := u.repo.Atomic(ctx, func(repo ratings.Repository) error {
		rating, err := repo.FindByUUIDAndUser(ctx, rateUUID, userUUID)
		if err != nil {
			return err
		}
		if rating == nil {
			return apperr.NotFound("rating_not_found")
		}
		if err := repo.UpdateScore(ctx, rateUUID, req.Score); err != nil {
			return err
		}
		rating.Score = req.Score
		updated = rating
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, updated.MovieUUID)
	return updated, nil
}

func (u *RatingUsecase) MyRatings(ctx context.Context, userUUID string, filter ratings.ListFilter) (*ratings.RatingsResponse, error) {
	return u.UserRatings(ctx, userUUID, filter)
}

func (u *RatingUsecase) UserRatings(ctx context.Context, userUUID string, filter ratings.ListFilter) (*ratings.RatingsResponse, error) {
	normalizeFilter(&filter)
	items, total, err := u.repo.UserRatings(ctx, userUUID, filter)
	if err != nil {
		return nil, err
	}
	return &ratings.RatingsResponse{Ratings: items, Total: total}, nil
}

func (u *RatingUsecase) MovieRaters(ctx context.Context, movieUUID string, filter ratings.ListFilter) (*ratings.RatersResponse, error) {
	normalizeFilter(&filter)
	items, total, err := u.repo.MovieRaters(ctx, movieUUID, filter)
	if err != nil {
		return nil, err
	}
	return &ratings.RatersResponse{Raters: items, Total: total}, nil
}

func (u *RatingUsecase) publish(ctx context.Context, movieUUID string) {
	if u.events == nil {
		return
	}
	if err := u.events.PublishRatingEvent(ctx, movieUUID); err != nil {
		log.Warn().Err(err).Str("movie_uuid", movieUUID).Msg("failed to publish rating event")
	}
}

func normalizeFilter(filter *ratings.ListFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
}
