package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/raminsh/filmlog/internal/domain/watchlist"
	"github.com/raminsh/filmlog/pkg/apperr"
)

// WatchUsecase owns the per-(user, movie) lifecycle: one record per pair,
// and the only legal transition is want_to_watch → watched.
type WatchUsecase struct {
	repo watchlist.Repository
}

func NewWatchUsecase(repo watchlist.Repository) *WatchUsecase {
	return &WatchUsecase{repo: repo}
}

// WatchMovie creates a watch record for the caller. A new record always
// starts at want_to_watch; watched is only reachable through UpdateStatus.
// A second record for the same pair is rejected; the pre-check catches the
// common case and the unique key settles races.
func (u *WatchUsecase) WatchMovie(ctx context.Context, userUUID string, req watchlist.WatchMovieRequest) (*watchlist.WatchRecord, error) {
	record := &watchlist.WatchRecord{
		UUID:      uuid.NewString(),
		UserUUID:  userUUID,
		MovieUUID: req.MovieUUID,
		Status:    watchlist.StatusWantToWatch,
	}

	err := u.repo.Atomic(ctx, func(repo watchlist.Repository) error {
		movieExists, err := repo.MovieExists(ctx, req.MovieUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !movieExists {
			return apperr.NotFound("movie_not_found")
		}

		exists, err := repo.Exists(ctx, userUUID, req.MovieUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if exists {
			return apperr.AlreadyExists("watch_already_exists")
		}
		return repo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// UpdateStatus transitions the record identified by (watchUUID, userUUID).
// Once a record reaches watched it is immutable, so only records still in
// want_to_watch may move.
func (u *WatchUsecase) UpdateStatus(ctx context.Context, watchUUID, userUUID string, req watchlist.UpdateStatusRequest) error {
	return u.repo.Atomic(ctx, func(repo watchlist.Repository) error {
		record, err := repo.FindByUUIDAndUser(ctx, watchUUID, userUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if record == nil {
			return apperr.NotFound("watch_not_found")
		}
		if record.Status != watchlist.StatusWantToWatch {
			return apperr.InvalidArgument("watch_status_is_final")
		}
		return repo.UpdateStatus(ctx, watchUUID, req.Status)
	})
}

// DeleteWatch removes the caller's record for a movie. A watched record is
// a historical fact and cannot be deleted.
func (u *WatchUsecase) DeleteWatch(ctx context.Context, userUUID, movieUUID string) error {
	return u.repo.Atomic(ctx, func(repo watchlist.Repository) error {
		record, err := repo.FindByUserAndMovie(ctx, userUUID, movieUUID)
		if err != nil {
			return apperr.Internal(err)
		}
		if record == nil {
			return apperr.NotFound("watch_not_found")
		}
		if record.Status != watchlist.StatusWantToWatch {
			return apperr.InvalidArgument("watch_status_is_final")
		}
		return repo.Delete(ctx, userUUID, movieUUID)
	})
}

// MyHistory returns the caller's own paginated watch history.
func (u *WatchUsecase) MyHistory(ctx context.Context, userUUID string, filter watchlist.HistoryFilter) (*watchlist.HistoryResponse, error) {
	return u.UserHistory(ctx, userUUID, filter)
}

// UserHistory returns any user's watch history (admin only at the HTTP
// layer).
func (u *WatchUsecase) UserHistory(ctx context.Context, userUUID string, filter watchlist.HistoryFilter) (*watchlist.HistoryResponse, error) {
	normalizeFilter(&filter)

	watches, total, err := u.repo.UserHistory(ctx, userUUID, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &watchlist.HistoryResponse{Watches: watches, Total: total}, nil
}

// MovieWatchers lists who has a movie on their list (admin only at the
// HTTP layer).
func (u *WatchUsecase) MovieWatchers(ctx context.Context, movieUUID string, filter watchlist.HistoryFilter) (*watchlist.WatchersResponse, error) {
	normalizeFilter(&filter)

	watchers, total, err := u.repo.MovieWatchers(ctx, movieUUID, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &watchlist.WatchersResponse{Watchers: watchers, Total: total}, nil
}

func normalizeFilter(filter *watchlist.HistoryFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 10
	}
}
