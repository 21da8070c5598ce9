package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raminsh/filmlog/internal/domain/ratings"
	"github.com/raminsh/filmlog/pkg/apperr"
)

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Atomic(ctx context.Context, fn func(repo ratings.Repository) error) error {
	return fn(m)
}

func (m *mockRatingRepository) Exists(ctx context.Context, userUUID, movieUUID string) (bool, error) {
	args := m.Called(ctx, userUUID, movieUUID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRatingRepository) MovieExists(ctx context.Context, movieUUID string) (bool, error) {
	args := m.Called(ctx, movieUUID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *ratings.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) FindByUUIDAndUser(ctx context.Context, rateUUID, userUUID string) (*ratings.Rating, error) {
	args := m.Called(ctx, rateUUID, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ratings.Rating), args.Error(1)
}

func (m *mockRatingRepository) UpdateScore(ctx context.Context, rateUUID string, score int) error {
	args := m.Called(ctx, rateUUID, score)
	return args.Error(0)
}

func (m *mockRatingRepository) UserRatings(ctx context.Context, userUUID string, filter ratings.ListFilter) ([]ratings.RatedMovieItem, int64, error) {
	args := m.Called(ctx, userUUID, filter)
	return args.Get(0).([]ratings.RatedMovieItem), args.Get(1).(int64), args.Error(2)
}

func (m *mockRatingRepository) MovieRaters(ctx context.Context, movieUUID string, filter ratings.ListFilter) ([]ratings.RaterItem, int64, error) {
	args := m.Called(ctx, movieUUID, filter)
	return args.Get(0).([]ratings.RaterItem), args.Get(1).(int64), args.Error(2)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishRatingEvent(ctx context.Context, movieUUID string) error {
	args := m.Called(ctx, movieUUID)
	return args.Error(0)
}

func TestRateMovieCreatesRatingAndPublishes(t *testing.T) {
	repo := new(mockRatingRepository)
	events := new(mockEventPublisher)
	uc := NewRatingUsecase(repo, events)

	repo.On("MovieExists", mock.Anything, "movie-1").Return(true, nil)
	repo.On("Exists", mock.Anything, "user-1", "movie-1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*ratings.Rating")).Return(nil)
	events.On("PublishRatingEvent", mock.Anything, "movie-1").Return(nil)

	rating, err := uc.RateMovie(context.Background(), "user-1", ratings.RateMovieRequest{
		MovieUUID: "movie-1",
		Score:     4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rating.UUID)
	assert.Equal(t, 4, rating.Score)
	assert.Equal(t, "user-1", rating.UserUUID)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestRateMovieRejectsSecondRating(t *testing.T) {
	repo := new(mockRatingRepository)
	events := new(mockEventPublisher)
	uc := NewRatingUsecase(repo, events)

	repo.On("MovieExists", mock.Anything, "movie-1").Return(true, nil)
	repo.On("Exists", mock.Anything, "user-1", "movie-1").Return(true, nil)

	_, err := uc.RateMovie(context.Background(), "user-1", ratings.RateMovieRequest{
		MovieUUID: "movie-1",
		Score:     5,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindAlreadyExists))
	repo.AssertNotCalled(t, "Create")
	events.AssertNotCalled(t, "PublishRatingEvent")
}

func TestRateMovieUnknownMovie(t *testing.T) {
	repo := new(mockRatingRepository)
	events := new(mockEventPublisher)
	uc := NewRatingUsecase(repo, events)

	repo.On("MovieExists", mock.Anything, "ghost-movie").Return(false, nil)

	_, err := uc.RateMovie(context.Background(), "user-1", ratings.RateMovieRequest{
		MovieUUID: "ghost-movie",
		Score:     4,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "Exists")
	repo.AssertNotCalled(t, "Create")
	events.AssertNotCalled(t, "PublishRatingEvent")
}

func TestRateMovieRejectsOutOfRangeScore(t *testing.T) {
	repo := new(mockRatingRepository)
	uc := NewRatingUsecase(repo, nil)

	for _, score := range []int{0, -1, 6, 100} {
		_, err := uc.RateMovie(context.Background(), "user-1", ratings.RateMovieRequest{
			MovieUUID: "movie-1",
			Score:     score,
		})
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument), "score %d", score)
	}
	repo.AssertNotCalled(t, "Exists")
}

func TestRateMovieSurvivesPublishFailure(t *testing.T) {
	repo := new(mockRatingRepository)
	events := new(mockEventPublisher)
	uc := NewRatingUsecase(repo, events)

	repo.On("MovieExists", mock.Anything, "movie-1").Return(true, nil)
	repo.On("Exists", mock.Anything, "user-1", "movie-1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	events.On("PublishRatingEvent", mock.Anything, "movie-1").Return(assert.AnError)

	// The rating is committed; a broken queue must not fail the request.
	rating, err := uc.RateMovie(context.Background(), "user-1", ratings.RateMovieRequest{
		MovieUUID: "movie-1",
		Score:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, rating.Score)
}

func TestUpdateRatingChangesScoreOnly(t *testing.T) {
	repo := new(mockRatingRepository)
	events := new(mockEventPublisher)
	uc := NewRatingUsecase(repo, events)

	repo.On("FindByUUIDAndUser", mock.Anything, "rate-1", "user-1").Return(&ratings.Rating{
		UUID:      "rate-1",
		UserUUID:  "user-1",
		MovieUUID: "movie-1",
		Score:     2,
	}, nil)
	repo.On("UpdateScore", mock.Anything, "rate-1", 5).Return(nil)
	events.On("PublishRatingEvent", mock.Anything, "movie-1").Return(nil)

	updated, err := uc.UpdateRating(context.Background(), "user-1", "rate-1", ratings.UpdateRatingRequest{Score: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Score)
	assert.Equal(t, "movie-1", updated.MovieUUID)
	repo.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestUpdateRatingUnknownRecord(t *testing.T) {
	repo := new(mockRatingRepository)
	uc := NewRatingUsecase(repo, nil)

	repo.On("FindByUUIDAndUser", mock.Anything, "ghost", "user-1").Return(nil, nil)

	_, err := uc.UpdateRating(context.Background(), "user-1", "ghost", ratings.UpdateRatingRequest{Score: 3})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "UpdateScore")
}

func TestUpdateRatingScopedToOwner(t *testing.T) {
	repo := new(mockRatingRepository)
	uc := NewRatingUsecase(repo, nil)

	repo.On("FindByUUIDAndUser", mock.Anything, "rate-1", "intruder").Return(nil, nil)

	_, err := uc.UpdateRating(context.Background(), "intruder", "rate-1", ratings.UpdateRatingRequest{Score: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestMyRatingsNormalizesPaging(t *testing.T) {
	repo := new(mockRatingRepository)
	uc := NewRatingUsecase(repo, nil)

	repo.On("UserRatings", mock.Anything, "user-1", ratings.ListFilter{
		Page:     1,
		PageSize: 10,
	}).Return([]ratings.RatedMovieItem{}, int64(0), nil)

	resp, err := uc.MyRatings(context.Background(), "user-1", ratings.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)
	repo.AssertExpectations(t)
}
