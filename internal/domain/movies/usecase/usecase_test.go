package usecase

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raminsh/filmlog/internal/domain/movies"
	"github.com/raminsh/filmlog/pkg/apperr"
)

type mockMovieRepository struct {
	mock.Mock
}

func (m *mockMovieRepository) Atomic(ctx context.Context, fn func(repo movies.Repository) error) error {
	return fn(m)
}

func (m *mockMovieRepository) CreateGenre(ctx context.Context, genre *movies.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *mockMovieRepository) CreateGenres(ctx context.Context, genres []*movies.Genre) error {
	args := m.Called(ctx, genres)
	return args.Error(0)
}

func (m *mockMovieRepository) FindGenreByUUID(ctx context.Context, genreUUID string) (*movies.Genre, error) {
	args := m.Called(ctx, genreUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.Genre), args.Error(1)
}

func (m *mockMovieRepository) SearchGenres(ctx context.Context, filter movies.GenreFilter) ([]movies.Genre, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]movies.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepository) UpdateGenre(ctx context.Context, genreUUID string, updates map[string]interface{}) error {
	args := m.Called(ctx, genreUUID, updates)
	return args.Error(0)
}

func (m *mockMovieRepository) DeleteGenre(ctx context.Context, genreUUID string) error {
	args := m.Called(ctx, genreUUID)
	return args.Error(0)
}

func (m *mockMovieRepository) CreateMovie(ctx context.Context, movie *movies.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *mockMovieRepository) CreateMovies(ctx context.Context, batch []*movies.Movie) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *mockMovieRepository) FindMovieByUUID(ctx context.Context, movieUUID string) (*movies.Movie, error) {
	args := m.Called(ctx, movieUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.Movie), args.Error(1)
}

func (m *mockMovieRepository) SearchMovies(ctx context.Context, filter movies.SearchFilter) ([]movies.Movie, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]movies.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *mockMovieRepository) UpdateMovie(ctx context.Context, movieUUID string, updates map[string]interface{}) error {
	args := m.Called(ctx, movieUUID, updates)
	return args.Error(0)
}

func (m *mockMovieRepository) DeleteMovie(ctx context.Context, movieUUID string) error {
	args := m.Called(ctx, movieUUID)
	return args.Error(0)
}

type mockPosterStore struct {
	mock.Mock
}

func (m *mockPosterStore) UploadPoster(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader, movieUUID string) (string, error) {
	args := m.Called(ctx, file, fileHeader, movieUUID)
	return args.String(0), args.Error(1)
}

func (m *mockPosterStore) DeletePoster(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func drama() *movies.Genre {
	return &movies.Genre{UUID: "genre-1", Name: "Drama"}
}

func TestCreateMovieRequiresExistingGenre(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	repo.On("FindGenreByUUID", mock.Anything, "ghost-genre").Return(nil, nil)

	_, err := uc.CreateMovie(context.Background(), movies.MovieRequest{
		Title:     "Stalker",
		GenreUUID: "ghost-genre",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "CreateMovie")
}

func TestCreateMovieAssignsUUID(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	repo.On("FindGenreByUUID", mock.Anything, "genre-1").Return(drama(), nil)

	var created *movies.Movie
	repo.On("CreateMovie", mock.Anything, mock.AnythingOfType("*movies.Movie")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*movies.Movie)
		}).
		Return(nil)

	movie, err := uc.CreateMovie(context.Background(), movies.MovieRequest{
		Title:     "Stalker",
		GenreUUID: "genre-1",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.NotEmpty(t, movie.UUID)
	assert.Zero(t, movie.AvgScore)
	assert.Zero(t, movie.RatingsCount)
}

func TestBulkCreateMoviesFailsOnUnknownGenre(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	repo.On("FindGenreByUUID", mock.Anything, "genre-1").Return(drama(), nil)
	repo.On("FindGenreByUUID", mock.Anything, "ghost-genre").Return(nil, nil)

	_, err := uc.BulkCreateMovies(context.Background(), movies.BulkMovieRequest{
		Movies: []movies.MovieRequest{
			{Title: "Stalker", GenreUUID: "genre-1"},
			{Title: "Solaris", GenreUUID: "ghost-genre"},
		},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "CreateMovies")
}

func TestUpdateGenreRequiresFields(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	err := uc.UpdateGenre(context.Background(), "genre-1", movies.UpdateGenreRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
	repo.AssertNotCalled(t, "UpdateGenre")
}

func TestUpdateGenreUnknownGenre(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	repo.On("FindGenreByUUID", mock.Anything, "ghost-genre").Return(nil, nil)

	name := "Thriller"
	err := uc.UpdateGenre(context.Background(), "ghost-genre", movies.UpdateGenreRequest{Name: &name})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateMovieValidatesNewGenre(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	repo.On("FindMovieByUUID", mock.Anything, "movie-1").Return(&movies.Movie{UUID: "movie-1"}, nil)
	repo.On("FindGenreByUUID", mock.Anything, "ghost-genre").Return(nil, nil)

	ghost := "ghost-genre"
	err := uc.UpdateMovie(context.Background(), "movie-1", movies.UpdateMovieRequest{GenreUUID: &ghost})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "UpdateMovie")
}

func TestGetMovieUnknown(t *testing.T) {
	repo := new(mockMovieRepository)
	uc := NewMovieUsecase(repo, nil)

	repo.On("FindMovieByUUID", mock.Anything, "ghost").Return(nil, nil)

	_, err := uc.GetMovie(context.Background(), "ghost")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteMovieRemovesPosterObject(t *testing.T) {
	repo := new(mockMovieRepository)
	posters := new(mockPosterStore)
	uc := NewMovieUsecase(repo, posters)

	repo.On("FindMovieByUUID", mock.Anything, "movie-1").Return(&movies.Movie{
		UUID:      "movie-1",
		PosterURL: "http://minio.local/filmlog-posters/posters/movie-1.jpg",
	}, nil)
	repo.On("DeleteMovie", mock.Anything, "movie-1").Return(nil)
	posters.On("DeletePoster", mock.Anything, "posters/movie-1.jpg").Return(nil)

	err := uc.DeleteMovie(context.Background(), "movie-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	posters.AssertExpectations(t)
}

func TestDeleteMovieWithoutPoster(t *testing.T) {
	repo := new(mockMovieRepository)
	posters := new(mockPosterStore)
	uc := NewMovieUsecase(repo, posters)

	repo.On("FindMovieByUUID", mock.Anything, "movie-1").Return(&movies.Movie{UUID: "movie-1"}, nil)
	repo.On("DeleteMovie", mock.Anything, "movie-1").Return(nil)

	err := uc.DeleteMovie(context.Background(), "movie-1")
	require.NoError(t, err)
	posters.AssertNotCalled(t, "DeletePoster")
}

func TestDeleteMovieSurvivesPosterCleanupFailure(t *testing.T) {
	repo := new(mockMovieRepository)
	posters := new(mockPosterStore)
	uc := NewMovieUsecase(repo, posters)

	repo.On("FindMovieByUUID", mock.Anything, "movie-1").Return(&movies.Movie{
		UUID:      "movie-1",
		PosterURL: "http://minio.local/filmlog-posters/posters/movie-1.jpg",
	}, nil)
	repo.On("DeleteMovie", mock.Anything, "movie-1").Return(nil)
	posters.On("DeletePoster", mock.Anything, "posters/movie-1.jpg").Return(assert.AnError)

	// The row is already gone; storage cleanup failures must not surface.
	err := uc.DeleteMovie(context.Background(), "movie-1")
	require.NoError(t, err)
}

func TestDeleteMovieUnknownMovie(t *testing.T) {
	repo := new(mockMovieRepository)
	posters := new(mockPosterStore)
	uc := NewMovieUsecase(repo, posters)

	repo.On("FindMovieByUUID", mock.Anything, "ghost").Return(nil, nil)

	err := uc.DeleteMovie(context.Background(), "ghost")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "DeleteMovie")
	posters.AssertNotCalled(t, "DeletePoster")
}

func TestUploadPosterRecordsURL(t *testing.T) {
	repo := new(mockMovieRepository)
	posters := new(mockPosterStore)
	uc := NewMovieUsecase(repo, posters)

	repo.On("FindMovieByUUID", mock.Anything, "movie-1").Return(&movies.Movie{UUID: "movie-1"}, nil)
	posters.On("UploadPoster", mock.Anything, mock.Anything, mock.Anything, "movie-1").
		Return("http://minio.local/posters/movie-1.jpg", nil)
	repo.On("UpdateMovie", mock.Anything, "movie-1", map[string]interface{}{
		"poster_url": "http://minio.local/posters/movie-1.jpg",
	}).Return(nil)

	resp, err := uc.UploadPoster(context.Background(), "movie-1", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://minio.local/posters/movie-1.jpg", resp.PosterURL)
	repo.AssertExpectations(t)
	posters.AssertExpectations(t)
}

func TestUploadPosterUnknownMovie(t *testing.T) {
	repo := new(mockMovieRepository)
	posters := new(mockPosterStore)
	uc := NewMovieUsecase(repo, posters)

	repo.On("FindMovieByUUID", mock.Anything, "ghost").Return(nil, nil)

	_, err := uc.UploadPoster(context.Background(), "ghost", nil, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	posters.AssertNotCalled(t, "UploadPoster")
}
