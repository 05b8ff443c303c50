package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moviedex/internal/movie"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Movies(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]movie.Movie), args.Error(1)
}

func loadedService(t *testing.T, records []movie.Movie) *Service {
	t.Helper()
	src := new(mockSource)
	src.On("Movies", mock.Anything).Return(records, nil).Once()
	svc := NewService(NewStore(), src, zap.NewNop())
	require.NoError(t, svc.Load(context.Background()))
	src.AssertExpectations(t)
	return svc
}

func TestService_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		src := new(mockSource)
		src.On("Movies", ctx).Return(fixtureMovies(), nil)
		svc := NewService(NewStore(), src, zap.NewNop())
		assert.Equal(t, StateEmpty, svc.State())

		err := svc.Load(ctx)

		assert.NoError(t, err)
		assert.Equal(t, StateReady, svc.State())
		src.AssertExpectations(t)
	})

	t.Run("failure keeps previous snapshot", func(t *testing.T) {
		boom := errors.New("network down")
		src := new(mockSource)
		src.On("Movies", ctx).Return(fixtureMovies(), nil).Once()
		src.On("Movies", ctx).Return(nil, boom).Once()
		svc := NewService(NewStore(), src, nil)
		require.NoError(t, svc.Load(ctx))

		err := svc.Load(ctx)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, StateFailed, svc.State())
		page, err := svc.Query(FilterSpec{}, SortSpec{}, PageSpec{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalMatched)
	})

	t.Run("duplicates are collapsed", func(t *testing.T) {
		records := append(fixtureMovies(), movie.Movie{ID: 155, Title: "The Dark Knight (Remastered)", Rating: 9.1})
		svc := loadedService(t, records)

		m, err := svc.SelectMovie(155)
		require.NoError(t, err)
		assert.Equal(t, "The Dark Knight (Remastered)", m.Title)
		page, err := svc.Query(FilterSpec{}, SortSpec{}, PageSpec{Number: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalMatched)
	})
}

func TestService_SelectMovie(t *testing.T) {
	svc := loadedService(t, fixtureMovies())

	t.Run("independent of any listing", func(t *testing.T) {
		_, err := svc.Query(FilterSpec{SearchQuery: "matrix"}, SortSpec{}, PageSpec{Number: 1, Size: 1})
		require.NoError(t, err)

		m, err := svc.SelectMovie(11324)
		require.NoError(t, err)
		assert.Equal(t, "Shutter Island", m.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.SelectMovie(42)
		assert.ErrorIs(t, err, movie.ErrNotFound)
	})
}

func TestService_Similar(t *testing.T) {
	svc := loadedService(t, fixtureMovies())

	t.Run("ranks shared genres then rating", func(t *testing.T) {
		got, err := svc.Similar(27205, 3)
		require.NoError(t, err)

		// Inception shares Action+SF with The Matrix, one genre with the others.
		assert.Equal(t, []string{"The Matrix", "The Dark Knight", "Interstellar"}, titlesOf(got))
	})

	t.Run("never includes the movie itself", func(t *testing.T) {
		got, err := svc.Similar(155, 10)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		for _, m := range got {
			assert.NotEqual(t, int64(155), m.ID)
		}
	})

	t.Run("errors", func(t *testing.T) {
		_, err := svc.Similar(1, 4)
		assert.ErrorIs(t, err, movie.ErrNotFound)

		_, err = svc.Similar(155, 0)
		assert.ErrorIs(t, err, movie.ErrInvalidArgument)
	})
}

func TestService_PopularAndFeatured(t *testing.T) {
	svc := loadedService(t, fixtureMovies())

	assert.Equal(t, []string{"The Dark Knight", "Inception"}, titlesOf(svc.Popular(2)))
	assert.Len(t, svc.Popular(100), 5)
	assert.Empty(t, svc.Popular(-1))

	m, err := svc.Featured(func(n int) int {
		assert.Equal(t, 5, n)
		return 2
	})
	require.NoError(t, err)
	assert.Equal(t, "Interstellar", m.Title)

	_, err = svc.Featured(func(int) int { return 5 })
	assert.ErrorIs(t, err, movie.ErrInvalidArgument)

	m, err = svc.Featured(nil)
	require.NoError(t, err)
	assert.NotZero(t, m.ID)

	empty := loadedService(t, nil)
	_, err = empty.Featured(nil)
	assert.ErrorIs(t, err, movie.ErrNotFound)
}

func TestService_Facets(t *testing.T) {
	svc := loadedService(t, fixtureMovies())

	f := svc.Facets()

	assert.Equal(t, []string{"Action", "Adventure", "Crime", "Drama", "Mystery", "Science Fiction", "Thriller", "action"}, f.Genres)
	assert.Equal(t, []int{2020, 2014, 2010, 2008, 1999}, f.Years)
	assert.Equal(t, []int{9, 8, 7}, f.Ratings)
}
