package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviedex/internal/movie"
)

func numbered(n int) sliceCatalog {
	out := make(sliceCatalog, n)
	for i := range out {
		out[i] = movie.Movie{
			ID:          int64(i + 1),
			Title:       fmt.Sprintf("Movie %02d", i+1),
			ReleaseDate: fmt.Sprintf("%d-01-01", 1990+i),
			Rating:      float64(i%10) + 0.5,
		}
	}
	return out
}

func TestQuery_EmptySpecIsIdentity(t *testing.T) {
	c := sliceCatalog(fixtureMovies())

	page, err := Query(c, FilterSpec{}, SortSpec{Key: SortByRating}, PageSpec{Number: 1, Size: 10})
	require.NoError(t, err)

	assert.Equal(t, 5, page.TotalMatched)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.PageNumber)
	assert.Len(t, page.Items, 5)
}

func TestQuery_RatingThreshold(t *testing.T) {
	c := sliceCatalog{
		{ID: 1, Title: "one", Rating: 9.0},
		{ID: 2, Title: "two", Rating: 8.8},
		{ID: 3, Title: "three", Rating: 7.4},
		{ID: 4, Title: "four", Rating: 8.2},
	}
	threshold, err := ParseRating("8")
	require.NoError(t, err)

	page, err := Query(c, FilterSpec{MinRating: threshold}, SortSpec{Key: SortByRating}, PageSpec{Number: 1, Size: 10})
	require.NoError(t, err)

	ids := []int64{}
	for _, m := range page.Items {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int64{1, 2, 4}, ids)
}

func TestQuery_SearchAndGenre(t *testing.T) {
	c := sliceCatalog(fixtureMovies())

	page, err := Query(c, FilterSpec{SearchQuery: "the", SelectedGenres: []string{"Action"}}, SortSpec{}, PageSpec{Number: 1, Size: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"The Dark Knight", "The Matrix"}, titlesOf(page.Items))
}

func TestQuery_Pagination(t *testing.T) {
	c := numbered(25)

	tests := []struct {
		name       string
		number     int
		wantPage   int
		wantItems  int
		wantFirstT string
	}{
		{"first page", 1, 1, 10, "Movie 01"},
		{"last partial page", 3, 3, 5, "Movie 21"},
		{"past the end clamps to last", 9999, 3, 5, "Movie 21"},
		{"zero clamps to first", 0, 1, 10, "Movie 01"},
		{"negative clamps to first", -4, 1, 10, "Movie 01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Query(c, FilterSpec{}, SortSpec{Key: SortByTitle}, PageSpec{Number: tt.number, Size: 10})
			require.NoError(t, err)

			assert.Equal(t, 25, page.TotalMatched)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, tt.wantPage, page.PageNumber)
			assert.Equal(t, 10, page.PageSize)
			require.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantFirstT, page.Items[0].Title)
		})
	}
}

func TestQuery_PagesCoverSortedSequence(t *testing.T) {
	c := numbered(23)
	spec := SortSpec{Key: SortByRating}

	all, err := Query(c, FilterSpec{}, spec, PageSpec{Number: 1, Size: 100})
	require.NoError(t, err)

	var joined []movie.Movie
	for n := 1; n <= 5; n++ {
		page, err := Query(c, FilterSpec{}, spec, PageSpec{Number: n, Size: 5})
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalPages)
		joined = append(joined, page.Items...)
	}
	assert.Equal(t, all.Items, joined)
}

func TestQuery_Idempotent(t *testing.T) {
	c := numbered(17)
	f := FilterSpec{SearchQuery: "movie 1"}
	s := SortSpec{Key: SortByYear, Order: Ascending}
	p := PageSpec{Number: 2, Size: 4}

	first, err := Query(c, f, s, p)
	require.NoError(t, err)
	second, err := Query(c, f, s, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQuery_EmptyResult(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		page, err := Query(sliceCatalog{}, FilterSpec{}, SortSpec{}, PageSpec{Number: 3, Size: 10})
		require.NoError(t, err)

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Zero(t, page.TotalMatched)
		assert.Equal(t, 1, page.TotalPages)
		assert.Equal(t, 1, page.PageNumber)
	})

	t.Run("nothing matches", func(t *testing.T) {
		page, err := Query(sliceCatalog(fixtureMovies()), FilterSpec{SearchQuery: "zzz"}, SortSpec{}, PageSpec{Number: 1, Size: 10})
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestQuery_InvalidArguments(t *testing.T) {
	c := sliceCatalog(fixtureMovies())

	_, err := Query(c, FilterSpec{}, SortSpec{}, PageSpec{Number: 1, Size: 0})
	assert.ErrorIs(t, err, movie.ErrInvalidArgument)

	_, err = Query(c, FilterSpec{}, SortSpec{}, PageSpec{Number: 1, Size: -3})
	assert.ErrorIs(t, err, movie.ErrInvalidArgument)

	_, err = Query(c, FilterSpec{}, SortSpec{Key: "budget"}, PageSpec{Number: 1, Size: 10})
	assert.ErrorIs(t, err, movie.ErrInvalidArgument)
}

func TestQuery_DoesNotMutateCatalog(t *testing.T) {
	s := NewStore()
	s.Load(fixtureMovies())
	before := titlesOf(s.All())

	_, err := Query(s.Snapshot(), FilterSpec{}, SortSpec{Key: SortByRating, Order: Ascending}, PageSpec{Number: 1, Size: 2})
	require.NoError(t, err)

	assert.Equal(t, before, titlesOf(s.All()))
}

func TestBuildFacets(t *testing.T) {
	f := BuildFacets(sliceCatalog{
		{ID: 1, ReleaseDate: "2010-01-01", Rating: 8.8, Genres: []string{"Drama", "Action"}},
		{ID: 2, ReleaseDate: "2014-05-05", Rating: 4.9, Genres: []string{"Action", " "}},
		{ID: 3, ReleaseDate: "", Rating: 7.1, Genres: []string{"Comedy"}},
		{ID: 4, ReleaseDate: "2010-09-09", Rating: 8.1},
	})

	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, f.Genres)
	assert.Equal(t, []int{2014, 2010}, f.Years)
	assert.Equal(t, []int{8, 7}, f.Ratings)
}
