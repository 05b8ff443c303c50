package catalog

import "moviedex/internal/movie"

func fixtureMovies() []movie.Movie {
	return []movie.Movie{
		{ID: 155, Title: "The Dark Knight", ReleaseDate: "2008-07-16", Rating: 9.0, Genres: []string{"Drama", "Action", "Crime"}},
		{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-15", Rating: 8.8, Genres: []string{"Action", "Science Fiction"}},
		{ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-05", Rating: 8.6, Genres: []string{"Adventure", "Drama", "Science Fiction"}},
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", Rating: 8.2, Genres: []string{"action", "Science Fiction"}},
		{ID: 11324, Title: "Shutter Island", ReleaseDate: "2020-02-14", Rating: 7.4, Genres: []string{"Drama", "Thriller", "Mystery"}},
	}
}

func titlesOf(ms []movie.Movie) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func yearsOf(ms []movie.Movie) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.Year()
	}
	return out
}

// sliceCatalog lets tests query a plain slice without a Store.
type sliceCatalog []movie.Movie

func (c sliceCatalog) All() []movie.Movie { return append([]movie.Movie(nil), c...) }
