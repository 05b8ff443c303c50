package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"moviedex/internal/movie"
)

// FilterSpec narrows a query. Zero-valued fields impose no constraint.
type FilterSpec struct {
	SearchQuery    string
	SelectedGenres []string
	SelectedYear   string
	MinRating      *float64
}

// ParseRating converts a rating threshold as typed in the UI ("8", "7.5", "9+").
// An empty string means no threshold.
func ParseRating(s string) (*float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "+")
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rating %q is not a number", movie.ErrInvalidArgument, s)
	}
	return &v, nil
}

// predicate is a FilterSpec with its strings case-folded once per query.
type predicate struct {
	query     string
	genres    map[string]struct{}
	year      string
	minRating *float64
}

func compile(f FilterSpec) predicate {
	p := predicate{
		query:     strings.ToLower(f.SearchQuery),
		year:      f.SelectedYear,
		minRating: f.MinRating,
	}
	for _, g := range f.SelectedGenres {
		if g == "" {
			continue
		}
		if p.genres == nil {
			p.genres = make(map[string]struct{}, len(f.SelectedGenres))
		}
		p.genres[strings.ToLower(g)] = struct{}{}
	}
	return p
}

func (p predicate) match(m movie.Movie) bool {
	if p.query != "" && !strings.Contains(strings.ToLower(m.Title), p.query) {
		return false
	}
	if len(p.genres) > 0 && !p.anyGenre(m.Genres) {
		return false
	}
	if p.year != "" && (m.ReleaseDate == "" || !strings.HasPrefix(m.ReleaseDate, p.year)) {
		return false
	}
	if p.minRating != nil && m.Rating < *p.minRating {
		return false
	}
	return true
}

func (p predicate) anyGenre(genres []string) bool {
	for _, g := range genres {
		if _, ok := p.genres[strings.ToLower(g)]; ok {
			return true
		}
	}
	return false
}

// Matches reports whether m satisfies every dimension of f.
func Matches(m movie.Movie, f FilterSpec) bool {
	return compile(f).match(m)
}
