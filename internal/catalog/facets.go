package catalog

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"moviedex/internal/movie"
)

// minFacetRating is the lowest rating offered as a filter option.
const minFacetRating = 5

// Facets are the option lists a filter bar offers for the current catalog.
type Facets struct {
	Genres  []string `json:"genres"`
	Years   []int    `json:"years"`
	Ratings []int    `json:"ratings"`
}

// BuildFacets collects distinct genres (sorted), years (newest first) and
// floored ratings of at least 5 (highest first).
func BuildFacets(c Catalog) Facets {
	genres := map[string]struct{}{}
	years := map[int]struct{}{}
	ratings := map[int]struct{}{}
	for _, m := range c.All() {
		for _, g := range m.Genres {
			if g = strings.TrimSpace(g); g != "" {
				genres[g] = struct{}{}
			}
		}
		if y := m.Year(); y > 0 {
			years[y] = struct{}{}
		}
		if m.Rating > 0 {
			if r := int(math.Floor(m.Rating)); r >= minFacetRating {
				ratings[r] = struct{}{}
			}
		}
	}

	f := Facets{
		Genres:  make([]string, 0, len(genres)),
		Years:   make([]int, 0, len(years)),
		Ratings: make([]int, 0, len(ratings)),
	}
	for g := range genres {
		f.Genres = append(f.Genres, g)
	}
	for y := range years {
		f.Years = append(f.Years, y)
	}
	for r := range ratings {
		f.Ratings = append(f.Ratings, r)
	}
	slices.Sort(f.Genres)
	slices.SortFunc(f.Years, func(a, b int) int { return cmp.Compare(b, a) })
	slices.SortFunc(f.Ratings, func(a, b int) int { return cmp.Compare(b, a) })
	return f
}

// similar ranks the other movies by how many genres they share with target,
// then by rating. Movies sharing nothing still fill the list after the rest.
func similar(c Catalog, target movie.Movie, n int) []movie.Movie {
	own := make(map[string]struct{}, len(target.Genres))
	for _, g := range target.Genres {
		own[strings.ToLower(g)] = struct{}{}
	}

	type scored struct {
		m      movie.Movie
		shared int
	}
	var candidates []scored
	for _, m := range c.All() {
		if m.ID == target.ID {
			continue
		}
		shared := 0
		for _, g := range m.Genres {
			if _, ok := own[strings.ToLower(g)]; ok {
				shared++
			}
		}
		candidates = append(candidates, scored{m: m, shared: shared})
	}
	slices.SortStableFunc(candidates, func(a, b scored) int {
		if d := cmp.Compare(b.shared, a.shared); d != 0 {
			return d
		}
		return cmp.Compare(b.m.Rating, a.m.Rating)
	})

	n = min(n, len(candidates))
	out := make([]movie.Movie, 0, n)
	for _, s := range candidates[:n] {
		out = append(out, s.m)
	}
	return out
}
