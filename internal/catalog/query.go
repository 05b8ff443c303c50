package catalog

import (
	"fmt"
	"slices"

	"moviedex/internal/movie"
)

// PageSpec asks for one page. Number is clamped into the valid range;
// Size must be positive.
type PageSpec struct {
	Number int
	Size   int
}

// Page is the view a listing renders.
type Page struct {
	Items        []movie.Movie `json:"items"`
	TotalMatched int           `json:"total_matched"`
	TotalPages   int           `json:"total_pages"`
	PageNumber   int           `json:"page"`
	PageSize     int           `json:"page_size"`
}

// Catalog is anything that can hand out its records in load order.
type Catalog interface {
	All() []movie.Movie
}

// Query filters, sorts, and paginates c. It holds no state between calls,
// so identical arguments over an unchanged catalog give identical pages.
func Query(c Catalog, f FilterSpec, s SortSpec, p PageSpec) (Page, error) {
	if p.Size <= 0 {
		return Page{}, fmt.Errorf("%w: page size must be positive, got %d", movie.ErrInvalidArgument, p.Size)
	}
	less, err := s.Comparator()
	if err != nil {
		return Page{}, err
	}

	pred := compile(f)
	matched := make([]movie.Movie, 0)
	for _, m := range c.All() {
		if pred.match(m) {
			matched = append(matched, m)
		}
	}
	slices.SortStableFunc(matched, less)

	total := len(matched)
	pages := max(1, (total+p.Size-1)/p.Size)
	number := min(max(p.Number, 1), pages)
	start := (number - 1) * p.Size
	end := min(start+p.Size, total)

	return Page{
		Items:        matched[start:end],
		TotalMatched: total,
		TotalPages:   pages,
		PageNumber:   number,
		PageSize:     p.Size,
	}, nil
}
