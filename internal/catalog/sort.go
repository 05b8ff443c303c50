package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"moviedex/internal/movie"
)

type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByYear   SortKey = "year"
	SortByRating SortKey = "rating"
)

type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// SortSpec selects a comparator. An empty Key sorts by title; an empty Order
// uses the key's base direction.
type SortSpec struct {
	Key   SortKey
	Order Order
}

// Comparator orders two movies the way slices.SortStableFunc expects.
type Comparator func(a, b movie.Movie) int

type sortEntry struct {
	base Order
	// newCmp builds a comparator in the base direction. Collators are not safe
	// for concurrent use, so every sort gets its own.
	newCmp func() Comparator
}

var registry = map[SortKey]sortEntry{
	SortByTitle: {base: Ascending, newCmp: titleComparator},
	SortByYear: {base: Descending, newCmp: func() Comparator {
		return func(a, b movie.Movie) int { return cmp.Compare(b.Year(), a.Year()) }
	}},
	SortByRating: {base: Descending, newCmp: func() Comparator {
		return func(a, b movie.Movie) int { return cmp.Compare(b.Rating, a.Rating) }
	}},
}

func titleComparator() Comparator {
	c := collate.New(language.English)
	return func(a, b movie.Movie) int { return c.CompareString(a.Title, b.Title) }
}

// SortKeys lists the registered keys.
func SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// BaseOrder is the direction a key sorts in before any Order is applied:
// ascending for title, newest/highest first for year and rating.
func BaseOrder(key SortKey) (Order, error) {
	e, ok := registry[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown sort key %q", movie.ErrInvalidArgument, key)
	}
	return e.base, nil
}

// ParseSortKey accepts the registered key names, case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortByTitle, nil
	}
	if _, ok := registry[k]; !ok {
		return "", fmt.Errorf("%w: unknown sort key %q", movie.ErrInvalidArgument, s)
	}
	return k, nil
}

// ParseOrder accepts asc/ascending and desc/descending. Empty means the key's
// base direction and is returned as "".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: unknown sort order %q", movie.ErrInvalidArgument, s)
	}
}

// Comparator resolves s into a comparator already oriented for s.Order.
// The non-base direction swaps the arguments instead of reversing the output,
// so equal records keep their input order either way.
func (s SortSpec) Comparator() (Comparator, error) {
	key := s.Key
	if key == "" {
		key = SortByTitle
	}
	e, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort key %q", movie.ErrInvalidArgument, s.Key)
	}
	order := s.Order
	if order == "" {
		order = e.base
	}
	if order != Ascending && order != Descending {
		return nil, fmt.Errorf("%w: unknown sort order %q", movie.ErrInvalidArgument, s.Order)
	}
	c := e.newCmp()
	if order != e.base {
		return func(a, b movie.Movie) int { return c(b, a) }, nil
	}
	return c, nil
}

// Sort stable-sorts movies in place.
func Sort(movies []movie.Movie, spec SortSpec) error {
	c, err := spec.Comparator()
	if err != nil {
		return err
	}
	slices.SortStableFunc(movies, c)
	return nil
}
