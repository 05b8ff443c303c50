package library

import (
	"errors"
	"fmt"
	"strings"
)

type List string

const (
	Favorites List = "favorites"
	Watchlist List = "watchlist"
	Watched   List = "watched"
)

var ErrInvalidList = errors.New("invalid list")

// Lists returns every list in display order.
func Lists() []List {
	return []List{Favorites, Watchlist, Watched}
}

func ParseList(s string) (List, error) {
	l := List(strings.ToLower(strings.TrimSpace(s)))
	if err := ValidateList(l); err != nil {
		return "", err
	}
	return l, nil
}

func ValidateList(l List) error {
	switch l {
	case Favorites, Watchlist, Watched:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidList, string(l))
	}
}

// Counts is the number of entries in each list.
type Counts struct {
	Favorites int `json:"favorites"`
	Watchlist int `json:"watchlist"`
	Watched   int `json:"watched"`
}
