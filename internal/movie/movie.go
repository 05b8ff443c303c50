package movie

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when a movie id is absent from the catalog.
	ErrNotFound = errors.New("movie not found")
	// ErrInvalidArgument is returned for malformed query parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CastMember is a billed actor shown on the detail page.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Movie is one catalog record. Records are read-only once loaded.
type Movie struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	ReleaseDate string       `json:"releaseDate,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	Genres      []string     `json:"genres,omitempty"`
	Poster      string       `json:"poster,omitempty"`
	Backdrop    string       `json:"backdrop,omitempty"`
	Overview    string       `json:"overview,omitempty"`
	Runtime     *int         `json:"runtime,omitempty"`
	Cast        []CastMember `json:"cast,omitempty"`
	Trailer     string       `json:"trailer,omitempty"`
}

// Year returns the integer before the first "-" of ReleaseDate, or 0 when
// the date is missing or does not start with a number.
func (m Movie) Year() int {
	if m.ReleaseDate == "" {
		return 0
	}
	head, _, _ := strings.Cut(m.ReleaseDate, "-")
	y, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0
	}
	return y
}
