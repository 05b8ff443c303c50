package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviedex/internal/catalog"
	"moviedex/internal/movie"
)

const (
	similarLimit = 4
	popularLimit = 6
)

func (a *app) moviesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Query the movie catalog",
	}
	cmd.AddCommand(
		a.moviesListCmd(),
		a.moviesShowCmd(),
		a.moviesSimilarCmd(),
		a.moviesFacetsCmd(),
		a.moviesPopularCmd(),
		a.moviesFeaturedCmd(),
	)
	return cmd
}

func (a *app) moviesListCmd() *cobra.Command {
	var (
		query    string
		genres   []string
		year     string
		rating   string
		sortKey  string
		order    string
		page     int
		pageSize int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Filter, sort and page through the catalog",
		Example: `  moviedex movies list --q dark --genre Action --sort rating
  moviedex movies list --year 2010 --rating 8+ --page 2 --format table`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			minRating, err := catalog.ParseRating(rating)
			if err != nil {
				return err
			}
			key, err := catalog.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			ord, err := catalog.ParseOrder(order)
			if err != nil {
				return err
			}
			if pageSize == 0 {
				pageSize = a.cfg.PageSize
			}

			svc, err := a.catalogService(cmd.Context())
			if err != nil {
				return err
			}
			p, err := svc.Query(
				catalog.FilterSpec{SearchQuery: query, SelectedGenres: genres, SelectedYear: year, MinRating: minRating},
				catalog.SortSpec{Key: key, Order: ord},
				catalog.PageSpec{Number: page, Size: pageSize},
			)
			if err != nil {
				return err
			}
			return a.printer.Success(movieRows(p.Items), map[string]any{
				"total_matched": p.TotalMatched,
				"total_pages":   p.TotalPages,
				"page":          p.PageNumber,
				"page_size":     p.PageSize,
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&query, "q", "", "Case-insensitive title search")
	f.StringSliceVar(&genres, "genre", nil, "Genre to match (repeatable, any-of)")
	f.StringVar(&year, "year", "", "Release year prefix, e.g. 2010")
	f.StringVar(&rating, "rating", "", "Minimum rating, e.g. 8 or 7.5+")
	f.StringVar(&sortKey, "sort", "title", "Sort key: title, year or rating")
	f.StringVar(&order, "order", "", "asc or desc (default: the key's natural direction)")
	f.IntVar(&page, "page", 1, "Page number, clamped into range")
	f.IntVar(&pageSize, "page-size", 0, "Movies per page (default from config)")
	return cmd
}

func (a *app) moviesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one movie",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.catalogService(cmd.Context())
			if err != nil {
				return err
			}
			m, err := svc.SelectMovie(id)
			if err != nil {
				return err
			}
			return a.printer.Success(movieDetail(m), nil)
		},
	}
}

func (a *app) moviesSimilarCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar <id>",
		Short: "Movies sharing genres with the given one",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.catalogService(cmd.Context())
			if err != nil {
				return err
			}
			ms, err := svc.Similar(id, limit)
			if err != nil {
				return err
			}
			return a.printer.Success(movieRows(ms), nil)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", similarLimit, "Number of movies")
	return cmd
}

func (a *app) moviesFacetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Genres, years and ratings available for filtering",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalogService(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Success(facetsView(svc.Facets()), nil)
		},
	}
}

func (a *app) moviesPopularCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "The first movies of the catalog",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalogService(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Success(movieRows(svc.Popular(limit)), nil)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", popularLimit, "Number of movies")
	return cmd
}

func (a *app) moviesFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "A randomly featured movie",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalogService(cmd.Context())
			if err != nil {
				return err
			}
			m, err := svc.Featured(nil)
			if err != nil {
				return err
			}
			return a.printer.Success(movieDetail(m), nil)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id %q is not a number", movie.ErrInvalidArgument, s)
	}
	return id, nil
}

// movieRows renders as one line per movie.
type movieRows []movie.Movie

func (r movieRows) Table() ([]string, [][]string) {
	rows := make([][]string, len(r))
	for i, m := range r {
		rows[i] = []string{
			strconv.FormatInt(m.ID, 10),
			m.Title,
			yearString(m),
			strconv.FormatFloat(m.Rating, 'f', 1, 64),
			strings.Join(m.Genres, ", "),
		}
	}
	return []string{"ID", "Title", "Year", "Rating", "Genres"}, rows
}

// movieDetail renders as a field/value table.
type movieDetail movie.Movie

func (d movieDetail) Table() ([]string, [][]string) {
	m := movie.Movie(d)
	rows := [][]string{
		{"ID", strconv.FormatInt(m.ID, 10)},
		{"Title", m.Title},
		{"Released", m.ReleaseDate},
		{"Rating", strconv.FormatFloat(m.Rating, 'f', 1, 64)},
		{"Genres", strings.Join(m.Genres, ", ")},
	}
	if m.Runtime != nil {
		rows = append(rows, []string{"Runtime", fmt.Sprintf("%d min", *m.Runtime)})
	}
	if len(m.Cast) > 0 {
		names := make([]string, len(m.Cast))
		for i, c := range m.Cast {
			names[i] = c.Name
		}
		rows = append(rows, []string{"Cast", strings.Join(names, ", ")})
	}
	if m.Trailer != "" {
		rows = append(rows, []string{"Trailer", m.Trailer})
	}
	if m.Overview != "" {
		rows = append(rows, []string{"Overview", m.Overview})
	}
	return []string{"Field", "Value"}, rows
}

type facetsView catalog.Facets

func (f facetsView) Table() ([]string, [][]string) {
	years := make([]string, len(f.Years))
	for i, y := range f.Years {
		years[i] = strconv.Itoa(y)
	}
	ratings := make([]string, len(f.Ratings))
	for i, r := range f.Ratings {
		ratings[i] = strconv.Itoa(r) + "+"
	}
	return []string{"Facet", "Options"}, [][]string{
		{"Genres", strings.Join(f.Genres, ", ")},
		{"Years", strings.Join(years, ", ")},
		{"Ratings", strings.Join(ratings, ", ")},
	}
}

func yearString(m movie.Movie) string {
	if y := m.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return ""
}
