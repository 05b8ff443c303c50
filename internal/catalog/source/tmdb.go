package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"moviedex/internal/movie"
	"moviedex/internal/platform/tmdb"
)

//go:generate mockgen -source=tmdb.go -destination=mocks/mock_tmdb.go -package=mocks

// TMDBClient is the part of the TMDb API the catalog needs.
type TMDBClient interface {
	Popular(ctx context.Context, page int) (*tmdb.PopularPage, error)
	Details(ctx context.Context, id int64) (*tmdb.Details, error)
	Credits(ctx context.Context, id int64) (*tmdb.Credits, error)
	Videos(ctx context.Context, id int64) (*tmdb.Videos, error)
}

const (
	defaultTMDBLimit = 50
	castLimit        = 5
)

// TMDB builds the catalog from TMDb's popular list, one detail lookup per
// movie.
type TMDB struct {
	client TMDBClient
	limit  int
	logger *zap.Logger
}

func NewTMDB(client TMDBClient, limit int, logger *zap.Logger) *TMDB {
	if limit <= 0 {
		limit = defaultTMDBLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TMDB{client: client, limit: limit, logger: logger}
}

func (s *TMDB) Movies(ctx context.Context) ([]movie.Movie, error) {
	ids, err := s.popularIDs(ctx)
	if err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		m, err := s.movie(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("skipping movie", zap.Int64("tmdb_id", id), zap.Error(err))
			continue
		}
		movies = append(movies, m)
	}
	s.logger.Info("tmdb fetch complete", zap.Int("requested", len(ids)), zap.Int("fetched", len(movies)))
	return movies, nil
}

func (s *TMDB) popularIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for page := 1; len(ids) < s.limit; page++ {
		res, err := s.client.Popular(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("popular page %d: %w", page, err)
		}
		for _, r := range res.Results {
			ids = append(ids, r.ID)
		}
		if len(res.Results) == 0 || page >= res.TotalPages {
			break
		}
	}
	return ids[:min(len(ids), s.limit)], nil
}

// movie needs the details call to succeed; credits and videos only enrich
// the record.
func (s *TMDB) movie(ctx context.Context, id int64) (movie.Movie, error) {
	d, err := s.client.Details(ctx, id)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("details: %w", err)
	}

	m := movie.Movie{
		ID:          d.ID,
		Title:       d.Title,
		ReleaseDate: d.ReleaseDate,
		Rating:      d.VoteAverage,
		Runtime:     d.Runtime,
		Overview:    d.Overview,
		Poster:      tmdb.ImageURL("w500", d.PosterPath),
		Backdrop:    tmdb.ImageURL("original", d.BackdropPath),
		Genres:      make([]string, 0, len(d.Genres)),
	}
	for _, g := range d.Genres {
		m.Genres = append(m.Genres, g.Name)
	}

	if credits, err := s.client.Credits(ctx, id); err != nil {
		s.logger.Warn("credits unavailable", zap.Int64("tmdb_id", id), zap.Error(err))
	} else {
		for _, c := range credits.Cast[:min(len(credits.Cast), castLimit)] {
			m.Cast = append(m.Cast, movie.CastMember{
				ID:        c.ID,
				Name:      c.Name,
				Character: c.Character,
				Image:     tmdb.ImageURL("w200", c.ProfilePath),
			})
		}
	}

	if videos, err := s.client.Videos(ctx, id); err != nil {
		s.logger.Warn("videos unavailable", zap.Int64("tmdb_id", id), zap.Error(err))
	} else {
		m.Trailer = tmdb.TrailerURL(videos.Results)
	}
	return m, nil
}
