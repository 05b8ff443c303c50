package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"moviedex/internal/movie"
)

// Source supplies the raw records a catalog is built from.
type Source interface {
	Movies(ctx context.Context) ([]movie.Movie, error)
}

// Service is the read side of the movie catalog: it loads the Store from a
// Source and answers queries against its current snapshot.
type Service struct {
	store  *Store
	source Source
	logger *zap.Logger
}

func NewService(store *Store, source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, source: source, logger: logger}
}

// Load fetches the records from the source and replaces the catalog.
// On failure the previous snapshot stays readable and the state is failed.
func (s *Service) Load(ctx context.Context) error {
	s.store.setState(StateLoading)
	records, err := s.source.Movies(ctx)
	if err != nil {
		s.store.setState(StateFailed)
		s.logger.Error("catalog load failed", zap.Error(err))
		return fmt.Errorf("load catalog: %w", err)
	}

	dropped := s.store.Load(records)
	if dropped > 0 {
		s.logger.Warn("duplicate movie ids dropped", zap.Int("dropped", dropped))
	}
	s.logger.Info("catalog loaded", zap.Int("movies", s.store.Len()))
	return nil
}

func (s *Service) State() State {
	return s.store.State()
}

// Query runs the pipeline over one snapshot.
func (s *Service) Query(f FilterSpec, sort SortSpec, p PageSpec) (Page, error) {
	return Query(s.store.Snapshot(), f, sort, p)
}

// SelectMovie resolves a single record for a detail view. It does not touch
// any listing state.
func (s *Service) SelectMovie(id int64) (movie.Movie, error) {
	return s.store.ByID(id)
}

// Similar returns up to n movies that share genres with the movie id.
func (s *Service) Similar(id int64, n int) ([]movie.Movie, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", movie.ErrInvalidArgument, n)
	}
	snap := s.store.Snapshot()
	target, err := snap.ByID(id)
	if err != nil {
		return nil, err
	}
	return similar(snap, target, n), nil
}

func (s *Service) Facets() Facets {
	return BuildFacets(s.store.Snapshot())
}

// Popular returns the first n records in load order.
func (s *Service) Popular(n int) []movie.Movie {
	all := s.store.All()
	return all[:min(max(n, 0), len(all))]
}

// Featured picks one record. pick receives the catalog size and returns an
// index; nil picks uniformly at random.
func (s *Service) Featured(pick func(n int) int) (movie.Movie, error) {
	all := s.store.All()
	if len(all) == 0 {
		return movie.Movie{}, fmt.Errorf("%w: catalog is empty", movie.ErrNotFound)
	}
	if pick == nil {
		pick = rand.IntN
	}
	i := pick(len(all))
	if i < 0 || i >= len(all) {
		return movie.Movie{}, fmt.Errorf("%w: featured index %d out of range", movie.ErrInvalidArgument, i)
	}
	return all[i], nil
}
