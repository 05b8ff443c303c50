package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"moviedex/internal/kvstore"
	"moviedex/internal/movie"
)

const namespace = "library"

// Catalog resolves stored ids back to movie records.
type Catalog interface {
	SelectMovie(id int64) (movie.Movie, error)
}

// Service keeps the user's movie lists. Each list is an ordered set of ids
// stored as one JSON array.
type Service struct {
	store  kvstore.Store
	logger *zap.Logger
	// mu serialises read-modify-write cycles on a list.
	mu sync.Mutex
}

func NewService(store kvstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is in the list afterwards.
func (s *Service) Toggle(ctx context.Context, list List, id int64) (bool, error) {
	var added bool
	err := s.update(ctx, list, func(ids []int64) []int64 {
		if i := slices.Index(ids, id); i >= 0 {
			return slices.Delete(ids, i, i+1)
		}
		added = true
		return append(ids, id)
	})
	return added, err
}

func (s *Service) Add(ctx context.Context, list List, id int64) error {
	return s.update(ctx, list, func(ids []int64) []int64 {
		if slices.Contains(ids, id) {
			return ids
		}
		return append(ids, id)
	})
}

func (s *Service) Remove(ctx context.Context, list List, id int64) error {
	return s.update(ctx, list, func(ids []int64) []int64 {
		return slices.DeleteFunc(ids, func(v int64) bool { return v == id })
	})
}

func (s *Service) Contains(ctx context.Context, list List, id int64) (bool, error) {
	ids, err := s.IDs(ctx, list)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// IDs returns the list in insertion order. A list never written is empty.
func (s *Service) IDs(ctx context.Context, list List) ([]int64, error) {
	if err := ValidateList(list); err != nil {
		return nil, err
	}
	return s.load(ctx, list)
}

// Movies resolves the list against the catalog. Ids the catalog no longer
// has are skipped.
func (s *Service) Movies(ctx context.Context, list List, c Catalog) ([]movie.Movie, error) {
	ids, err := s.IDs(ctx, list)
	if err != nil {
		return nil, err
	}
	out := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		m, err := c.SelectMovie(id)
		if err != nil {
			if errors.Is(err, movie.ErrNotFound) {
				s.logger.Debug("list entry not in catalog", zap.String("list", string(list)), zap.Int64("movie_id", id))
				continue
			}
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	for _, l := range Lists() {
		ids, err := s.load(ctx, l)
		if err != nil {
			return Counts{}, err
		}
		switch l {
		case Favorites:
			c.Favorites = len(ids)
		case Watchlist:
			c.Watchlist = len(ids)
		case Watched:
			c.Watched = len(ids)
		}
	}
	return c, nil
}

func (s *Service) update(ctx context.Context, list List, fn func([]int64) []int64) error {
	if err := ValidateList(list); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx, list)
	if err != nil {
		return err
	}
	ids = fn(ids)

	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, namespace, string(list), raw); err != nil {
		return fmt.Errorf("save %s: %w", list, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context, list List) ([]int64, error) {
	raw, err := s.store.Get(ctx, namespace, string(list))
	if errors.Is(err, kvstore.ErrNotFound) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", list, err)
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", list, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
