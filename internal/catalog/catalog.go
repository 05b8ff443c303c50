package catalog

import (
	"fmt"
	"slices"
	"sync/atomic"

	"moviedex/internal/movie"
)

// State is the loading lifecycle of a Store.
type State int32

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Snapshot is an immutable, de-duplicated view of the catalog.
type Snapshot struct {
	movies []movie.Movie
	index  map[int64]int
}

// newSnapshot keeps one record per id. The surviving record is the last one
// seen for that id, placed where the id first appeared.
func newSnapshot(records []movie.Movie) (*Snapshot, int) {
	index := make(map[int64]int, len(records))
	out := make([]movie.Movie, 0, len(records))
	for _, m := range records {
		if i, ok := index[m.ID]; ok {
			out[i] = m
			continue
		}
		index[m.ID] = len(out)
		out = append(out, m)
	}
	return &Snapshot{movies: out, index: index}, len(records) - len(out)
}

// All returns the records in load order. The slice is a copy.
func (s *Snapshot) All() []movie.Movie {
	return slices.Clone(s.movies)
}

func (s *Snapshot) Len() int {
	return len(s.movies)
}

// ByID returns movie.ErrNotFound for unknown ids.
func (s *Snapshot) ByID(id int64) (movie.Movie, error) {
	i, ok := s.index[id]
	if !ok {
		return movie.Movie{}, fmt.Errorf("%w: id %d", movie.ErrNotFound, id)
	}
	return s.movies[i], nil
}

// Store holds the current Snapshot. Load swaps the whole snapshot at once so
// readers observe either the old or the new catalog, never a mix.
type Store struct {
	snap  atomic.Pointer[Snapshot]
	state atomic.Int32
}

func NewStore() *Store {
	s := &Store{}
	s.snap.Store(&Snapshot{index: map[int64]int{}})
	return s
}

// Load replaces the catalog and returns how many duplicate records were dropped.
// An empty input is valid and yields an empty catalog.
func (s *Store) Load(records []movie.Movie) int {
	snap, dropped := newSnapshot(records)
	s.snap.Store(snap)
	s.state.Store(int32(StateReady))
	return dropped
}

// Snapshot returns the snapshot current at the time of the call.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

func (s *Store) All() []movie.Movie {
	return s.Snapshot().All()
}

func (s *Store) ByID(id int64) (movie.Movie, error) {
	return s.Snapshot().ByID(id)
}

func (s *Store) Len() int {
	return s.Snapshot().Len()
}

func (s *Store) State() State {
	return State(s.state.Load())
}

func (s *Store) setState(st State) {
	s.state.Store(int32(st))
}
