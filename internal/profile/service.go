package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"moviedex/internal/kvstore"
)

const (
	namespace = "profile"
	key       = "me"
)

// StatsSource counts the user's lists.
type StatsSource interface {
	Counts(ctx context.Context) (Stats, error)
}

type Service struct {
	store    kvstore.Store
	stats    StatsSource
	defaults Profile
	logger   *zap.Logger
}

// NewService returns defaults until the first Update is saved.
func NewService(store kvstore.Store, stats StatsSource, defaults Profile, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, stats: stats, defaults: defaults, logger: logger}
}

func (s *Service) Get(ctx context.Context) (View, error) {
	p, err := s.load(ctx)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, p)
}

func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (View, error) {
	cmd = cmd.trimmed()
	if err := Validate(cmd); err != nil {
		return View{}, err
	}

	p, err := s.load(ctx)
	if err != nil {
		return View{}, err
	}
	if !cmd.Empty() {
		p = cmd.apply(p)
		raw, err := json.Marshal(p)
		if err != nil {
			return View{}, err
		}
		if err := s.store.Put(ctx, namespace, key, raw); err != nil {
			return View{}, fmt.Errorf("save profile: %w", err)
		}
		s.logger.Info("profile updated")
	}
	return s.view(ctx, p)
}

func (s *Service) load(ctx context.Context) (Profile, error) {
	raw, err := s.store.Get(ctx, namespace, key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (s *Service) view(ctx context.Context, p Profile) (View, error) {
	stats, err := s.stats.Counts(ctx)
	if err != nil {
		return View{}, fmt.Errorf("profile stats: %w", err)
	}
	return View{Profile: p, Stats: stats}, nil
}
