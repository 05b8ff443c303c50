package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"moviedex/internal/kvstore"
	"moviedex/internal/platform/crypto"
)

const (
	namespace  = "auth"
	sessionKey = "session"
)

type Service struct {
	secret  string
	ttl     time.Duration
	account Account
	store   kvstore.Store
	logger  *zap.Logger
}

// NewService hashes DefaultDemoPassword when the account carries no hash.
func NewService(secret string, ttl time.Duration, account Account, store kvstore.Store, logger *zap.Logger) (*Service, error) {
	if secret == "" {
		return nil, errors.New("auth: empty JWT secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if account.Email == "" {
		account.Email = DefaultDemoEmail
	}
	if account.PasswordHash == "" {
		hash, err := crypto.HashPassword(DefaultDemoPassword)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		account.PasswordHash = hash
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{secret: secret, ttl: ttl, account: account, store: store, logger: logger}, nil
}

func (s *Service) user() User {
	return User{ID: s.account.ID(), Email: s.account.Email, Name: s.account.Name}
}

// Login checks the credentials against the demo account and stores a new
// session, replacing any previous one.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.account.Email) || !crypto.VerifyPassword(s.account.PasswordHash, password) {
		s.logger.Info("login rejected", zap.String("email", email))
		return Session{}, ErrUnauthorized
	}

	u := s.user()
	token, jti, err := crypto.GenerateToken(s.secret, u.ID, u.Email, s.ttl)
	if err != nil {
		return Session{}, err
	}
	sess := Session{Token: token, JTI: jti, UserID: u.ID, ExpiresAt: time.Now().Add(s.ttl).UTC()}

	raw, err := json.Marshal(sess)
	if err != nil {
		return Session{}, err
	}
	if err := s.store.Put(ctx, namespace, sessionKey, raw); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("login", zap.String("user_id", u.ID), zap.String("jti", jti))
	return sess, nil
}

// Logout drops the stored session. Logging out twice is not an error.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, namespace, sessionKey); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Current returns the logged-in user. An expired or tampered session is
// removed and reported as ErrUnauthorized.
func (s *Service) Current(ctx context.Context) (User, error) {
	raw, err := s.store.Get(ctx, namespace, sessionKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return User{}, ErrUnauthorized
	}
	if err != nil {
		return User{}, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return User{}, s.dropSession(ctx, err)
	}
	claims, err := crypto.ParseToken(s.secret, sess.Token)
	if err != nil {
		return User{}, s.dropSession(ctx, err)
	}
	u := s.user()
	if claims.Sub != u.ID || claims.ID != sess.JTI {
		return User{}, s.dropSession(ctx, errors.New("session does not match token"))
	}
	return u, nil
}

func (s *Service) dropSession(ctx context.Context, cause error) error {
	s.logger.Info("discarding session", zap.Error(cause))
	if err := s.store.Delete(ctx, namespace, sessionKey); err != nil {
		s.logger.Warn("delete stale session", zap.Error(err))
	}
	return ErrUnauthorized
}
