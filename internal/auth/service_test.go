package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moviedex/internal/auth"
	"moviedex/internal/kvstore"
	"moviedex/internal/kvstore/mocks"
	"moviedex/internal/platform/crypto"
)

const testSecret = "test-secret-key"

func newService(t *testing.T, store kvstore.Store, ttl time.Duration) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(testSecret, ttl, auth.Account{Email: auth.DefaultDemoEmail, Name: "Admin"}, store, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestService_LoginLogout(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, kvstore.NewMemory(), time.Hour)

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	sess, err := svc.Login(ctx, "Admin@Test.com ", auth.DefaultDemoPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.NotEmpty(t, sess.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	u, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth.DefaultDemoEmail, u.Email)
	assert.Equal(t, "Admin", u.Name)
	assert.Equal(t, sess.UserID, u.ID)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	assert.NoError(t, svc.Logout(ctx))
}

func TestService_LoginRejected(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, kvstore.NewMemory(), time.Hour)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", auth.DefaultDemoEmail, "87654321"},
		{"wrong email", "someone@test.com", auth.DefaultDemoPassword},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, auth.ErrUnauthorized)
		})
	}
}

func TestService_ConfiguredHash(t *testing.T) {
	hash, err := crypto.HashPassword("s3cret-pass")
	require.NoError(t, err)
	svc, err := auth.NewService(testSecret, time.Hour, auth.Account{Email: "me@example.com", PasswordHash: hash}, kvstore.NewMemory(), nil)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "me@example.com", "s3cret-pass")
	assert.NoError(t, err)
	_, err = svc.Login(context.Background(), "me@example.com", auth.DefaultDemoPassword)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestService_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := newService(t, store, time.Hour)

	token, jti, err := crypto.GenerateToken(testSecret, auth.Account{Email: auth.DefaultDemoEmail}.ID(), auth.DefaultDemoEmail, -time.Minute)
	require.NoError(t, err)
	raw, _ := json.Marshal(auth.Session{Token: token, JTI: jti})
	require.NoError(t, store.Put(ctx, "auth", "session", raw))

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = store.Get(ctx, "auth", "session")
	assert.ErrorIs(t, err, kvstore.ErrNotFound, "stale session should be removed")
}

func TestService_TamperedSession(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := newService(t, store, time.Hour)

	token, jti, err := crypto.GenerateToken("another-secret", "x", auth.DefaultDemoEmail, time.Hour)
	require.NoError(t, err)
	raw, _ := json.Marshal(auth.Session{Token: token, JTI: jti})
	require.NoError(t, store.Put(ctx, "auth", "session", raw))

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestService_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	boom := errors.New("connection reset")

	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Put(ctx, "auth", "session", gomock.Any()).Return(boom)
	store.EXPECT().Get(ctx, "auth", "session").Return(nil, boom)

	svc := newService(t, store, time.Hour)

	_, err := svc.Login(ctx, auth.DefaultDemoEmail, auth.DefaultDemoPassword)
	assert.ErrorIs(t, err, boom)

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, auth.ErrUnauthorized)
}

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := auth.NewService("", time.Hour, auth.Account{}, kvstore.NewMemory(), nil)
	assert.Error(t, err)
}

func TestAccount_IDIsStable(t *testing.T) {
	a := auth.Account{Email: "admin@test.com"}
	assert.Equal(t, a.ID(), auth.Account{Email: "admin@test.com"}.ID())
	assert.NotEqual(t, a.ID(), auth.Account{Email: "other@test.com"}.ID())
}
