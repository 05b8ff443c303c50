package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	DefaultDemoEmail    = "admin@test.com"
	DefaultDemoPassword = "12345678"
)

// Account is the single demo login. PasswordHash is a bcrypt hash.
type Account struct {
	Email        string
	PasswordHash string
	Name         string
}

// ID derives a stable user id from the account email.
func (a Account) ID() string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+a.Email)).String()
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is what Login persists and Current reads back.
type Session struct {
	Token     string    `json:"token"`
	JTI       string    `json:"jti"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
