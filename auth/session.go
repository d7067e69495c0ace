// Package auth issues and verifies the signed sessions identifying the
// current user and role.
package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/store"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// the two cases are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session identifies a signed-in user for the duration of a request.
type Session struct {
	UserID    string
	Role      string
	Token     string
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Store is the slice of the persistence gateway the manager needs.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateLoginToken(ctx context.Context, token *models.LoginToken) error
	GetLoginToken(ctx context.Context, token string) (*models.LoginToken, error)
	DeleteLoginToken(ctx context.Context, token string) error
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(s Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: s, secret: []byte(secret), ttl: ttl}
}

// Authenticate verifies the password digest and issues a session.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return m.Issue(ctx, user)
}

// Issue signs a token for the user and records it so Revoke can invalidate
// it before the token itself expires.
func (m *Manager) Issue(ctx context.Context, user *models.User) (*Session, error) {
	expiresAt := time.Now().Add(m.ttl)
	token, err := signToken(m.secret, user.ID, user.Role, expiresAt)
	if err != nil {
		return nil, err
	}

	err = m.store.CreateLoginToken(ctx, &models.LoginToken{
		Token:          token,
		UserID:         user.ID,
		Role:           user.Role,
		ExpirationTime: expiresAt,
	})
	if err != nil {
		return nil, err
	}

	return &Session{UserID: user.ID, Role: user.Role, Token: token, ExpiresAt: expiresAt}, nil
}

// Verify returns the session for a token that is well signed, unexpired and
// not revoked.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Session, error) {
	userID, role, err := parseToken(m.secret, tokenString)
	if err != nil {
		return nil, err
	}

	loginToken, err := m.store.GetLoginToken(ctx, tokenString)
	if err != nil {
		return nil, errInvalidToken
	}
	if time.Now().After(loginToken.ExpirationTime) {
		return nil, errInvalidToken
	}

	return &Session{
		UserID:    userID,
		Role:      role,
		Token:     tokenString,
		ExpiresAt: loginToken.ExpirationTime,
	}, nil
}

// Revoke deletes the server-side token record (sign-out).
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	return m.store.DeleteLoginToken(ctx, tokenString)
}

// HashPassword produces the bcrypt digest stored in place of the plaintext.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}
