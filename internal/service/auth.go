// Package service holds the application use cases: authentication,
// bookmark writes and searches, and collection management. Handlers and
// the CLI talk to these, never to the stores directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/marks/internal/crypto"
	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/store"
)

// Denylist records revoked token ids until they expire.
type Denylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Token is a signed access token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
}

// Claims is what an authenticated request knows about its caller.
type Claims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// AuthService registers users and issues, checks and revokes tokens.
type AuthService struct {
	users   store.Users
	signKey []byte
	ttl     time.Duration
	deny    Denylist
	now     func() time.Time
}

// NewAuthService constructs an AuthService. deny must not be nil; use
// NewMemoryDenylist when no shared store is available.
func NewAuthService(users store.Users, signKey []byte, ttl time.Duration, deny Denylist) *AuthService {
	return &AuthService{users: users, signKey: signKey, ttl: ttl, deny: deny, now: time.Now}
}

// Register creates a user with a salted Argon2id password hash.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if err := domain.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: crypto.HashPassword([]byte(password), salt),
		Salt:         salt,
		Created:      s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.NewValidationError().
				Add("username", "is already taken").
				Wrap(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (Token, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return Token{}, errs.ErrUnauthorized
		}
		return Token{}, fmt.Errorf("load user: %w", err)
	}
	if !crypto.VerifyPassword([]byte(password), u.Salt, u.PasswordHash) {
		return Token{}, errs.ErrUnauthorized
	}
	return s.issue(u.ID)
}

// Lookup loads an account by username.
func (s *AuthService) Lookup(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, strings.TrimSpace(username))
}

// Authenticate validates a signed token and rejects revoked ones.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (Claims, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return Claims{}, err
	}
	revoked, err := s.deny.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return Claims{}, fmt.Errorf("check denylist: %w", err)
	}
	if revoked {
		return Claims{}, errs.ErrUnauthorized
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	claims, err := s.parse(raw)
	if err != nil {
		return err
	}
	return s.deny.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// issue creates a signed HS256 JWT for the given subject.
func (s *AuthService) issue(userID string) (Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp, UserID: userID}, nil
}

func (s *AuthService) parse(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, errs.ErrUnauthorized
	}
	var rc jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &rc, func(*jwt.Token) (any, error) {
		return s.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || rc.Subject == "" || rc.ID == "" {
		return Claims{}, errs.ErrUnauthorized
	}
	return Claims{UserID: rc.Subject, TokenID: rc.ID, ExpiresAt: rc.ExpiresAt.Time}, nil
}
