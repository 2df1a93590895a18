package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/goalsetter/internal/apperr"
	"github.com/ayush/goalsetter/internal/models"
	"github.com/ayush/goalsetter/internal/store"
)

const (
	maxNameLen  = 100
	maxEmailLen = 255
)

const (
	msgMissingFields      = "Please fill in all fields"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgNotAuthorized      = "Not authorized"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Revoker tracks tokens revoked before their expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Gateway runs registration and login and resolves bearer tokens to
// caller identities.
type Gateway struct {
	users   UserStore
	hasher  *Hasher
	tokens  *TokenService
	revoked Revoker

	// compared against when the email is unknown so both login
	// failures cost one bcrypt comparison
	dummyHash string
}

func NewGateway(users UserStore, hasher *Hasher, tokens *TokenService, revoked Revoker) (*Gateway, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("goalsetter-dummy-password"), hasher.cost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &Gateway{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		revoked:   revoked,
		dummyHash: string(dummy),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and issues its first token.
func (g *Gateway) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, "", apperr.Validation(msgMissingFields)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return nil, "", apperr.Validation("Name is too long (max 100 characters)")
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return nil, "", apperr.Validation("Email is too long (max 255 characters)")
	}

	_, err := g.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, "", apperr.Conflict(msgUserExists)
	case !errors.Is(err, store.ErrNotFound):
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := g.hasher.Hash(ctx, req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", apperr.Validation("Password must not exceed 72 bytes")
		}
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := g.users.CreateUser(ctx, name, email, hashed)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperr.Conflict(msgUserExists).Wrap(err)
		}
		return nil, "", err
	}
	user.Password = ""

	token, _, err := g.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

// Login checks credentials and issues a fresh token. Unknown email and
// wrong password fail with the same error.
func (g *Gateway) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", apperr.Validation(msgMissingFields)
	}

	user, err := g.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("lookup user: %w", err)
		}
		if _, err := g.hasher.Compare(ctx, g.dummyHash, req.Password); err != nil {
			return "", err
		}
		return "", apperr.BadCredentials(msgInvalidCredentials)
	}

	ok, err := g.hasher.Compare(ctx, user.Password, req.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.BadCredentials(msgInvalidCredentials)
	}

	token, _, err := g.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResolveIdentity validates a bearer token and loads the user it names.
func (g *Gateway) ResolveIdentity(ctx context.Context, token string) (models.Identity, error) {
	_, user, err := g.resolve(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}
	return user.Identity(), nil
}

func (g *Gateway) resolve(ctx context.Context, token string) (*Claims, *models.User, error) {
	claims, err := g.tokens.Parse(token)
	if err != nil {
		slog.DebugContext(ctx, "token rejected", "error", err)
		return nil, nil, apperr.Unauthenticated(msgNotAuthorized).Wrap(err)
	}

	if g.revoked != nil && claims.ID != "" {
		revoked, err := g.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, err
		}
		if revoked {
			return nil, nil, apperr.Unauthenticated(msgNotAuthorized)
		}
	}

	user, err := g.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.Unauthenticated(msgNotAuthorized).Wrap(err)
		}
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	return claims, user, nil
}

// Profile re-reads the caller's current public fields.
func (g *Gateway) Profile(ctx context.Context, caller models.Identity) (*models.User, error) {
	user, err := g.users.GetUserByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthenticated(msgNotAuthorized).Wrap(err)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// Logout revokes the presented token until its expiry. Other tokens of
// the same user are unaffected.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	claims, _, err := g.resolve(ctx, token)
	if err != nil {
		return err
	}
	if g.revoked == nil {
		return nil
	}
	return g.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(g.tokens.now()))
}
