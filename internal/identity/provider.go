package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountNotFound    = errors.New("account not found")
)

// Account is the provider-side view of a user.
type Account struct {
	UID         string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

// Provider is the identity collaborator: it owns credentials and
// token issuance. Everything above it sees only opaque uids and
// opaque bearer tokens.
type Provider interface {
	// CreateAccount registers a new account and returns it with a
	// fresh uid. It returns ErrEmailTaken on a duplicate email.
	CreateAccount(ctx context.Context, email, password, displayName string) (*Account, error)

	// PasswordGrant verifies the email/password pair and returns a
	// bearer token. Any verification failure, unknown email included,
	// yields ErrInvalidCredentials.
	PasswordGrant(ctx context.Context, email, password string) (string, error)

	// VerifyToken resolves a bearer token to the uid it was issued
	// for, or returns ErrInvalidToken.
	VerifyToken(ctx context.Context, token string) (string, error)

	// AccountByUID fetches the provider-side account attributes.
	AccountByUID(ctx context.Context, uid string) (*Account, error)
}

// TokenVerifier is the narrow slice of Provider the authorization
// guard needs.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}
