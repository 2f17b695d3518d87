package domain

import (
	"context"
	"time"
)

// AdminRole is the only role issued by this service.
const AdminRole = "admin"

// PasswordChecker compares a plaintext password with a stored hash.
type PasswordChecker interface {
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// AuthService authenticates the configured administrator.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}
