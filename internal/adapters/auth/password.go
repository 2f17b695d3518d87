package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bookingcalendar/internal/domain"
)

type bcryptChecker struct{}

// NewBcryptChecker returns a PasswordChecker for bcrypt hashes such as the one in ADMIN_PASSWORD_HASH.
func NewBcryptChecker() domain.PasswordChecker {
	return bcryptChecker{}
}

func (bcryptChecker) Compare(hash, password string) error {
	if hash == "" {
		return fmt.Errorf("no password hash configured")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HashPassword returns a bcrypt hash of password, for provisioning ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
