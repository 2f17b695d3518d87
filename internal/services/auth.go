package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"bookingcalendar/internal/domain"
)

type authService struct {
	adminEmail   string
	passwordHash string
	checker      domain.PasswordChecker
	issuer       domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAuthService creates an AuthService for the single administrator configured
// by email and bcrypt password hash.
func NewAuthService(adminEmail, passwordHash string, checker domain.PasswordChecker, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		adminEmail:   strings.TrimSpace(strings.ToLower(adminEmail)),
		passwordHash: passwordHash,
		checker:      checker,
		issuer:       issuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if s.adminEmail == "" || s.passwordHash == "" {
		return "", domain.ErrInvalidLogin
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	// Compare the hash even when the email is wrong.
	passErr := s.checker.Compare(s.passwordHash, password)
	if !emailOK || passErr != nil {
		return "", domain.ErrInvalidLogin
	}
	token, err := s.issuer.Issue(s.adminEmail, s.adminEmail, []string{domain.AdminRole}, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
