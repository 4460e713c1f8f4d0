package services

import (
	"errors"
	"fmt"

	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/app/repositories"
	"github.com/vendixlabs/vendix/pkg/auth"
	"github.com/vendixlabs/vendix/pkg/logger"
)

// ErrInvalidCredentials is returned on a bad username/password pair.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// AuthService manages the single operator account. The very first login
// on a fresh install creates the account with whatever credentials were
// entered; every later login verifies against the stored hash.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Login authenticates (or, on first use, creates) the operator account.
// On success it opens the session flag and issues a JWT. created reports
// whether this call provisioned the account.
func (s *AuthService) Login(username, password string) (token string, created bool, err error) {
	if username == "" || password == "" {
		return "", false, ErrInvalidCredentials
	}

	if !s.users.Exists() {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return "", false, fmt.Errorf("auth: hash password: %w", err)
		}
		user := models.User{Username: username, PasswordHash: hash}
		if err := s.users.Save(user); err != nil {
			return "", false, fmt.Errorf("auth: create account: %w", err)
		}
		created = true
		logger.Info("auth: operator account created", "username", username)
	} else {
		user, err := s.users.Find()
		if err != nil {
			return "", false, err
		}
		if user.Username != username || !auth.CheckPassword(user.PasswordHash, password) {
			return "", false, ErrInvalidCredentials
		}
	}

	if err := s.users.OpenSession(); err != nil {
		return "", false, err
	}
	token, err = auth.GenerateToken(username)
	if err != nil {
		return "", false, fmt.Errorf("auth: issue token: %w", err)
	}
	return token, created, nil
}

// Logout closes the session.
func (s *AuthService) Logout() error {
	return s.users.CloseSession()
}

// LoggedIn reports whether a session flag is present.
func (s *AuthService) LoggedIn() bool {
	return s.users.SessionOpen()
}
