package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"spellathon/internal/config"
	"spellathon/internal/models"
	"spellathon/internal/security"
	"spellathon/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAdministrator   = errors.New("not the administrator account")
)

// UserStore is the slice of the user manager the auth service needs.
type UserStore interface {
	Add(user *models.User) (bool, error)
	Retrieve(username string) (*models.User, error)
	Commit() error
}

// AuthService handles registration, login, and administrator
// authorisation.
type AuthService struct {
	users     UserStore
	tokens    *security.TokenIssuer
	adminFile string
	logger    *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users UserStore, tokens *security.TokenIssuer, adminFile string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		adminFile: adminFile,
		logger:    logger,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(username, realName, password, confirm, birthday, photo string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(realName); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if password != confirm {
		return nil, validation.ValidationError{Field: "password", Message: "passwords do not match"}
	}
	if err := validation.ValidateBirthday(birthday); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, realName, hash, birthday, photo)
	added, err := s.users.Add(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if !added {
		return nil, ErrUsernameTaken
	}
	if err := s.users.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit new user: %w", err)
	}

	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Login authenticates a user by username and password. The error does
// not reveal which of the two was wrong.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.users.Retrieve(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AdminConfigured reports whether an administrator account has been
// designated yet. False triggers the admin-creation flow in the front
// end.
func (s *AuthService) AdminConfigured() (bool, error) {
	admin, err := config.GetAdmin(s.adminFile)
	if err != nil {
		return false, err
	}
	return admin != "", nil
}

// CreateAdmin registers a new account and designates it the
// administrator.
func (s *AuthService) CreateAdmin(username, realName, password, confirm, birthday string) (*models.User, error) {
	user, err := s.Register(username, realName, password, confirm, birthday, "")
	if err != nil {
		return nil, err
	}
	if err := config.SetAdmin(s.adminFile, username); err != nil {
		return nil, err
	}
	s.logger.Info("administrator configured", zap.String("username", username))
	return user, nil
}

// Authorise checks the credentials against the designated administrator
// account and issues a short-lived admin token on success.
func (s *AuthService) Authorise(username, password string) (string, error) {
	admin, err := config.GetAdmin(s.adminFile)
	if err != nil {
		return "", err
	}
	if admin == "" || username != admin {
		return "", ErrNotAdministrator
	}

	if _, err := s.Login(username, password); err != nil {
		return "", err
	}

	return s.tokens.Issue(username, true)
}

// VerifyAdmin validates an admin token and returns its claims.
func (s *AuthService) VerifyAdmin(token string) (*security.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if !claims.Admin {
		return nil, ErrNotAdministrator
	}
	return claims, nil
}
