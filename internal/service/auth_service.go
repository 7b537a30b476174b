package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resumequiz/internal/logger"
	"resumequiz/internal/metrics"
	"resumequiz/internal/models"
	"resumequiz/internal/repository"
	"resumequiz/internal/security"
	"resumequiz/internal/validation"
)

// UserStore is the credential store used by AuthService
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles registration, login and logout
type AuthService struct {
	users    UserStore
	sessions *SessionManager
	log      logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, sessions *SessionManager, log logger.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)

	existing, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		metrics.AuthEvents.WithLabelValues("register", "duplicate").Inc()
		return nil, ErrDuplicateUsername
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// a concurrent registration can still win between the check and the insert
	user, err := s.users.CreateUser(ctx, username, passwordHash)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		metrics.AuthEvents.WithLabelValues("register", "duplicate").Inc()
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.AuthEvents.WithLabelValues("register", "ok").Inc()
	s.log.Info("user registered", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// Login verifies credentials and starts a fresh session for the user. The
// previous session, if any, is discarded.
func (s *AuthService) Login(ctx context.Context, previousSessionID, username, password string) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		metrics.AuthEvents.WithLabelValues("login", "invalid").Inc()
		return "", nil, ErrInvalidCredentials
	}

	if err := s.sessions.Destroy(ctx, previousSessionID); err != nil {
		s.log.Warn("failed to discard previous session", map[string]interface{}{"error": err})
	}

	userID := user.ID
	sessionID, err := s.sessions.Create(ctx, &models.SessionState{UserID: &userID})
	if err != nil {
		return "", nil, err
	}

	metrics.AuthEvents.WithLabelValues("login", "ok").Inc()
	s.log.Info("user logged in", map[string]interface{}{"user_id": user.ID})
	return sessionID, user, nil
}

// Logout ends the session along with its matched skills and scores. It
// never fails; a store error is only logged.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.log.Warn("failed to delete session on logout", map[string]interface{}{"error": err})
	}
	metrics.AuthEvents.WithLabelValues("logout", "ok").Inc()
}
