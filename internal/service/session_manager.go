package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resumequiz/internal/models"
	"resumequiz/internal/security"
	"resumequiz/internal/session"
)

// SessionManager loads and saves workflow state around a session.Store
type SessionManager struct {
	store session.Store
	ttl   time.Duration
}

// NewSessionManager creates a session manager whose sessions live for ttl
func NewSessionManager(store session.Store, ttl time.Duration) *SessionManager {
	return &SessionManager{store: store, ttl: ttl}
}

// TTL returns the session lifetime
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Load returns the state of a session. Unknown, expired and empty IDs yield
// an empty anonymous state.
func (m *SessionManager) Load(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if sessionID == "" {
		return &models.SessionState{}, nil
	}
	state, err := m.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return &models.SessionState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return state, nil
}

// Save stores state under sessionID, refreshing its lifetime
func (m *SessionManager) Save(ctx context.Context, sessionID string, state *models.SessionState) error {
	if err := m.store.Save(ctx, sessionID, state, m.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Create stores state under a fresh session ID and returns the ID
func (m *SessionManager) Create(ctx context.Context, state *models.SessionState) (string, error) {
	sessionID := security.GenerateSessionID()
	if err := m.Save(ctx, sessionID, state); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Destroy removes a session
func (m *SessionManager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AddFlash queues a one-time message on the session. When sessionID is
// empty or unknown an anonymous session is created; the returned ID is the
// one that now holds the message.
func (m *SessionManager) AddFlash(ctx context.Context, sessionID, message string) (string, error) {
	if sessionID != "" {
		state, err := m.store.Get(ctx, sessionID)
		if err == nil {
			state.Flash = message
			return sessionID, m.Save(ctx, sessionID, state)
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return "", fmt.Errorf("failed to load session: %w", err)
		}
	}
	return m.Create(ctx, &models.SessionState{Flash: message})
}

// PopFlash returns and clears the pending message of a session
func (m *SessionManager) PopFlash(ctx context.Context, sessionID string) (string, error) {
	state, err := m.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	msg := state.PopFlash()
	if msg == "" {
		return "", nil
	}
	return msg, m.Save(ctx, sessionID, state)
}
