package session

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"resumequiz/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired session IDs
var ErrSessionNotFound = errors.New("session not found")

// Store keeps workflow state keyed by session ID
type Store interface {
	Get(ctx context.Context, id string) (*models.SessionState, error)
	Save(ctx context.Context, id string, state *models.SessionState, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

func clone(state *models.SessionState) *models.SessionState {
	out := &models.SessionState{Flash: state.Flash}
	if state.UserID != nil {
		id := *state.UserID
		out.UserID = &id
	}
	if state.MatchedSkills != nil {
		out.MatchedSkills = slices.Clone(state.MatchedSkills)
	}
	if state.SkillScores != nil {
		out.SkillScores = maps.Clone(state.SkillScores)
	}
	return out
}
