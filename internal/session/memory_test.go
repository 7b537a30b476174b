package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumequiz/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	userID := int64(3)

	state := &models.SessionState{
		UserID:        &userID,
		MatchedSkills: []string{"Python", "SQL"},
		SkillScores:   map[string]float64{"Python": 60, "SQL": 100},
	}
	require.NoError(t, store.Save(ctx, "abc", state, time.Hour))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	got.MatchedSkills[0] = "Mutated"
	got.SkillScores["Python"] = 0
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Python", again.MatchedSkills[0])
	assert.Equal(t, 60.0, again.SkillScores["Python"])
}

func TestMemoryStoreMissingAndDeleted(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, "abc", &models.SessionState{}, time.Hour))
	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "short", &models.SessionState{}, time.Minute))
	require.NoError(t, store.Save(ctx, "long", &models.SessionState{}, time.Hour))

	now = now.Add(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get(ctx, "long")
	assert.NoError(t, err)

	require.NoError(t, store.Save(ctx, "short2", &models.SessionState{}, time.Minute))
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, store.DeleteExpired())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "s"
			if i%2 == 0 {
				id = "t"
			}
			_ = store.Save(ctx, id, &models.SessionState{MatchedSkills: []string{"Go"}}, time.Hour)
			_, _ = store.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, store.Len())
}
