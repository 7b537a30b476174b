package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumequiz/internal/config"
	"resumequiz/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	store, err := NewRedisStore(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)
	userID := int64(9)

	state := &models.SessionState{
		UserID:        &userID,
		MatchedSkills: []string{"Java"},
		SkillScores:   map[string]float64{"Java": 80},
		Flash:         "Login successful!",
	}
	require.NoError(t, store.Save(ctx, "abc", state, time.Hour))
	assert.True(t, mr.Exists(redisKeyPrefix+"abc"))
	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+"abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestRedisStoreKeepsAbsentFieldsAbsent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)
	userID := int64(1)

	require.NoError(t, store.Save(ctx, "abc", &models.SessionState{UserID: &userID}, time.Hour))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, got.IsAuthenticated())
	assert.Nil(t, got.MatchedSkills)
	assert.Nil(t, got.SkillScores)
}

func TestRedisStoreExpiryAndDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "short", &models.SessionState{}, time.Minute))
	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, "gone", &models.SessionState{}, time.Hour))
	require.NoError(t, store.Delete(ctx, "gone"))
	_, err = store.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	require.NoError(t, mr.Set(redisKeyPrefix+"bad", "{not json"))
	_, err := store.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client := NewRedisClient(config.RedisConfig{Address: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = NewRedisStore(ctx, client)
	assert.Error(t, err)
}
