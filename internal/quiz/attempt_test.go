package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestAttemptStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save then consume once", func(t *testing.T) {
		_, client := setupRedis(t)
		store := NewAttemptStore(client, 30*time.Minute)

		attempt := &Attempt{StudentID: 7, InternshipID: 3, Questions: eightQuestions()}
		require.NoError(t, store.Save(ctx, attempt))
		assert.NotEmpty(t, attempt.Token)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), attempt.ExpiresAt, 5*time.Second)

		got, err := store.Consume(ctx, attempt.Token, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, got.StudentID)
		assert.Equal(t, 3, got.InternshipID)
		assert.Equal(t, attempt.Questions, got.Questions)

		_, err = store.Consume(ctx, attempt.Token, 7)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("expired attempt", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewAttemptStore(client, time.Minute)

		attempt := &Attempt{StudentID: 1, InternshipID: 1, Questions: eightQuestions()}
		require.NoError(t, store.Save(ctx, attempt))

		mr.FastForward(2 * time.Minute)

		_, err := store.Consume(ctx, attempt.Token, 1)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, client := setupRedis(t)
		store := NewAttemptStore(client, time.Minute)

		_, err := store.Consume(ctx, "../../etc", 1)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
	})

	t.Run("other student cannot consume", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewAttemptStore(client, 30*time.Minute)

		attempt := &Attempt{StudentID: 7, InternshipID: 3, Questions: eightQuestions()}
		require.NoError(t, store.Save(ctx, attempt))

		_, err := store.Consume(ctx, attempt.Token, 8)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
		assert.True(t, mr.Exists(attemptKeyPrefix+attempt.Token))

		got, err := store.Consume(ctx, attempt.Token, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, got.StudentID)
		assert.False(t, mr.Exists(attemptKeyPrefix+attempt.Token))
	})

	t.Run("stored with ttl", func(t *testing.T) {
		mr, client := setupRedis(t)
		store := NewAttemptStore(client, 10*time.Minute)

		attempt := &Attempt{StudentID: 1, InternshipID: 1}
		require.NoError(t, store.Save(ctx, attempt))

		assert.Equal(t, 10*time.Minute, mr.TTL(attemptKeyPrefix+attempt.Token))
	})
}
