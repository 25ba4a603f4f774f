package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"movie-match-be/internal/entity"
	"movie-match-be/internal/repository/redisstore"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionRepository(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}

	repo := redisstore.NewSessionRepository(rdb, time.Minute)
	id := uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(ctx, id) })

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := entity.NewSession(id)
	sess.ShowMatches("Favorite: a. Mood: b. Tone: c.", []*entity.Movie{{Id: uuid.New(), Title: "Arrival", ReleaseYear: "2016"}})
	require.NoError(t, repo.Save(ctx, sess))

	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.ViewModeResultDisplay, got.Mode)
	assert.Equal(t, sess.Generation, got.Generation)
	assert.Equal(t, "Arrival", got.Current().Title)

	ttl, err := rdb.TTL(ctx, "movie-match:session:"+id).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.Delete(ctx, id))
	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}
