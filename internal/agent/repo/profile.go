package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ff-agent/server/internal/agent/model"
	errx "github.com/ff-agent/server/internal/core/error"
	logx "github.com/ff-agent/server/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisProfileRepository stores each thread's shopping profile as a JSON
// blob with a TTL that is refreshed on every save. Threads are created on
// first use and reaped by Redis expiry, never deleted explicitly.
type RedisProfileRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisProfileRepository(rdb redis.Cmdable, ttl time.Duration) *RedisProfileRepository {
	return &RedisProfileRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisProfileRepository) profileKey(threadID string) string {
	return fmt.Sprintf("thread:%s:profile", threadID)
}

// Load returns the persisted profile for the thread, or a fresh empty
// profile when the thread has never been seen. Unknown keys in the stored
// blob are dropped so stale writers cannot widen the schema.
func (r *RedisProfileRepository) Load(ctx context.Context, threadID string) (model.Profile, error) {
	key := r.profileKey(threadID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Profile{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load profile from redis")
		return nil, errx.WrapRedis(err)
	}

	var stored map[string]string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to unmarshal stored profile")
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	profile := model.Profile{}
	for k, v := range stored {
		if model.KnownProfileKey(k) && v != "" {
			profile[k] = v
		}
	}
	return profile, nil
}

// Save writes the profile and refreshes the thread TTL.
func (r *RedisProfileRepository) Save(ctx context.Context, threadID string, profile model.Profile) error {
	b, err := json.Marshal(profile)
	if err != nil {
		logx.Error().Err(err).Str("thread_id", threadID).Msg("failed to marshal profile")
		return fmt.Errorf("marshal profile: %w", err)
	}

	key := r.profileKey(threadID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save profile to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// Clear removes the thread's persisted profile.
func (r *RedisProfileRepository) Clear(ctx context.Context, threadID string) error {
	key := r.profileKey(threadID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete profile from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.ProfileRepository = (*RedisProfileRepository)(nil)
