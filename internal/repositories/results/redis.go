package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mine/internal/errors"
)

const (
	// Key patterns
	resultKeyPrefix = "result:"
	recentKey       = "results:recent"
	teamWinsKey     = "team:%s:wins"

	// TTL for result bodies (30 days); the indexes skip ids that have expired
	resultTTL = 30 * 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client    redis.UniversalClient
	ResultTTL time.Duration
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client    redis.UniversalClient
	resultTTL time.Duration
}

// NewRedis creates a Redis-backed result repository with default configuration
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// NewRedisRepository creates a new Redis-backed result repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.ResultTTL
	if ttl == 0 {
		ttl = resultTTL
	}

	return &redisRepository{
		client:    cfg.Client,
		resultTTL: ttl,
	}
}

// Create stores the record body, then indexes it by time and by winner
func (r *redisRepository) Create(ctx context.Context, record *Record) error {
	if err := validate(record); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to serialize result")
	}

	created, err := r.client.SetNX(ctx, resultKeyPrefix+record.ID, string(data), r.resultTTL).Result()
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to store result")
	}
	if !created {
		return errExists(record.ID)
	}

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, recentKey, redis.Z{
		Score:  float64(record.CreatedAt.UnixMilli()),
		Member: record.ID,
	})
	for _, teamID := range record.Winners {
		pipe.SAdd(ctx, fmt.Sprintf(teamWinsKey, teamID), record.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to index result")
	}

	return nil
}

// Get retrieves a record by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*Record, error) {
	data, err := r.client.Get(ctx, resultKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errNotFound(id)
		}
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to get result")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize result")
	}

	return &record, nil
}

// List returns the most recent records first
func (r *redisRepository) List(ctx context.Context, limit int) ([]*Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := r.client.ZRevRange(ctx, recentKey, 0, stop).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to list results")
	}

	return r.load(ctx, ids)
}

// ListByWinner returns the records a team won
func (r *redisRepository) ListByWinner(ctx context.Context, teamID string) ([]*Record, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(teamWinsKey, teamID)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to list results by winner")
	}

	records, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	newestFirst(records)
	return records, nil
}

// load fetches record bodies in one round trip, skipping expired ones
func (r *redisRepository) load(ctx context.Context, ids []string) ([]*Record, error) {
	if len(ids) == 0 {
		return []*Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = resultKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to load results")
	}

	records := make([]*Record, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var record Record
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to deserialize result %s", ids[i])
		}
		records = append(records, &record)
	}
	return records, nil
}
