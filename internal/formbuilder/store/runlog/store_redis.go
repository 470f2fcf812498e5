package runlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formbuilder/internal/formbuilder/models"
	id "formbuilder/pkg/domain"
	"formbuilder/pkg/platform/sentinel"
)

const (
	runKeyPrefix = "runlog:run:"
	incidentsKey = "runlog:incidents"

	defaultTTL = 30 * 24 * time.Hour
)

// RedisStore keeps run records in Redis with a TTL. Runs needing manual
// intervention are also indexed in a sorted set keyed by finish time; the
// index does not expire.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets how long run records are kept.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, ttl: defaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func runKey(runID id.SubmissionID) string {
	return runKeyPrefix + runID.String()
}

func (s *RedisStore) Save(ctx context.Context, run *models.Run) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKey(run.ID), payload, s.ttl)
	if run.NeedsIntervention() {
		pipe.ZAdd(ctx, incidentsKey, redis.Z{
			Score:  float64(run.FinishedAt.UnixMilli()),
			Member: run.ID.String(),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, runID id.SubmissionID) (*models.Run, error) {
	payload, err := s.client.Get(ctx, runKey(runID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find run: %w", err)
	}
	var run models.Run
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	return &run, nil
}

// ListIncidents returns runs whose rollback failed, most recent first.
// Incidents whose run record has expired are skipped.
func (s *RedisStore) ListIncidents(ctx context.Context, limit int) ([]models.Run, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}
	members, err := s.client.ZRevRange(ctx, incidentsKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = runKeyPrefix + m
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load incidents: %w", err)
	}
	out := make([]models.Run, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var run models.Run
		if err := json.Unmarshal([]byte(raw), &run); err != nil {
			return nil, fmt.Errorf("decode incident: %w", err)
		}
		out = append(out, run)
	}
	return out, nil
}
