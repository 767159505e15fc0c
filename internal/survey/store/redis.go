package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"energyadvice/internal/survey/models"
	"energyadvice/pkg/platform/sentinel"
)

const surveyKeyPrefix = "survey:"

// RedisStore keeps each record as a JSON string under survey:<reference>.
// Every write refreshes the key's TTL, so abandoned surveys expire.
type RedisStore struct {
	client *redis.Client
	opts   options
}

// NewRedis constructs a Redis-backed store. The client lifecycle is managed
// by the caller.
func NewRedis(client *redis.Client, opts ...Option) *RedisStore {
	return &RedisStore{client: client, opts: buildOptions(opts)}
}

func surveyKey(reference string) string {
	return surveyKeyPrefix + reference
}

// unavailable marks a client failure as the store being unreachable. Redis
// replies other than nil are connection or server errors.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}

func (s *RedisStore) GenerateReference(ctx context.Context) (string, error) {
	return issue(ctx, s.opts.newReference, func(ctx context.Context, reference string) (bool, error) {
		data, err := json.Marshal(models.NewAnswerRecord(reference, s.opts.clock()))
		if err != nil {
			return false, fmt.Errorf("marshal survey: %w", err)
		}
		created, err := s.client.SetNX(ctx, surveyKey(reference), data, s.opts.ttl).Result()
		if err != nil {
			return false, unavailable("create survey", err)
		}
		return created, nil
	})
}

func (s *RedisStore) IsReferenceValid(ctx context.Context, reference string) (bool, error) {
	n, err := s.client.Exists(ctx, surveyKey(reference)).Result()
	if err != nil {
		return false, unavailable("check survey reference", err)
	}
	return n > 0, nil
}

func (s *RedisStore) Load(ctx context.Context, reference string) (*models.AnswerRecord, error) {
	data, err := s.client.Get(ctx, surveyKey(reference)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("load survey", err)
	}
	var record models.AnswerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode survey: %w", err)
	}
	return &record, nil
}

// Save only overwrites an existing key (SET XX) so an expired survey is
// reported as not found rather than silently recreated.
func (s *RedisStore) Save(ctx context.Context, record *models.AnswerRecord) error {
	if record == nil {
		return sentinel.ErrNotFound
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal survey: %w", err)
	}
	updated, err := s.client.SetXX(ctx, surveyKey(record.Reference), data, s.opts.ttl).Result()
	if err != nil {
		return unavailable("save survey", err)
	}
	if !updated {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
