package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultDedupTTL bounds how long an idempotency key is remembered.
const DefaultDedupTTL = 24 * time.Hour

// RedisStreamSink appends envelopes to a Redis stream. A SETNX marker per
// idempotency key turns duplicate appends into no-ops.
type RedisStreamSink struct {
	client   redis.UniversalClient
	stream   string
	maxLen   int64
	dedupTTL time.Duration
}

// NewRedisStreamSink creates a sink writing to stream. maxLen caps the
// stream approximately; zero leaves it unbounded.
func NewRedisStreamSink(client redis.UniversalClient, stream string, maxLen int64) *RedisStreamSink {
	return &RedisStreamSink{
		client:   client,
		stream:   stream,
		maxLen:   maxLen,
		dedupTTL: DefaultDedupTTL,
	}
}

// Append implements EventSink.
func (s *RedisStreamSink) Append(ctx context.Context, envelope Envelope) error {
	if envelope.IdempotencyKey != "" {
		fresh, err := s.client.SetNX(ctx, s.dedupKey(envelope.IdempotencyKey), 1, s.dedupTTL).Result()
		if err != nil {
			return fmt.Errorf("redis dedup check: %w", err)
		}
		if !fresh {
			return nil
		}
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"type":            envelope.Type,
			"subject":         envelope.Subject,
			"idempotency_key": envelope.IdempotencyKey,
			"envelope":        body,
		},
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		// Release the marker so a retry can deliver the event.
		if envelope.IdempotencyKey != "" {
			_ = s.client.Del(ctx, s.dedupKey(envelope.IdempotencyKey)).Err()
		}
		return fmt.Errorf("redis xadd %s: %w", s.stream, err)
	}
	return nil
}

func (s *RedisStreamSink) dedupKey(idem string) string {
	return s.stream + ":idem:" + idem
}
