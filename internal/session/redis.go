package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// KeySession is the Redis key of a session: session:{id} -> JSON.
const KeySession = "session:%s"

// Optimistic transactions retried before Update gives up on a busy session.
const maxUpdateAttempts = 10

// RedisStore keeps sessions in Redis with a sliding TTL.
type RedisStore struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisClient creates a client and checks connectivity.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(rdb redis.UniversalClient, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "session-redis").Logger(),
	}
}

func key(id string) string {
	return fmt.Sprintf(KeySession, id)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", id).Msg("failed to get session")
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}

	if err := r.rdb.Set(ctx, key(s.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error().Err(err).Str("session_id", s.ID).Msg("failed to save session")
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

// Update runs fn inside a WATCH/MULTI transaction on the session key and
// retries when another client wrote or deleted the key in between.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	k := key(id)

	var updated *Session
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session %s: %w", id, err)
		}

		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode session %s: %w", id, err)
		}
		if err := fn(&s); err != nil {
			return err
		}

		s.UpdatedAt = time.Now()
		data, err = json.Marshal(&s)
		if err != nil {
			return fmt.Errorf("failed to encode session %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = &s
		return nil
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := r.rdb.Watch(ctx, txf, k)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			if !errors.Is(err, ErrNotFound) {
				r.logger.Error().Err(err).Str("session_id", id).Msg("failed to update session")
			}
			return nil, err
		}
		r.logger.Debug().Str("session_id", id).Int("attempt", attempt).Msg("session changed during update, retrying")
	}

	return nil, fmt.Errorf("failed to update session %s after %d attempts: %w", id, maxUpdateAttempts, redis.TxFailedErr)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, key(id)).Err(); err != nil {
		r.logger.Error().Err(err).Str("session_id", id).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
