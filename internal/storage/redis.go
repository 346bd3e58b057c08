package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisArchive implements the Archive interface using Redis.
type RedisArchive struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisArchive implements Archive interface
var _ Archive = (*RedisArchive)(nil)

// NewRedisArchive creates a new Redis archive instance
func NewRedisArchive(redisURL string, logger *slog.Logger) *RedisArchive {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisArchive{
		client: rdb,
		logger: logger,
		ttl:    30 * 24 * time.Hour,
	}
}

// Health and lifecycle methods

func (r *RedisArchive) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisArchive) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisArchive) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func resultKey(sessionID uuid.UUID) string {
	return "result:" + sessionID.String()
}

func channelKey(channelID string) string {
	return "channel:" + channelID + ":results"
}

// Archive operations

func (r *RedisArchive) SaveResult(ctx context.Context, result GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("Failed to marshal game result", "session_id", result.SessionID, "error", err)
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	if err := r.client.Set(ctx, resultKey(result.SessionID), string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save game result", "session_id", result.SessionID, "error", err)
		return fmt.Errorf("failed to save game result: %w", err)
	}

	// Channel index holds session ids, most recent first.
	key := channelKey(result.ChannelID)
	if err := r.client.LPush(ctx, key, result.SessionID.String()).Err(); err != nil {
		r.logger.Error("Failed to index game result", "channel_id", result.ChannelID, "error", err)
		return fmt.Errorf("failed to index game result: %w", err)
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		r.logger.Warn("Failed to refresh channel index TTL", "channel_id", result.ChannelID, "error", err)
	}

	return nil
}

func (r *RedisArchive) GetResult(ctx context.Context, sessionID uuid.UUID) (GameResult, error) {
	data, err := r.client.Get(ctx, resultKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return GameResult{}, ErrNotFound
		}
		r.logger.Error("Failed to load game result", "session_id", sessionID, "error", err)
		return GameResult{}, fmt.Errorf("failed to load game result: %w", err)
	}

	var result GameResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		r.logger.Error("Failed to unmarshal game result", "session_id", sessionID, "error", err)
		return GameResult{}, fmt.Errorf("failed to unmarshal game result: %w", err)
	}

	return result, nil
}

func (r *RedisArchive) ListChannelResults(ctx context.Context, channelID string) ([]GameResult, error) {
	ids, err := r.client.LRange(ctx, channelKey(channelID), 0, -1).Result()
	if err != nil {
		r.logger.Error("Failed to list channel results", "channel_id", channelID, "error", err)
		return nil, fmt.Errorf("failed to list channel results: %w", err)
	}

	results := make([]GameResult, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			r.logger.Warn("Skipping malformed result id", "channel_id", channelID, "id", raw)
			continue
		}
		result, err := r.GetResult(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Result expired out from under the index.
				continue
			}
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}
