package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewSessionRepository(r *Redis) repository.SessionRepository {
	return &sessionRepository{
		client: r.Client(),
		logger: r.logger,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionKey(id)
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("Failed to unmarshal session", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	key := sessionKey(session.ID)
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save session", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("session set error: %w", err)
	}

	r.logger.Debug("Session saved", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	key := sessionKey(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}
