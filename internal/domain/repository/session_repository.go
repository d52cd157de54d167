package repository

import (
	"context"
	"time"

	"github.com/landsat-viewer/internal/domain"
)

// SessionRepository stores interactive sessions.
type SessionRepository interface {
	// Get returns nil, nil when the session does not exist or expired.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Save writes the session and resets its TTL.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error

	Delete(ctx context.Context, id string) error
}
