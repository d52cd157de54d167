package repository

import (
	"context"

	"github.com/landsat-viewer/internal/domain"
)

// MailerRepository sends one message synchronously.
type MailerRepository interface {
	Send(ctx context.Context, msg domain.MailMessage) error
}
