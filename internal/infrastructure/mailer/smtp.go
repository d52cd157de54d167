package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// sender is the part of *mail.Client the mailer needs.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type smtpMailer struct {
	cfg       *config.SMTPConfig
	newSender func() (sender, error)
	logger    *zap.Logger
}

// NewSMTPMailer creates a mailer that submits over STARTTLS with PLAIN auth.
func NewSMTPMailer(cfg *config.SMTPConfig, logger *zap.Logger) repository.MailerRepository {
	m := &smtpMailer{
		cfg:    cfg,
		logger: logger,
	}
	m.newSender = m.dial
	return m
}

func (m *smtpMailer) dial() (sender, error) {
	return mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

// Send builds a multipart message and submits it. One message per call.
func (m *smtpMailer) Send(ctx context.Context, message domain.MailMessage) error {
	msg, err := m.build(message)
	if err != nil {
		return err
	}

	client, err := m.newSender()
	if err != nil {
		m.logger.Error("Failed to create SMTP client", zap.String("host", m.cfg.Host), zap.Error(err))
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	m.logger.Debug("Submitting message",
		zap.String("host", m.cfg.Host),
		zap.Int("port", m.cfg.Port),
		zap.String("to", message.To),
		zap.Int("attachments", len(message.Attachments)))

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("Failed to send message", zap.String("to", message.To), zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (m *smtpMailer) build(message domain.MailMessage) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", m.cfg.From, err)
	}
	if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", message.To, err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.Body)

	for _, att := range message.Attachments {
		if err := msg.AttachReader(att.Name, bytes.NewReader(att.Content),
			mail.WithFileContentType(mail.TypeAppOctetStream)); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", att.Name, err)
		}
	}

	return msg, nil
}
