package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	stderrors "errors"
	"testing"

	"github.com/landsat-viewer/internal/config"
	"github.com/landsat-viewer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func newTestMailer(s *fakeSender) *smtpMailer {
	cfg := &config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "sender@example.com",
		Password: "secret",
		From:     "sender@example.com",
	}
	m := NewSMTPMailer(cfg, zap.NewNop()).(*smtpMailer)
	m.newSender = func() (sender, error) { return s, nil }
	return m
}

func testMessage() domain.MailMessage {
	table := domain.NewAssetTable([]domain.AssetRecord{{Title: "Red Band", URL: "https://x/B4.TIF"}})
	report, err := domain.NewReport("user@example.com", "2023-06-01", table)
	if err != nil {
		panic(err)
	}
	return report.Message()
}

func TestSMTPMailer_Send(t *testing.T) {
	s := &fakeSender{}
	m := newTestMailer(s)
	message := testMessage()

	require.NoError(t, m.Send(context.Background(), message))
	require.Len(t, s.sent, 1)

	var buf bytes.Buffer
	_, err := s.sent[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: Landsat Data and Next Overpass Date")
	assert.Contains(t, raw, "Next Landsat Passover Date: 2023-06-01")
	assert.Contains(t, raw, `filename="landsat_data.csv"`)
	assert.Contains(t, raw, "application/octet-stream")
	assert.Contains(t, raw, base64.StdEncoding.EncodeToString(message.Attachments[0].Content))
}

func TestSMTPMailer_SendFailure(t *testing.T) {
	s := &fakeSender{err: stderrors.New("535 authentication failed")}
	m := newTestMailer(s)

	err := m.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 authentication failed")
}

func TestSMTPMailer_InvalidRecipient(t *testing.T) {
	s := &fakeSender{}
	m := newTestMailer(s)

	message := testMessage()
	message.To = "not an address"

	require.Error(t, m.Send(context.Background(), message))
	assert.Empty(t, s.sent)
}
