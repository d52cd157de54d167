package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/landsat-viewer/internal/domain"
	"github.com/landsat-viewer/internal/domain/repository"
	"github.com/landsat-viewer/internal/pkg/errors"
	"github.com/landsat-viewer/internal/pkg/metrics"
)

const (
	ReportSentMessage       = "Data sent successfully!"
	reportFailureMessageFmt = "Failed to send email: %v"
)

// ReportUseCase emails an asset table as a CSV attachment.
type ReportUseCase struct {
	mailer      repository.MailerRepository
	deliveries  repository.DeliveryRepository
	collections []string
	logger      *zap.Logger
}

// NewReportUseCase creates the dispatcher. deliveries may be nil when the
// delivery log is disabled.
func NewReportUseCase(
	mailer repository.MailerRepository,
	deliveries repository.DeliveryRepository,
	collections []string,
	logger *zap.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		mailer:      mailer,
		deliveries:  deliveries,
		collections: collections,
		logger:      logger,
	}
}

// Dispatch sends the report and reports the outcome as a flag plus a
// message for the user. It never returns an error and never panics.
func (uc *ReportUseCase) Dispatch(ctx context.Context, recipient, overpassDate string, table domain.AssetTable) (bool, string) {
	report, err := domain.NewReport(recipient, overpassDate, table)
	if err != nil {
		uc.logger.Warn("Report refused", zap.String("recipient", recipient), zap.Error(err))
		return false, errors.ErrNoData.Message
	}

	sent, message := true, ReportSentMessage
	if err := uc.send(ctx, report.Message()); err != nil {
		sent, message = false, fmt.Sprintf(reportFailureMessageFmt, err)
		uc.logger.Error("Report delivery failed",
			zap.String("recipient", recipient),
			zap.String("overpass_date", overpassDate),
			zap.Error(err))
	} else {
		uc.logger.Info("Report delivered",
			zap.String("recipient", recipient),
			zap.String("overpass_date", overpassDate),
			zap.Int("assets", report.AssetCount))
	}

	metrics.ObserveDelivery(sent)
	uc.record(ctx, report, sent, message)

	return sent, message
}

// send turns a transport panic into an error.
func (uc *ReportUseCase) send(ctx context.Context, msg domain.MailMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mail transport panic: %v", r)
		}
	}()
	return uc.mailer.Send(ctx, msg)
}

func (uc *ReportUseCase) record(ctx context.Context, report *domain.Report, sent bool, message string) {
	if uc.deliveries == nil {
		return
	}

	entry := &domain.DeliveryRecord{
		Recipient:    report.Recipient,
		OverpassDate: report.OverpassDate,
		AssetCount:   report.AssetCount,
		Collections:  uc.collections,
		Success:      sent,
		Message:      message,
	}
	if err := uc.deliveries.Record(ctx, entry); err != nil {
		uc.logger.Warn("Failed to record delivery", zap.Error(err))
	}
}
