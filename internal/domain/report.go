package domain

import (
	"errors"
	"fmt"
)

const (
	ReportSubject        = "Landsat Data and Next Overpass Date"
	ReportAttachmentName = "landsat_data.csv"
)

var ErrEmptyReport = errors.New("report requires at least one asset")

// Report is built only when the user asks for email delivery.
type Report struct {
	Recipient    string
	OverpassDate string
	CSV          []byte
	AssetCount   int
}

// NewReport renders the table as CSV. An empty table is refused.
func NewReport(recipient, overpassDate string, table AssetTable) (*Report, error) {
	if table.Len() == 0 {
		return nil, ErrEmptyReport
	}
	data, err := table.CSV()
	if err != nil {
		return nil, err
	}
	return &Report{
		Recipient:    recipient,
		OverpassDate: overpassDate,
		CSV:          data,
		AssetCount:   table.Len(),
	}, nil
}

// Body is the plain-text part of the message.
func (r *Report) Body() string {
	return fmt.Sprintf("Attached is the Landsat data you requested.\n\nNext Landsat Passover Date: %s", r.OverpassDate)
}

// Attachment is a named binary part of an outgoing message.
type Attachment struct {
	Name    string
	Content []byte
}

// MailMessage is what the mail transport sends.
type MailMessage struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Message converts the report into a mail message.
func (r *Report) Message() MailMessage {
	return MailMessage{
		To:      r.Recipient,
		Subject: ReportSubject,
		Body:    r.Body(),
		Attachments: []Attachment{
			{Name: ReportAttachmentName, Content: r.CSV},
		},
	}
}
