package gradebook

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"svexport/core"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPeriodUnavailable  = errors.New("reporting period unavailable")
)

type (
	// Client fetches one reporting period's gradebook from the portal.
	Client interface {
		Gradebook(ctx context.Context, creds Credentials, period int) (Gradebook, error)
	}

	Service struct {
		client  Client
		mailSvc core.EmailService
		logger  core.Logger

		periods int
		delay   time.Duration
	}
)

func NewService(client Client, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{
		client:  client,
		mailSvc: mailSvc,
		logger:  logger,
		periods: core.Conf.ReportingPeriods,
		delay:   core.Conf.RequestDelay,
	}
}

// Export fetches all reporting periods and writes the flattened CSV to w.
// Unavailable periods and one-off network failures are skipped; invalid
// credentials abort the whole export. Returns the number of data rows written.
func (svc *Service) Export(ctx context.Context, creds Credentials, w io.Writer) (int, error) {
	if err := creds.Validate(); err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return 0, err
	}

	var n int
	for period := 0; period < svc.periods; period++ {
		if period > 0 {
			if err := svc.pause(ctx); err != nil {
				return n, err
			}
		}
		svc.logger.Info(fmt.Sprintf("requesting data for reporting period %d", period+1))

		gb, err := svc.client.Gradebook(ctx, creds, period)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				return n, err
			}
			if errors.Is(err, ErrPeriodUnavailable) {
				svc.logger.Info(fmt.Sprintf("no data available for reporting period %d", period+1))
				continue
			}
			if ctx.Err() != nil {
				return n, err
			}
			// creds lets the error reporter tag the affected student
			svc.logger.Error(fmt.Sprintf("fetching reporting period %d: %v", period+1, err), err, creds)
			continue
		}

		for _, row := range gb.Rows() {
			if err := cw.Write(row); err != nil {
				return n, err
			}
			n++
		}
	}

	cw.Flush()
	return n, cw.Error()
}

// ExportFile runs Export against an in-memory buffer and only writes path
// once the export succeeded, so a failed run never leaves a partial file.
func (svc *Service) ExportFile(ctx context.Context, creds Credentials, path string) (int, error) {
	var buf bytes.Buffer
	n, err := svc.Export(ctx, creds, &buf)
	if err != nil {
		return n, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return n, err
	}
	return n, nil
}

// EmailExport sends the finished CSV as an attachment.
func (svc *Service) EmailExport(to mail.Address, path string, rows int) error {
	msg := &core.EmailMessage{
		To:      []mail.Address{to},
		Subject: "Gradebook export",
		BodyStr: fmt.Sprintf("Attached: %s (%d assignment rows).", filepath.Base(path), rows),
	}
	if err := msg.AttachFile(path, "text/csv"); err != nil {
		return err
	}
	svc.mailSvc.SendMessages(msg)
	return nil
}

func (svc *Service) pause(ctx context.Context) error {
	if svc.delay <= 0 {
		return nil
	}
	t := time.NewTimer(svc.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
