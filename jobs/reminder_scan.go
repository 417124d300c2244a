package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/valuable-brands/backoffice/internal/comms"
	"github.com/valuable-brands/backoffice/internal/crm"
	jobmetrics "github.com/valuable-brands/backoffice/internal/jobs"
)

// ReminderScanJob sweeps the CRM for due Planned reminders, notifies the
// brand contact and marks them Sent.
type ReminderScanJob struct {
	CRM     *crm.Service
	Mailer  comms.Mailer
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReminderScanJob initialises the reminder sweep handler.
func NewReminderScanJob(crmSvc *crm.Service, mailer comms.Mailer, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReminderScanJob {
	return &ReminderScanJob{CRM: crmSvc, Mailer: mailer, Logger: logger, Metrics: metrics}
}

// Handle executes the sweep. One reminder failing does not stop the rest;
// the joined error makes Asynq retry the sweep, and already-Sent reminders
// are skipped on the next pass.
func (j *ReminderScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.CRM == nil || j.Mailer == nil {
		return errors.New("reminder scan: handler not configured")
	}

	tracker := j.Metrics.Track(TaskTypeReminderScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	due, err := j.CRM.DueReminders(ctx)
	if err != nil {
		resultErr = fmt.Errorf("list due reminders: %w", err)
		return resultErr
	}

	var failures []error
	sent := 0
	for _, item := range due {
		if err := j.notify(ctx, item); err != nil {
			failures = append(failures, err)
			continue
		}
		sent++
	}
	j.Metrics.AddEmailsSent(EmailKindReminder, sent)
	if j.Logger != nil {
		j.Logger.Info("reminder scan complete",
			slog.Int("due", len(due)),
			slog.Int("sent", sent),
			slog.Int("failed", len(failures)))
	}
	resultErr = errors.Join(failures...)
	return resultErr
}

func (j *ReminderScanJob) notify(ctx context.Context, item crm.DueReminder) error {
	brand, err := j.CRM.GetBrand(ctx, item.Registration.BrandID)
	if err != nil {
		return fmt.Errorf("reminder %s: %w", item.Reminder.ID, err)
	}
	subject := fmt.Sprintf("Follow-up reminder: %s", item.Registration.EventName)
	body := fmt.Sprintf(
		"Dear %s,\n\nThis is a scheduled %s follow-up for %s (%s, invoice %s).\n",
		brand.ContactName, item.Reminder.Kind, brand.Name,
		item.Registration.EventName, item.Registration.InvoiceNumber,
	)
	if item.Reminder.Note != "" {
		body += "\nNote: " + item.Reminder.Note + "\n"
	}
	body += "\nBest regards,\nValuable Brands"

	err = j.Mailer.Send(ctx, comms.EmailPayload{To: brand.ContactEmail, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("reminder %s: %w", item.Reminder.ID, err)
	}
	if err := j.CRM.MarkReminder(ctx, item.Registration.ID, item.Reminder.ID, crm.ReminderSent); err != nil {
		return fmt.Errorf("mark reminder %s sent: %w", item.Reminder.ID, err)
	}
	return nil
}
