package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	"github.com/valuable-brands/backoffice/internal/comms"
	"github.com/valuable-brands/backoffice/internal/crm"
)

type recordingMailer struct {
	sent []comms.EmailPayload
	fail map[string]bool
}

func (m *recordingMailer) Send(_ context.Context, payload comms.EmailPayload) error {
	if m.fail[payload.To] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, payload)
	return nil
}

func seedDueReminder(t *testing.T, svc *crm.Service, email string) (crm.Registration, crm.Reminder) {
	t.Helper()
	ctx := context.Background()
	brand, err := svc.CreateBrand(ctx, crm.BrandInput{
		Name:         "Kujali Foods",
		ContactName:  "Achieng Otieno",
		ContactEmail: email,
	})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}
	reg, err := svc.CreateRegistration(ctx, brand.ID, crm.RegistrationInput{
		EventName:     "Brand Excellence Awards 2025",
		Package:       "Gold Sponsor",
		InvoiceNumber: "VB-2025-0042",
		InvoiceAmount: 450000,
	})
	if err != nil {
		t.Fatalf("create registration: %v", err)
	}
	rem, err := svc.AddReminder(ctx, reg.ID, crm.ReminderInput{
		Kind:  "email",
		DueAt: time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC),
		Note:  "Chase invoice payment",
	})
	if err != nil {
		t.Fatalf("add reminder: %v", err)
	}
	return reg, rem
}

func TestReminderScanSendsAndMarksSent(t *testing.T) {
	crmSvc := crm.NewService(crm.NewMemoryRepository()).WithNow(func() time.Time {
		return time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	})
	reg, rem := seedDueReminder(t, crmSvc, "achieng@kujalifoods.co.ke")
	mailer := &recordingMailer{}
	job := NewReminderScanJob(crmSvc, mailer, nil, nil)

	if err := job.Handle(context.Background(), NewReminderScanTask()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one reminder email, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "achieng@kujalifoods.co.ke" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if !strings.Contains(msg.Body, "Chase invoice payment") {
		t.Fatalf("note should be included: %s", msg.Body)
	}

	got, err := crmSvc.GetReminder(context.Background(), reg.ID, rem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Status != crm.ReminderSent {
		t.Fatalf("expected Sent after scan, got %s", got.Status)
	}

	// A second sweep must not re-send.
	if err := job.Handle(context.Background(), NewReminderScanTask()); err != nil {
		t.Fatalf("second handle: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("reminder must not be re-sent, got %d emails", len(mailer.sent))
	}
}

func TestReminderScanContinuesPastFailures(t *testing.T) {
	crmSvc := crm.NewService(crm.NewMemoryRepository()).WithNow(func() time.Time {
		return time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	})
	seedDueReminder(t, crmSvc, "broken@kujalifoods.co.ke")

	ctx := context.Background()
	other, err := crmSvc.CreateBrand(ctx, crm.BrandInput{
		Name:         "Safari Tech Solutions",
		ContactName:  "Brian Mwangi",
		ContactEmail: "brian@safaritech.co.ke",
	})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}
	reg, err := crmSvc.CreateRegistration(ctx, other.ID, crm.RegistrationInput{
		EventName:     "Marketing Summit",
		Package:       "Exhibitor",
		InvoiceNumber: "VB-2025-0043",
		InvoiceAmount: 120000,
	})
	if err != nil {
		t.Fatalf("create registration: %v", err)
	}
	okRem, err := crmSvc.AddReminder(ctx, reg.ID, crm.ReminderInput{
		Kind:  "call",
		DueAt: time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add reminder: %v", err)
	}

	mailer := &recordingMailer{fail: map[string]bool{"broken@kujalifoods.co.ke": true}}
	job := NewReminderScanJob(crmSvc, mailer, nil, nil)

	err = job.Handle(ctx, NewReminderScanTask())
	if err == nil {
		t.Fatalf("expected joined failure for the broken recipient")
	}
	if len(mailer.sent) != 1 || mailer.sent[0].To != "brian@safaritech.co.ke" {
		t.Fatalf("healthy recipient should still be notified: %+v", mailer.sent)
	}
	got, err := crmSvc.GetReminder(ctx, reg.ID, okRem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Status != crm.ReminderSent {
		t.Fatalf("delivered reminder should be Sent, got %s", got.Status)
	}
}

func TestSendEmailJobSkipsMalformedPayload(t *testing.T) {
	mailer := &recordingMailer{}
	job := NewSendEmailJob(mailer, nil, nil)

	task := NewReminderScanTask() // empty payload, not valid JSON for SendEmailPayload
	if err := job.Handle(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("nothing should be sent")
	}
}
