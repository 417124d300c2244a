package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valuable-brands/backoffice/internal/shared"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryRepository()).WithNow(func() time.Time {
		return time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	})
}

func seedBrand(t *testing.T, svc *Service) Brand {
	t.Helper()
	brand, err := svc.CreateBrand(context.Background(), BrandInput{
		Name:         "Kujali Foods",
		Industry:     "FMCG",
		ContactName:  "Achieng Otieno",
		ContactEmail: "achieng@kujalifoods.co.ke",
	})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}
	return brand
}

func seedRegistration(t *testing.T, svc *Service, brandID string) Registration {
	t.Helper()
	reg, err := svc.CreateRegistration(context.Background(), brandID, RegistrationInput{
		EventName:     "Brand Excellence Awards 2025",
		Package:       "Gold Sponsor",
		InvoiceNumber: "VB-2025-0042",
		InvoiceAmount: 450000,
	})
	if err != nil {
		t.Fatalf("create registration: %v", err)
	}
	return reg
}

func TestAddReminderAppendsAndIsRetrievable(t *testing.T) {
	svc := newTestService(t)
	brand := seedBrand(t, svc)
	reg := seedRegistration(t, svc, brand.ID)
	ctx := context.Background()

	first, err := svc.AddReminder(ctx, reg.ID, ReminderInput{
		Kind:  "call",
		DueAt: time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		Note:  "Confirm logo assets",
	})
	if err != nil {
		t.Fatalf("add first reminder: %v", err)
	}
	second, err := svc.AddReminder(ctx, reg.ID, ReminderInput{
		Kind:  "email",
		DueAt: time.Date(2025, 8, 22, 10, 0, 0, 0, time.UTC),
		Note:  "Send payment follow-up",
	})
	if err != nil {
		t.Fatalf("add second reminder: %v", err)
	}
	if first.ID == "" || second.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", first.ID, second.ID)
	}

	stored, err := svc.GetRegistration(ctx, reg.ID)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	if len(stored.Reminders) != 2 {
		t.Fatalf("expected 2 reminders appended, got %d", len(stored.Reminders))
	}
	if stored.Reminders[0].ID != first.ID {
		t.Fatalf("first reminder was replaced: %q != %q", stored.Reminders[0].ID, first.ID)
	}

	got, err := svc.GetReminder(ctx, reg.ID, second.ID)
	if err != nil {
		t.Fatalf("get reminder by id: %v", err)
	}
	if got.Note != "Send payment follow-up" || got.Status != ReminderPlanned {
		t.Fatalf("unexpected reminder %+v", got)
	}
}

func TestDeleteBrandCascadesRegistrations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	brand := seedBrand(t, svc)
	other, err := svc.CreateBrand(ctx, BrandInput{
		Name:         "Safari Tech Solutions",
		ContactName:  "Brian Mwangi",
		ContactEmail: "brian@safaritech.co.ke",
	})
	if err != nil {
		t.Fatalf("create other brand: %v", err)
	}

	reg := seedRegistration(t, svc, brand.ID)
	kept, err := svc.CreateRegistration(ctx, other.ID, RegistrationInput{
		EventName:     "Marketing Summit",
		Package:       "Exhibitor",
		InvoiceNumber: "VB-2025-0043",
		InvoiceAmount: 120000,
	})
	if err != nil {
		t.Fatalf("create kept registration: %v", err)
	}

	if err := svc.DeleteBrand(ctx, brand.ID); err != nil {
		t.Fatalf("delete brand: %v", err)
	}
	if _, err := svc.GetBrand(ctx, brand.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected brand gone, got %v", err)
	}
	if _, err := svc.GetRegistration(ctx, reg.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected cascade-removed registration, got %v", err)
	}
	if _, err := svc.GetRegistration(ctx, kept.ID); err != nil {
		t.Fatalf("registration of other brand should survive: %v", err)
	}
}

func TestCreateBrandValidation(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateBrand(context.Background(), BrandInput{Name: "No Contact"})
	if !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRegistrationRequiresBrand(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateRegistration(context.Background(), "missing", RegistrationInput{
		EventName:     "Gala",
		Package:       "Silver",
		InvoiceNumber: "VB-1",
		InvoiceAmount: 1000,
	})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkReminderTransitions(t *testing.T) {
	svc := newTestService(t)
	brand := seedBrand(t, svc)
	reg := seedRegistration(t, svc, brand.ID)
	ctx := context.Background()

	rem, err := svc.AddReminder(ctx, reg.ID, ReminderInput{
		Kind:  "message",
		DueAt: time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add reminder: %v", err)
	}
	if err := svc.MarkReminder(ctx, reg.ID, rem.ID, ReminderSent); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	got, err := svc.GetReminder(ctx, reg.ID, rem.ID)
	if err != nil {
		t.Fatalf("get reminder: %v", err)
	}
	if got.Status != ReminderSent {
		t.Fatalf("expected Sent, got %s", got.Status)
	}
	if err := svc.MarkReminder(ctx, reg.ID, rem.ID, "Archived"); !errors.Is(err, shared.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestDueRemindersFiltersPlannedPastDue(t *testing.T) {
	svc := newTestService(t)
	brand := seedBrand(t, svc)
	reg := seedRegistration(t, svc, brand.ID)
	ctx := context.Background()

	past, err := svc.AddReminder(ctx, reg.ID, ReminderInput{
		Kind:  "call",
		DueAt: time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add past reminder: %v", err)
	}
	if _, err := svc.AddReminder(ctx, reg.ID, ReminderInput{
		Kind:  "email",
		DueAt: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("add future reminder: %v", err)
	}
	sent, err := svc.AddReminder(ctx, reg.ID, ReminderInput{
		Kind:  "message",
		DueAt: time.Date(2025, 8, 12, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add sent reminder: %v", err)
	}
	if err := svc.MarkReminder(ctx, reg.ID, sent.ID, ReminderSent); err != nil {
		t.Fatalf("mark sent: %v", err)
	}

	due, err := svc.DueReminders(ctx)
	if err != nil {
		t.Fatalf("due reminders: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected exactly the planned past-due reminder, got %d", len(due))
	}
	if due[0].Reminder.ID != past.ID {
		t.Fatalf("unexpected due reminder %q", due[0].Reminder.ID)
	}
	if due[0].Registration.ID != reg.ID {
		t.Fatalf("due reminder should carry its registration")
	}
}
