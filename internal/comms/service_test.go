package comms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valuable-brands/backoffice/internal/crm"
	"github.com/valuable-brands/backoffice/internal/shared"
)

type captureQueue struct {
	payloads []EmailPayload
	fail     bool
}

func (q *captureQueue) EnqueueEmail(_ context.Context, payload EmailPayload) error {
	if q.fail {
		return errors.New("queue down")
	}
	q.payloads = append(q.payloads, payload)
	return nil
}

func newCommsFixture(t *testing.T) (*Service, *crm.Service, *captureQueue) {
	t.Helper()
	crmSvc := crm.NewService(crm.NewMemoryRepository())
	queue := &captureQueue{}
	svc := NewService(NewMemoryTemplateRepository(), crmSvc, queue).WithNow(func() time.Time {
		return time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	})
	return svc, crmSvc, queue
}

func seedBrands(t *testing.T, crmSvc *crm.Service) []crm.Brand {
	t.Helper()
	brands := make([]crm.Brand, 0, 2)
	for _, input := range []crm.BrandInput{
		{Name: "Kujali Foods", ContactName: "Achieng Otieno", ContactEmail: "achieng@kujalifoods.co.ke"},
		{Name: "Safari Tech Solutions", ContactName: "Brian Mwangi", ContactEmail: "brian@safaritech.co.ke"},
	} {
		brand, err := crmSvc.CreateBrand(context.Background(), input)
		if err != nil {
			t.Fatalf("seed brand: %v", err)
		}
		brands = append(brands, brand)
	}
	return brands
}

func TestBulkSendEnqueuesOneTaskPerRecipient(t *testing.T) {
	svc, crmSvc, queue := newCommsFixture(t)
	seedBrands(t, crmSvc)
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, TemplateInput{
		Name:    "Payment follow-up",
		Subject: "Hello {{name}}",
		Body:    "Dear {{name}}, an update for {{brand}}.",
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	result, err := svc.BulkSend(ctx, BulkSendInput{TemplateID: tpl.ID})
	if err != nil {
		t.Fatalf("bulk send: %v", err)
	}
	if result.Queued != 2 || len(queue.payloads) != 2 {
		t.Fatalf("expected one task per recipient, queued=%d payloads=%d", result.Queued, len(queue.payloads))
	}
	first := queue.payloads[0]
	if first.Subject != "Hello Achieng Otieno" {
		t.Fatalf("token not rendered in subject: %q", first.Subject)
	}
	if first.Body != "Dear Achieng Otieno, an update for Kujali Foods." {
		t.Fatalf("token not rendered in body: %q", first.Body)
	}
}

func TestBulkSendTargetsSelectedBrands(t *testing.T) {
	svc, crmSvc, queue := newCommsFixture(t)
	brands := seedBrands(t, crmSvc)
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, TemplateInput{Name: "Invite", Subject: "Invite", Body: "Come along"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	result, err := svc.BulkSend(ctx, BulkSendInput{TemplateID: tpl.ID, BrandIDs: []string{brands[1].ID}})
	if err != nil {
		t.Fatalf("bulk send: %v", err)
	}
	if result.Queued != 1 || queue.payloads[0].To != "brian@safaritech.co.ke" {
		t.Fatalf("expected only the selected brand, got %+v", queue.payloads)
	}
}

func TestBulkSendUnknownTemplate(t *testing.T) {
	svc, crmSvc, _ := newCommsFixture(t)
	seedBrands(t, crmSvc)
	_, err := svc.BulkSend(context.Background(), BulkSendInput{TemplateID: "missing"})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBulkSendStopsOnQueueFailure(t *testing.T) {
	svc, crmSvc, queue := newCommsFixture(t)
	seedBrands(t, crmSvc)
	queue.fail = true
	ctx := context.Background()

	tpl, err := svc.CreateTemplate(ctx, TemplateInput{Name: "Invite", Subject: "Invite", Body: "Come along"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	result, err := svc.BulkSend(ctx, BulkSendInput{TemplateID: tpl.ID})
	if err == nil {
		t.Fatalf("expected enqueue error")
	}
	if result.Queued != 0 {
		t.Fatalf("nothing should be reported queued, got %d", result.Queued)
	}
}

func TestTemplateUpdateAndDelete(t *testing.T) {
	svc, _, _ := newCommsFixture(t)
	ctx := context.Background()
	tpl, err := svc.CreateTemplate(ctx, TemplateInput{Name: "Draft", Subject: "s", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.UpdateTemplate(ctx, tpl.ID, TemplateInput{Name: "Final", Subject: "s2", Body: "b2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Final" || updated.Subject != "s2" {
		t.Fatalf("unexpected update %+v", updated)
	}
	if err := svc.DeleteTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetTemplate(ctx, tpl.ID); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
