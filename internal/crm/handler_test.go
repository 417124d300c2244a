package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) RenderDocument(ctx context.Context, html, footerHTML string) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.7 billing"), nil
}

func newTestHandler(t *testing.T) (*Handler, *Service, http.Handler) {
	t.Helper()
	svc := newTestService(t)
	billing := NewBillingBuilder("Valuable Brands").WithNow(func() time.Time {
		return time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	})
	h := NewHandler(nil, svc, billing, &fakeRenderer{})
	r := chi.NewRouter()
	h.MountRoutes(r)
	return h, svc, r
}

func TestCreateBrandEndpoint(t *testing.T) {
	_, _, router := newTestHandler(t)
	body := `{"name":"Green Harvest Kenya","contactName":"Wanjiru Kamau","contactEmail":"wanjiru@greenharvest.co.ke"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/crm/brands", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var brand Brand
	if err := json.Unmarshal(rec.Body.Bytes(), &brand); err != nil {
		t.Fatalf("decode brand: %v", err)
	}
	if brand.ID == "" || brand.Name != "Green Harvest Kenya" {
		t.Fatalf("unexpected brand %+v", brand)
	}
}

func TestCreateBrandRejectsMissingContact(t *testing.T) {
	_, _, router := newTestHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/crm/brands", strings.NewReader(`{"name":"X"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid fields") {
		t.Fatalf("expected field detail, got %s", rec.Body.String())
	}
}

func TestGetMissingBrandReturns404(t *testing.T) {
	_, _, router := newTestHandler(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crm/brands/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestInvoiceDownloadNamesFile(t *testing.T) {
	_, svc, router := newTestHandler(t)
	brand := seedBrand(t, svc)
	reg := seedRegistration(t, svc, brand.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crm/registrations/"+reg.ID+"/invoice.pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "Invoice-VB-2025-0042-Kujali_Foods.pdf") {
		t.Fatalf("unexpected disposition %q", disposition)
	}
}

func TestReceiptDownloadNamesFile(t *testing.T) {
	_, svc, router := newTestHandler(t)
	brand := seedBrand(t, svc)
	reg := seedRegistration(t, svc, brand.ID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crm/registrations/"+reg.ID+"/receipt.pdf", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "Receipt-VB-2025-0042-Kujali_Foods.pdf") {
		t.Fatalf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestBillingDocumentsFormatAmounts(t *testing.T) {
	svc := newTestService(t)
	brand := seedBrand(t, svc)
	reg := seedRegistration(t, svc, brand.ID)

	builder := NewBillingBuilder("Valuable Brands")
	invoice := builder.Invoice(brand, reg)
	if !strings.Contains(invoice.HTML, "KES 450,000") {
		t.Fatalf("invoice should carry formatted amount: %s", invoice.HTML)
	}
	if !strings.Contains(invoice.FooterHTML, `class="pageNumber"`) {
		t.Fatalf("invoice footer should stamp page numbers")
	}
	receipt := builder.Receipt(brand, reg)
	if !strings.Contains(receipt.HTML, "Amount Received") {
		t.Fatalf("receipt should label the payment: %s", receipt.HTML)
	}
}
