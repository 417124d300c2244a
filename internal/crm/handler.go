package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// PDFRenderer converts assembled HTML into PDF bytes.
type PDFRenderer interface {
	RenderDocument(ctx context.Context, html, footerHTML string) ([]byte, error)
}

// Handler exposes the CRM over JSON endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	billing *BillingBuilder
	pdf     PDFRenderer
}

// NewHandler builds the CRM handler.
func NewHandler(logger *slog.Logger, service *Service, billing *BillingBuilder, pdf PDFRenderer) *Handler {
	return &Handler{logger: logger, service: service, billing: billing, pdf: pdf}
}

// MountRoutes registers CRM routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/crm", func(r chi.Router) {
		r.Get("/brands", h.listBrands)
		r.Post("/brands", h.createBrand)
		r.Get("/brands/{id}", h.getBrand)
		r.Put("/brands/{id}", h.updateBrand)
		r.Delete("/brands/{id}", h.deleteBrand)
		r.Get("/brands/{id}/registrations", h.listRegistrations)
		r.Post("/brands/{id}/registrations", h.createRegistration)

		r.Get("/registrations/{id}", h.getRegistration)
		r.Put("/registrations/{id}", h.updateRegistration)
		r.Delete("/registrations/{id}", h.deleteRegistration)
		r.Get("/registrations/{id}/invoice.pdf", h.downloadInvoice)
		r.Get("/registrations/{id}/receipt.pdf", h.downloadReceipt)

		r.Post("/registrations/{id}/reminders", h.addReminder)
		r.Get("/registrations/{id}/reminders/{reminderID}", h.getReminder)
		r.Put("/registrations/{id}/reminders/{reminderID}/status", h.markReminder)
		r.Delete("/registrations/{id}/reminders/{reminderID}", h.deleteReminder)
	})
}

func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, brands)
}

func (h *Handler) createBrand(w http.ResponseWriter, r *http.Request) {
	var input BrandInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	brand, err := h.service.CreateBrand(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, brand)
}

func (h *Handler) getBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := h.service.GetBrand(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, brand)
}

func (h *Handler) updateBrand(w http.ResponseWriter, r *http.Request) {
	var input BrandInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	brand, err := h.service.UpdateBrand(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, brand)
}

func (h *Handler) deleteBrand(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBrand(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.service.ListRegistrations(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, regs)
}

func (h *Handler) createRegistration(w http.ResponseWriter, r *http.Request) {
	var input RegistrationInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	reg, err := h.service.CreateRegistration(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) getRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := h.service.GetRegistration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reg)
}

func (h *Handler) updateRegistration(w http.ResponseWriter, r *http.Request) {
	var input RegistrationInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	reg, err := h.service.UpdateRegistration(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reg)
}

func (h *Handler) deleteRegistration(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRegistration(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addReminder(w http.ResponseWriter, r *http.Request) {
	var input ReminderInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	reminder, err := h.service.AddReminder(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, reminder)
}

func (h *Handler) getReminder(w http.ResponseWriter, r *http.Request) {
	reminder, err := h.service.GetReminder(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reminderID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reminder)
}

func (h *Handler) markReminder(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, err)
		return
	}
	err := h.service.MarkReminder(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reminderID"), ReminderStatus(input.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReminder(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reminderID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) downloadInvoice(w http.ResponseWriter, r *http.Request) {
	h.downloadBilling(w, r, func(brand Brand, reg Registration) BillingDocument {
		return h.billing.Invoice(brand, reg)
	})
}

func (h *Handler) downloadReceipt(w http.ResponseWriter, r *http.Request) {
	h.downloadBilling(w, r, func(brand Brand, reg Registration) BillingDocument {
		return h.billing.Receipt(brand, reg)
	})
}

func (h *Handler) downloadBilling(w http.ResponseWriter, r *http.Request, build func(Brand, Registration) BillingDocument) {
	if h.pdf == nil || h.billing == nil {
		h.writeError(w, errors.New("billing documents not configured"))
		return
	}
	reg, err := h.service.GetRegistration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	brand, err := h.service.GetBrand(r.Context(), reg.BrandID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	doc := build(brand, reg)
	pdfBytes, err := h.pdf.RenderDocument(r.Context(), doc.HTML, doc.FooterHTML)
	if err != nil {
		h.writeError(w, fmt.Errorf("render %s: %w", doc.Title, err))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if _, err := w.Write(pdfBytes); err != nil {
		h.logError("stream billing document", err)
	}
}

func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed JSON body", shared.ErrValidation)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	shared.WriteJSON(h.logger, w, status, payload)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	shared.WriteError(h.logger, w, err)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
