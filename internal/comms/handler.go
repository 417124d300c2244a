package comms

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Handler exposes communications endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the communications handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers communications routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/comms", func(r chi.Router) {
		r.Get("/templates", h.listTemplates)
		r.Post("/templates", h.createTemplate)
		r.Get("/templates/{id}", h.getTemplate)
		r.Put("/templates/{id}", h.updateTemplate)
		r.Delete("/templates/{id}", h.deleteTemplate)
		r.Post("/bulk-send", h.bulkSend)
	})
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusOK, templates)
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var input TemplateInput
	if err := decodeJSON(r, &input); err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	tpl, err := h.service.CreateTemplate(r.Context(), input)
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusCreated, tpl)
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.service.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusOK, tpl)
}

func (h *Handler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var input TemplateInput
	if err := decodeJSON(r, &input); err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	tpl, err := h.service.UpdateTemplate(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusOK, tpl)
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) bulkSend(w http.ResponseWriter, r *http.Request) {
	var input BulkSendInput
	if err := decodeJSON(r, &input); err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	result, err := h.service.BulkSend(r.Context(), input)
	if err != nil {
		shared.WriteError(h.logger, w, err)
		return
	}
	shared.WriteJSON(h.logger, w, http.StatusAccepted, result)
}

func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed JSON body", shared.ErrValidation)
	}
	return nil
}
