package comms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/valuable-brands/backoffice/internal/crm"
	"github.com/valuable-brands/backoffice/internal/shared"
)

// Enqueuer submits per-recipient delivery tasks to the background queue.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailPayload) error
}

// BrandDirectory resolves brand contacts for bulk sends.
type BrandDirectory interface {
	ListBrands(ctx context.Context) ([]crm.Brand, error)
	GetBrand(ctx context.Context, id string) (crm.Brand, error)
}

// Service manages message templates and bulk dispatch.
type Service struct {
	templates TemplateRepository
	brands    BrandDirectory
	queue     Enqueuer
	validate  *validator.Validate
	now       func() time.Time
}

// NewService builds the communications service.
func NewService(templates TemplateRepository, brands BrandDirectory, queue Enqueuer) *Service {
	return &Service{
		templates: templates,
		brands:    brands,
		queue:     queue,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// TemplateInput carries the editable template fields.
type TemplateInput struct {
	Name    string `json:"name" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (s *Service) CreateTemplate(ctx context.Context, input TemplateInput) (Template, error) {
	if err := s.validate.Struct(input); err != nil {
		return Template{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	now := s.now()
	tpl := Template{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Subject:   input.Subject,
		Body:      input.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.templates.Create(ctx, tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (s *Service) GetTemplate(ctx context.Context, id string) (Template, error) {
	return s.templates.Get(ctx, id)
}

func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.templates.List(ctx)
}

func (s *Service) UpdateTemplate(ctx context.Context, id string, input TemplateInput) (Template, error) {
	if err := s.validate.Struct(input); err != nil {
		return Template{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	tpl, err := s.templates.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}
	tpl.Name = strings.TrimSpace(input.Name)
	tpl.Subject = input.Subject
	tpl.Body = input.Body
	tpl.UpdatedAt = s.now()
	if err := s.templates.Update(ctx, tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.templates.Delete(ctx, id)
}

// BulkSendInput selects a template and the target brands. An empty BrandIDs
// list addresses every brand in the CRM.
type BulkSendInput struct {
	TemplateID string   `json:"templateId" validate:"required"`
	BrandIDs   []string `json:"brandIds"`
}

// BulkSendResult reports how many deliveries were queued.
type BulkSendResult struct {
	Queued     int      `json:"queued"`
	Recipients []string `json:"recipients"`
}

// BulkSend renders the template per brand contact and enqueues one delivery
// task per recipient, so an individual failure is retried on its own instead
// of aborting the whole batch.
func (s *Service) BulkSend(ctx context.Context, input BulkSendInput) (BulkSendResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return BulkSendResult{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	tpl, err := s.templates.Get(ctx, input.TemplateID)
	if err != nil {
		return BulkSendResult{}, err
	}

	var targets []crm.Brand
	if len(input.BrandIDs) == 0 {
		targets, err = s.brands.ListBrands(ctx)
		if err != nil {
			return BulkSendResult{}, err
		}
	} else {
		for _, id := range input.BrandIDs {
			brand, err := s.brands.GetBrand(ctx, id)
			if err != nil {
				return BulkSendResult{}, err
			}
			targets = append(targets, brand)
		}
	}

	result := BulkSendResult{Recipients: make([]string, 0, len(targets))}
	for _, brand := range targets {
		if brand.ContactEmail == "" {
			continue
		}
		subject, body := tpl.Render(brand.ContactName, brand.Name)
		payload := EmailPayload{To: brand.ContactEmail, Subject: subject, Body: body}
		if err := s.queue.EnqueueEmail(ctx, payload); err != nil {
			return result, fmt.Errorf("enqueue for %s: %w", brand.ContactEmail, err)
		}
		result.Queued++
		result.Recipients = append(result.Recipients, brand.ContactEmail)
	}
	return result, nil
}
