package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Service implements CRM use cases on top of a Repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds the CRM service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// BrandInput carries the editable brand fields.
type BrandInput struct {
	Name         string `json:"name" validate:"required"`
	Industry     string `json:"industry"`
	ContactName  string `json:"contactName" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

// RegistrationInput carries the editable registration fields.
type RegistrationInput struct {
	EventName     string  `json:"eventName" validate:"required"`
	Package       string  `json:"package" validate:"required"`
	InvoiceNumber string  `json:"invoiceNumber" validate:"required"`
	InvoiceAmount float64 `json:"invoiceAmount" validate:"gt=0"`
	PaymentStatus string  `json:"paymentStatus" validate:"omitempty,oneof=Pending Partial Paid"`
}

// ReminderInput carries a new follow-up reminder.
type ReminderInput struct {
	Kind  string    `json:"kind" validate:"required,oneof=call message email"`
	DueAt time.Time `json:"dueAt" validate:"required"`
	Note  string    `json:"note"`
}

func (s *Service) CreateBrand(ctx context.Context, input BrandInput) (Brand, error) {
	if err := s.validate.Struct(input); err != nil {
		return Brand{}, fmt.Errorf("%w: %s", shared.ErrValidation, validationDetail(err))
	}
	now := s.now()
	brand := Brand{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Industry:     strings.TrimSpace(input.Industry),
		ContactName:  strings.TrimSpace(input.ContactName),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return Brand{}, err
	}
	return brand, nil
}

func (s *Service) GetBrand(ctx context.Context, id string) (Brand, error) {
	return s.repo.GetBrand(ctx, id)
}

func (s *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	return s.repo.ListBrands(ctx)
}

func (s *Service) UpdateBrand(ctx context.Context, id string, input BrandInput) (Brand, error) {
	if err := s.validate.Struct(input); err != nil {
		return Brand{}, fmt.Errorf("%w: %s", shared.ErrValidation, validationDetail(err))
	}
	brand, err := s.repo.GetBrand(ctx, id)
	if err != nil {
		return Brand{}, err
	}
	brand.Name = strings.TrimSpace(input.Name)
	brand.Industry = strings.TrimSpace(input.Industry)
	brand.ContactName = strings.TrimSpace(input.ContactName)
	brand.ContactEmail = strings.TrimSpace(input.ContactEmail)
	brand.ContactPhone = strings.TrimSpace(input.ContactPhone)
	brand.Notes = input.Notes
	brand.UpdatedAt = s.now()
	if err := s.repo.UpdateBrand(ctx, brand); err != nil {
		return Brand{}, err
	}
	return brand, nil
}

// DeleteBrand removes the brand and cascades over its registrations.
func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	return s.repo.DeleteBrand(ctx, id)
}

func (s *Service) CreateRegistration(ctx context.Context, brandID string, input RegistrationInput) (Registration, error) {
	if err := s.validate.Struct(input); err != nil {
		return Registration{}, fmt.Errorf("%w: %s", shared.ErrValidation, validationDetail(err))
	}
	status := PaymentStatus(input.PaymentStatus)
	if status == "" {
		status = PaymentPending
	}
	now := s.now()
	reg := Registration{
		ID:            uuid.NewString(),
		BrandID:       brandID,
		EventName:     strings.TrimSpace(input.EventName),
		Package:       strings.TrimSpace(input.Package),
		InvoiceNumber: strings.TrimSpace(input.InvoiceNumber),
		InvoiceAmount: input.InvoiceAmount,
		PaymentStatus: status,
		Reminders:     []Reminder{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateRegistration(ctx, reg); err != nil {
		return Registration{}, err
	}
	return reg, nil
}

func (s *Service) GetRegistration(ctx context.Context, id string) (Registration, error) {
	return s.repo.GetRegistration(ctx, id)
}

func (s *Service) ListRegistrations(ctx context.Context, brandID string) ([]Registration, error) {
	if _, err := s.repo.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}
	return s.repo.ListRegistrationsByBrand(ctx, brandID)
}

func (s *Service) UpdateRegistration(ctx context.Context, id string, input RegistrationInput) (Registration, error) {
	if err := s.validate.Struct(input); err != nil {
		return Registration{}, fmt.Errorf("%w: %s", shared.ErrValidation, validationDetail(err))
	}
	reg, err := s.repo.GetRegistration(ctx, id)
	if err != nil {
		return Registration{}, err
	}
	reg.EventName = strings.TrimSpace(input.EventName)
	reg.Package = strings.TrimSpace(input.Package)
	reg.InvoiceNumber = strings.TrimSpace(input.InvoiceNumber)
	reg.InvoiceAmount = input.InvoiceAmount
	if input.PaymentStatus != "" {
		reg.PaymentStatus = PaymentStatus(input.PaymentStatus)
	}
	reg.UpdatedAt = s.now()
	if err := s.repo.UpdateRegistration(ctx, reg); err != nil {
		return Registration{}, err
	}
	return s.repo.GetRegistration(ctx, id)
}

func (s *Service) DeleteRegistration(ctx context.Context, id string) error {
	return s.repo.DeleteRegistration(ctx, id)
}

// AddReminder appends a Planned reminder to the registration and returns it
// with its generated identifier.
func (s *Service) AddReminder(ctx context.Context, registrationID string, input ReminderInput) (Reminder, error) {
	if err := s.validate.Struct(input); err != nil {
		return Reminder{}, fmt.Errorf("%w: %s", shared.ErrValidation, validationDetail(err))
	}
	reminder := Reminder{
		ID:             uuid.NewString(),
		RegistrationID: registrationID,
		Kind:           ReminderKind(input.Kind),
		DueAt:          input.DueAt,
		Note:           input.Note,
		Status:         ReminderPlanned,
		CreatedAt:      s.now(),
	}
	if err := s.repo.AddReminder(ctx, registrationID, reminder); err != nil {
		return Reminder{}, err
	}
	return reminder, nil
}

func (s *Service) GetReminder(ctx context.Context, registrationID, reminderID string) (Reminder, error) {
	return s.repo.GetReminder(ctx, registrationID, reminderID)
}

func (s *Service) MarkReminder(ctx context.Context, registrationID, reminderID string, status ReminderStatus) error {
	switch status {
	case ReminderPlanned, ReminderSent, ReminderDone:
	default:
		return fmt.Errorf("%w: unknown reminder status %q", shared.ErrValidation, status)
	}
	return s.repo.UpdateReminderStatus(ctx, registrationID, reminderID, status)
}

func (s *Service) DeleteReminder(ctx context.Context, registrationID, reminderID string) error {
	return s.repo.DeleteReminder(ctx, registrationID, reminderID)
}

// DueReminders lists Planned reminders due at or before now.
func (s *Service) DueReminders(ctx context.Context) ([]DueReminder, error) {
	return s.repo.DueReminders(ctx, s.now())
}

func validationDetail(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err.Error()
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field())
	}
	return "invalid fields: " + strings.Join(names, ", ")
}
