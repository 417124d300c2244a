package crm

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Repository provides CRM storage. The in-memory implementation below is the
// default; the interface leaves room for a Postgres-backed one.
type Repository interface {
	CreateBrand(ctx context.Context, brand Brand) error
	GetBrand(ctx context.Context, id string) (Brand, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	UpdateBrand(ctx context.Context, brand Brand) error
	// DeleteBrand removes the brand and every registration attached to it.
	DeleteBrand(ctx context.Context, id string) error

	CreateRegistration(ctx context.Context, reg Registration) error
	GetRegistration(ctx context.Context, id string) (Registration, error)
	ListRegistrationsByBrand(ctx context.Context, brandID string) ([]Registration, error)
	UpdateRegistration(ctx context.Context, reg Registration) error
	DeleteRegistration(ctx context.Context, id string) error

	AddReminder(ctx context.Context, registrationID string, reminder Reminder) error
	GetReminder(ctx context.Context, registrationID, reminderID string) (Reminder, error)
	UpdateReminderStatus(ctx context.Context, registrationID, reminderID string, status ReminderStatus) error
	DeleteReminder(ctx context.Context, registrationID, reminderID string) error
	// DueReminders returns Planned reminders whose DueAt is at or before the
	// cutoff, together with their registrations.
	DueReminders(ctx context.Context, cutoff time.Time) ([]DueReminder, error)
}

// DueReminder pairs a reminder with the registration it belongs to.
type DueReminder struct {
	Reminder     Reminder
	Registration Registration
}

// MemoryRepository keeps CRM state in process memory guarded by a mutex.
// Unlike browser-local state, this is shared across every client session.
type MemoryRepository struct {
	mu            sync.RWMutex
	brands        map[string]Brand
	registrations map[string]Registration
}

// NewMemoryRepository builds an empty in-memory CRM store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		brands:        make(map[string]Brand),
		registrations: make(map[string]Registration),
	}
}

func (r *MemoryRepository) CreateBrand(_ context.Context, brand Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brands[brand.ID]; ok {
		return fmt.Errorf("brand %s: %w", brand.ID, shared.ErrDuplicate)
	}
	r.brands[brand.ID] = brand
	return nil
}

func (r *MemoryRepository) GetBrand(_ context.Context, id string) (Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	brand, ok := r.brands[id]
	if !ok {
		return Brand{}, fmt.Errorf("brand %s: %w", id, shared.ErrNotFound)
	}
	return brand, nil
}

func (r *MemoryRepository) ListBrands(_ context.Context) ([]Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	brands := make([]Brand, 0, len(r.brands))
	for _, b := range r.brands {
		brands = append(brands, b)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Name < brands[j].Name })
	return brands, nil
}

func (r *MemoryRepository) UpdateBrand(_ context.Context, brand Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brands[brand.ID]; !ok {
		return fmt.Errorf("brand %s: %w", brand.ID, shared.ErrNotFound)
	}
	r.brands[brand.ID] = brand
	return nil
}

func (r *MemoryRepository) DeleteBrand(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brands[id]; !ok {
		return fmt.Errorf("brand %s: %w", id, shared.ErrNotFound)
	}
	delete(r.brands, id)
	for regID, reg := range r.registrations {
		if reg.BrandID == id {
			delete(r.registrations, regID)
		}
	}
	return nil
}

func (r *MemoryRepository) CreateRegistration(_ context.Context, reg Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brands[reg.BrandID]; !ok {
		return fmt.Errorf("brand %s: %w", reg.BrandID, shared.ErrNotFound)
	}
	if _, ok := r.registrations[reg.ID]; ok {
		return fmt.Errorf("registration %s: %w", reg.ID, shared.ErrDuplicate)
	}
	r.registrations[reg.ID] = cloneRegistration(reg)
	return nil
}

func (r *MemoryRepository) GetRegistration(_ context.Context, id string) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.registrations[id]
	if !ok {
		return Registration{}, fmt.Errorf("registration %s: %w", id, shared.ErrNotFound)
	}
	return cloneRegistration(reg), nil
}

func (r *MemoryRepository) ListRegistrationsByBrand(_ context.Context, brandID string) ([]Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	regs := make([]Registration, 0)
	for _, reg := range r.registrations {
		if reg.BrandID == brandID {
			regs = append(regs, cloneRegistration(reg))
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].CreatedAt.Before(regs[j].CreatedAt) })
	return regs, nil
}

func (r *MemoryRepository) UpdateRegistration(_ context.Context, reg Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.registrations[reg.ID]
	if !ok {
		return fmt.Errorf("registration %s: %w", reg.ID, shared.ErrNotFound)
	}
	// Reminders are managed through the reminder operations only.
	reg.Reminders = existing.Reminders
	r.registrations[reg.ID] = reg
	return nil
}

func (r *MemoryRepository) DeleteRegistration(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.registrations[id]; !ok {
		return fmt.Errorf("registration %s: %w", id, shared.ErrNotFound)
	}
	delete(r.registrations, id)
	return nil
}

func (r *MemoryRepository) AddReminder(_ context.Context, registrationID string, reminder Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[registrationID]
	if !ok {
		return fmt.Errorf("registration %s: %w", registrationID, shared.ErrNotFound)
	}
	reg.Reminders = append(reg.Reminders, reminder)
	r.registrations[registrationID] = reg
	return nil
}

func (r *MemoryRepository) GetReminder(_ context.Context, registrationID, reminderID string) (Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.registrations[registrationID]
	if !ok {
		return Reminder{}, fmt.Errorf("registration %s: %w", registrationID, shared.ErrNotFound)
	}
	for _, rem := range reg.Reminders {
		if rem.ID == reminderID {
			return rem, nil
		}
	}
	return Reminder{}, fmt.Errorf("reminder %s: %w", reminderID, shared.ErrNotFound)
}

func (r *MemoryRepository) UpdateReminderStatus(_ context.Context, registrationID, reminderID string, status ReminderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[registrationID]
	if !ok {
		return fmt.Errorf("registration %s: %w", registrationID, shared.ErrNotFound)
	}
	for i := range reg.Reminders {
		if reg.Reminders[i].ID == reminderID {
			reg.Reminders[i].Status = status
			r.registrations[registrationID] = reg
			return nil
		}
	}
	return fmt.Errorf("reminder %s: %w", reminderID, shared.ErrNotFound)
}

func (r *MemoryRepository) DeleteReminder(_ context.Context, registrationID, reminderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.registrations[registrationID]
	if !ok {
		return fmt.Errorf("registration %s: %w", registrationID, shared.ErrNotFound)
	}
	for i := range reg.Reminders {
		if reg.Reminders[i].ID == reminderID {
			reg.Reminders = append(reg.Reminders[:i], reg.Reminders[i+1:]...)
			r.registrations[registrationID] = reg
			return nil
		}
	}
	return fmt.Errorf("reminder %s: %w", reminderID, shared.ErrNotFound)
}

func (r *MemoryRepository) DueReminders(_ context.Context, cutoff time.Time) ([]DueReminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var due []DueReminder
	for _, reg := range r.registrations {
		for _, rem := range reg.Reminders {
			if rem.Status == ReminderPlanned && !rem.DueAt.After(cutoff) {
				due = append(due, DueReminder{Reminder: rem, Registration: cloneRegistration(reg)})
			}
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].Reminder.DueAt.Before(due[j].Reminder.DueAt) })
	return due, nil
}

func cloneRegistration(reg Registration) Registration {
	out := reg
	out.Reminders = make([]Reminder, len(reg.Reminders))
	copy(out.Reminders, reg.Reminders)
	return out
}
