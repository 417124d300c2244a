package comms

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// TemplateRepository stores message templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl Template) error
	Get(ctx context.Context, id string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Update(ctx context.Context, tpl Template) error
	Delete(ctx context.Context, id string) error
}

// MemoryTemplateRepository keeps templates in process memory.
type MemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewMemoryTemplateRepository builds an empty template store.
func NewMemoryTemplateRepository() *MemoryTemplateRepository {
	return &MemoryTemplateRepository{templates: make(map[string]Template)}
}

func (r *MemoryTemplateRepository) Create(_ context.Context, tpl Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[tpl.ID]; ok {
		return fmt.Errorf("template %s: %w", tpl.ID, shared.ErrDuplicate)
	}
	r.templates[tpl.ID] = tpl
	return nil
}

func (r *MemoryTemplateRepository) Get(_ context.Context, id string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("template %s: %w", id, shared.ErrNotFound)
	}
	return tpl, nil
}

func (r *MemoryTemplateRepository) List(_ context.Context) ([]Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryTemplateRepository) Update(_ context.Context, tpl Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[tpl.ID]; !ok {
		return fmt.Errorf("template %s: %w", tpl.ID, shared.ErrNotFound)
	}
	r.templates[tpl.ID] = tpl
	return nil
}

func (r *MemoryTemplateRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return fmt.Errorf("template %s: %w", id, shared.ErrNotFound)
	}
	delete(r.templates, id)
	return nil
}
