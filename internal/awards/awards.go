package awards

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Nominee is a brand standing in an award category.
type Nominee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// Category groups nominees competing for one award.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Nominees []Nominee `json:"nominees"`
}

// Service holds the nomination state and tallies votes.
type Service struct {
	mu         sync.RWMutex
	categories map[string]*Category
	order      []string
}

// NewService builds the awards service seeded with the current nomination
// round.
func NewService() *Service {
	s := &Service{categories: make(map[string]*Category)}
	for _, c := range seedCategories() {
		cat := c
		s.categories[cat.ID] = &cat
		s.order = append(s.order, cat.ID)
	}
	return s
}

func seedCategories() []Category {
	return []Category{
		{
			ID:   "best-emerging-brand",
			Name: "Best Emerging Brand",
			Nominees: []Nominee{
				{ID: "kujali-foods", Name: "Kujali Foods", Votes: 245},
				{ID: "safari-tech-solutions", Name: "Safari Tech Solutions", Votes: 189},
				{ID: "green-harvest-kenya", Name: "Green Harvest Kenya", Votes: 156},
			},
		},
		{
			ID:   "marketing-campaign-of-the-year",
			Name: "Marketing Campaign of the Year",
			Nominees: []Nominee{
				{ID: "twiga-beverages", Name: "Twiga Beverages", Votes: 312},
				{ID: "nyota-fintech", Name: "Nyota Fintech", Votes: 278},
				{ID: "malaika-cosmetics", Name: "Malaika Cosmetics", Votes: 204},
			},
		},
		{
			ID:   "customer-experience-champion",
			Name: "Customer Experience Champion",
			Nominees: []Nominee{
				{ID: "pamoja-sacco", Name: "Pamoja Sacco", Votes: 198},
				{ID: "baraka-logistics", Name: "Baraka Logistics", Votes: 173},
				{ID: "upendo-health", Name: "Upendo Health", Votes: 141},
			},
		},
	}
}

// Categories lists every category with its current tallies.
func (s *Service) Categories(_ context.Context) []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneCategory(*s.categories[id]))
	}
	return out
}

// Category returns one category by id.
func (s *Service) Category(_ context.Context, id string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.categories[id]
	if !ok {
		return Category{}, fmt.Errorf("category %s: %w", id, shared.ErrNotFound)
	}
	return cloneCategory(*cat), nil
}

// CastVote increments the tally of exactly one nominee and returns the
// updated category.
func (s *Service) CastVote(_ context.Context, categoryID, nomineeID string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat, ok := s.categories[categoryID]
	if !ok {
		return Category{}, fmt.Errorf("category %s: %w", categoryID, shared.ErrNotFound)
	}
	for i := range cat.Nominees {
		if cat.Nominees[i].ID == nomineeID {
			cat.Nominees[i].Votes++
			return cloneCategory(*cat), nil
		}
	}
	return Category{}, fmt.Errorf("nominee %s: %w", nomineeID, shared.ErrNotFound)
}

// Standings returns a category's nominees ordered by votes, highest first.
func (s *Service) Standings(ctx context.Context, categoryID string) ([]Nominee, error) {
	cat, err := s.Category(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	nominees := cat.Nominees
	sort.SliceStable(nominees, func(i, j int) bool { return nominees[i].Votes > nominees[j].Votes })
	return nominees, nil
}

func cloneCategory(cat Category) Category {
	out := cat
	out.Nominees = make([]Nominee, len(cat.Nominees))
	copy(out.Nominees, cat.Nominees)
	return out
}
