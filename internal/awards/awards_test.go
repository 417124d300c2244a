package awards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/valuable-brands/backoffice/internal/shared"
)

func TestCastVoteIncrementsExactlyOneNominee(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	cat, err := svc.CastVote(ctx, "best-emerging-brand", "kujali-foods")
	if err != nil {
		t.Fatalf("cast vote: %v", err)
	}
	votes := map[string]int{}
	for _, n := range cat.Nominees {
		votes[n.ID] = n.Votes
	}
	if votes["kujali-foods"] != 246 {
		t.Fatalf("expected Kujali Foods at 246, got %d", votes["kujali-foods"])
	}
	if votes["safari-tech-solutions"] != 189 || votes["green-harvest-kenya"] != 156 {
		t.Fatalf("other nominees must be untouched: %+v", votes)
	}
}

func TestCastVoteUnknownNominee(t *testing.T) {
	svc := NewService()
	if _, err := svc.CastVote(context.Background(), "best-emerging-brand", "nope"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCategoriesReturnCopies(t *testing.T) {
	svc := NewService()
	cats := svc.Categories(context.Background())
	cats[0].Nominees[0].Votes = 9999

	fresh, err := svc.Category(context.Background(), cats[0].ID)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if fresh.Nominees[0].Votes == 9999 {
		t.Fatalf("internal state must not alias returned slices")
	}
}

func TestStandingsOrderByVotes(t *testing.T) {
	svc := NewService()
	nominees, err := svc.Standings(context.Background(), "best-emerging-brand")
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if nominees[0].ID != "kujali-foods" || nominees[2].ID != "green-harvest-kenya" {
		t.Fatalf("unexpected order %+v", nominees)
	}
}

func TestVoteEndpoint(t *testing.T) {
	h := NewHandler(nil, NewService())
	r := chi.NewRouter()
	h.MountRoutes(r)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"nomineeId":"kujali-foods"}`)
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/awards/categories/best-emerging-brand/vote", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var cat Category
	if err := json.Unmarshal(rec.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, n := range cat.Nominees {
		if n.ID == "kujali-foods" && n.Votes != 246 {
			t.Fatalf("expected 246 votes, got %d", n.Votes)
		}
	}
}

func TestVoteEndpointRequiresNominee(t *testing.T) {
	h := NewHandler(nil, NewService())
	r := chi.NewRouter()
	h.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/awards/categories/best-emerging-brand/vote", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
