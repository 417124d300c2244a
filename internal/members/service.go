package members

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Service implements member registration.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds the members service.
func NewService(repo Repository) *Service {
	v := validator.New()
	// Report fields by their JSON names so error messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Service{repo: repo, validate: v, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register validates the input and stores a new member.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return Member{}, fmt.Errorf("%w: %s", shared.ErrValidation, missingFieldDetail(err))
	}
	member := Member{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		IDNumber:  strings.TrimSpace(input.IDNumber),
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, member); err != nil {
		return Member{}, err
	}
	return member, nil
}

func missingFieldDetail(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err.Error()
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field())
	}
	return "missing or invalid fields: " + strings.Join(names, ", ")
}
