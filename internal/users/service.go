package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Service implements the superadmin bootstrap.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds the users service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New(), now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Bootstrap creates the first superadmin. It fails once one exists.
func (s *Service) Bootstrap(ctx context.Context, input BootstrapInput) (User, error) {
	if err := s.validate.Struct(input); err != nil {
		return User{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}
	exists, err := s.repo.SuperAdminExists(ctx)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, shared.ErrAlreadyBootstrapped
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         RoleSuperAdmin,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}
