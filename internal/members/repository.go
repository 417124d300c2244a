package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Repository persists members.
type Repository interface {
	Insert(ctx context.Context, member Member) error
}

// PostgresRepository provides PostgreSQL backed persistence.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new member. Unique violations on email or id number map to
// ErrDuplicate.
func (r *PostgresRepository) Insert(ctx context.Context, member Member) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO members (id, first_name, last_name, email, id_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		member.ID, member.FirstName, member.LastName, member.Email, member.IDNumber, member.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("member %s: %w", member.Email, shared.ErrDuplicate)
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}
