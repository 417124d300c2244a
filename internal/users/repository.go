package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valuable-brands/backoffice/internal/shared"
)

// Repository persists administrative users.
type Repository interface {
	SuperAdminExists(ctx context.Context) (bool, error)
	Insert(ctx context.Context, user User) error
}

// PostgresRepository provides PostgreSQL backed persistence.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SuperAdminExists reports whether a superadmin account is already present.
func (r *PostgresRepository) SuperAdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT true FROM users WHERE role=$1 LIMIT 1`, RoleSuperAdmin).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check superadmin: %w", err)
	}
	return exists, nil
}

// Insert stores a new administrative user.
func (r *PostgresRepository) Insert(ctx context.Context, user User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.Role, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("user %s: %w", user.Email, shared.ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
