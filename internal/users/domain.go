package users

import "time"

// RoleSuperAdmin is the bootstrap administrator role.
const RoleSuperAdmin = "superadmin"

// User is an administrative account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BootstrapInput is the superadmin bootstrap request body.
type BootstrapInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=10"`
}
