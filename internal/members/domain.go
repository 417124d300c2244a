package members

import "time"

// Member is a registered individual member of the network.
type Member struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	IDNumber  string    `json:"idNumber"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterInput is the member registration request body.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	IDNumber  string `json:"idNumber" validate:"required"`
}
