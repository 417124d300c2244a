package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique-key conflict.
	ErrDuplicate = errors.New("duplicate record")
	// ErrValidation indicates invalid caller input.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyBootstrapped occurs when a superadmin already exists.
	ErrAlreadyBootstrapped = errors.New("superadmin already exists")
)
