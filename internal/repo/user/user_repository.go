package user

import (
	"context"

	"github.com/kimlik-dev/kimlik/internal/domain"
)

// Repository defines the interface for user data persistence.
type Repository interface {
	// CreateUser adds a new user to the repository and returns it with its
	// assigned ID and creation time.
	// Returns domain.ErrEmailTaken if the email is already registered.
	CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address.
	// Returns the user object and true if found, or nil and false if not found.
	// Returns an error if the operation fails.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, bool, error)

	// Close releases any resources held by the repository.
	// Returns an error if cleanup fails.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
