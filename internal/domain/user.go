package domain

import "errors"

var (
	// ErrEmailTaken is returned when trying to create a user with an email that is already registered.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials is returned when the email/password combination is incorrect.
	// Callers must not distinguish between an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Validation errors for register and login input.
var (
	// ErrMissingFields is returned when one or more required fields are absent.
	ErrMissingFields = errors.New("missing fields")
	// ErrInvalidEmail is returned when the email does not have a local@domain.tld shape.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrPasswordTooShort is returned when the password is shorter than the minimum length.
	ErrPasswordTooShort = errors.New("password too short")
)

// User represents a registered account in the system.
type User struct {
	ID           int64  // Unique identifier, assigned by the store
	Name         string // Display name
	Email        string // Login identifier, unique and case-sensitive
	PasswordHash string // Hashed password, never serialized in responses
	CreatedAt    int64  // Unix timestamp of account creation
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the client-facing projection of the user.
// The password hash is deliberately not part of it.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
