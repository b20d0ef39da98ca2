package domain

import "errors"

var (
	// ErrNoSession is returned when a request carries no session token.
	ErrNoSession = errors.New("no session")
	// ErrInvalidSessionToken is returned when a token's signature is invalid,
	// its payload is malformed, or it has expired.
	ErrInvalidSessionToken = errors.New("invalid session token")
)

// SessionClaims is the identity embedded in a session token.
// The token is integrity-protected but not encrypted, so nothing
// sensitive beyond this public identity may be stored in it.
type SessionClaims struct {
	UserID int64  `json:"id"`    // Identifier of the authenticated user
	Email  string `json:"email"` // Login identifier
	Name   string `json:"name"`  // Display name
}
