package authsvc

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kimlik-dev/kimlik/internal/domain"
)

// TokenConfig contains configuration parameters for session tokens.
type TokenConfig struct {
	// Secret is the HMAC key used to sign session tokens.
	// Rotating it invalidates all outstanding tokens.
	Secret string `env:"JWT_SECRET" default:"devsecret_change_me"`

	// TokenDuration is the validity duration of session tokens in seconds
	TokenDuration int64 `env:"TOKEN_DURATION" default:"604800"` // 7d
}

// DefaultTokenSecret is the development fallback signing secret.
// Release builds must not run with it.
const DefaultTokenSecret = "devsecret_change_me"

type sessionTokenClaims struct {
	jwt.RegisteredClaims

	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// TokenIssuer signs and verifies session tokens.
//
// Tokens are stateless: nothing is stored server-side, so a token stays
// valid until its expiry even after logout. Logout only removes the
// client-held copy.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

// NewTokenIssuer creates a TokenIssuer from the given configuration.
func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.Secret),
		validity: time.Duration(cfg.TokenDuration * int64(time.Second)),
	}
}

// ValiditySeconds returns the configured token lifetime in whole seconds,
// which is also the max age of the session cookie carrying the token.
func (t *TokenIssuer) ValiditySeconds() int {
	return int(t.validity / time.Second)
}

// Issue produces a signed session token embedding the user's public identity
// and an expiration at the configured validity from now.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})

	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks a session token's signature and expiration.
// Returns the embedded claims if valid, or domain.ErrInvalidSessionToken for
// any validation failure. Verification is binary; there is no partial trust.
func (t *TokenIssuer) Verify(tokenString string) (domain.SessionClaims, error) {
	claims := &sessionTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.SessionClaims{}, errors.Join(domain.ErrInvalidSessionToken, err)
	}

	if !token.Valid {
		return domain.SessionClaims{}, domain.ErrInvalidSessionToken
	}

	return domain.SessionClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
