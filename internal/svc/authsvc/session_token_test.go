package authsvc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kimlik-dev/kimlik/internal/domain"
	"github.com/kimlik-dev/kimlik/internal/svc/authsvc"
)

func testUser() *domain.User {
	return &domain.User{
		ID:           1,
		Name:         "Ada",
		Email:        "ada@x.com",
		PasswordHash: "$2a$10$irrelevant",
		CreatedAt:    1700000000,
	}
}

func newTestIssuer(secret string, validity int64) *authsvc.TokenIssuer {
	return authsvc.NewTokenIssuer(authsvc.TokenConfig{
		Secret:        secret,
		TokenDuration: validity,
	})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer("test-secret", 3600)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.UserID != 1 {
		t.Errorf("Verify() id = %d, want 1", claims.UserID)
	}
	if claims.Email != "ada@x.com" {
		t.Errorf("Verify() email = %q, want %q", claims.Email, "ada@x.com")
	}
	if claims.Name != "Ada" {
		t.Errorf("Verify() name = %q, want %q", claims.Name, "Ada")
	}
}

func TestTokenIssuer_Verify(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer("test-secret", 3600)

	validToken, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expiredToken, err := newTestIssuer("test-secret", -3600).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	foreignToken, err := newTestIssuer("other-secret", 3600).Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "valid token",
			token:   validToken,
			wantErr: nil,
		},
		{
			name:    "expired token",
			token:   expiredToken,
			wantErr: domain.ErrInvalidSessionToken,
		},
		{
			name:    "token signed with another secret",
			token:   foreignToken,
			wantErr: domain.ErrInvalidSessionToken,
		},
		{
			name:    "tampered payload",
			token:   tamper(validToken),
			wantErr: domain.ErrInvalidSessionToken,
		},
		{
			name:    "malformed token",
			token:   "not-a-token",
			wantErr: domain.ErrInvalidSessionToken,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: domain.ErrInvalidSessionToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := issuer.Verify(tt.token)

			if (err != nil) != (tt.wantErr != nil) {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// tamper flips one character inside the payload segment of a JWT so the
// signature no longer matches.
func tamper(token string) string {
	parts := strings.SplitN(token, ".", 3)
	payload := []byte(parts[1])

	mid := len(payload) / 2
	if payload[mid] == 'A' {
		payload[mid] = 'B'
	} else {
		payload[mid] = 'A'
	}

	parts[1] = string(payload)

	return strings.Join(parts, ".")
}
