package authsvc_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kimlik-dev/kimlik/internal/svc/authsvc"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	hasher := authsvc.NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash == "secret1" {
		t.Error("Hash() returned the plaintext")
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "correct password",
			password: "secret1",
			hash:     hash,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "secret2",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
			want:     false,
		},
		{
			name:     "garbage hash",
			password: "secret1",
			hash:     "not-a-bcrypt-hash",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hasher.Verify(tt.password, tt.hash); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordHasher_HashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := authsvc.NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	second, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, expected distinct salts")
	}

	if !hasher.Verify("secret1", first) || !hasher.Verify("secret1", second) {
		t.Error("salted hashes no longer verify against the original password")
	}
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	t.Parallel()

	// Out-of-range costs must fall back to the default work factor.
	hasher := authsvc.NewPasswordHasher(0)

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost() error = %v", err)
	}

	if cost != authsvc.DefaultBcryptCost {
		t.Errorf("Cost() = %d, want %d", cost, authsvc.DefaultBcryptCost)
	}
}
