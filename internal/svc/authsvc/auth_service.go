package authsvc

import (
	"context"
	"fmt"
	"regexp"

	"github.com/kimlik-dev/kimlik/internal/domain"
	"github.com/kimlik-dev/kimlik/internal/infra/logging"
	"github.com/kimlik-dev/kimlik/internal/repo/user"
)

// AuthConfig contains configuration parameters for the authentication service.
type AuthConfig struct {
	// BcryptCost is the bcrypt work factor for new password hashes
	BcryptCost int `env:"BCRYPT_COST" default:"10"`
}

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// emailShape is a shallow local@domain.tld check, intentionally far from full
// RFC 5322 validation.
var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthService provides account registration and credential authentication.
// Successful register and login both end with a freshly issued session token.
type AuthService struct {
	Config   AuthConfig
	UserRepo user.Repository
	Hasher   *PasswordHasher
	Tokens   *TokenIssuer
	Log      logging.Logger
}

// NewAuthService creates a new AuthService with the given user repository factory,
// token issuer and configuration.
// Returns an error if the user repository cannot be created.
func NewAuthService(repoFactory user.RepositoryFactory, tokens *TokenIssuer, cfg AuthConfig) (*AuthService, error) {
	log := logging.GetLogger("svc.authsvc.auth_service")

	userRepo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new user repo: %w", err)
	}

	return &AuthService{
		Config:   cfg,
		UserRepo: userRepo,
		Hasher:   NewPasswordHasher(cfg.BcryptCost),
		Tokens:   tokens,
		Log:      log,
	}, nil
}

// Register creates a new user account and issues a session token for it.
// Returns domain.ErrMissingFields, domain.ErrInvalidEmail or
// domain.ErrPasswordTooShort on malformed input, and domain.ErrEmailTaken
// if the email is already registered.
func (s *AuthService) Register(
	ctx context.Context,
	name, email, password string,
) (_ *domain.User, _ string, err error) {
	log := s.Log.With(logging.Group("user", "email", email))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "register failed", "error", err)
		} else {
			log.DebugContext(ctx, "user registered")
		}
	}()

	if name == "" || email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}

	if !emailShape.MatchString(email) {
		return nil, "", domain.ErrInvalidEmail
	}

	if len(password) < MinPasswordLength {
		return nil, "", domain.ErrPasswordTooShort
	}

	// Fast path; the store's unique constraint is the real guarantee
	// against concurrent registrations of the same email.
	if _, found, err := s.UserRepo.GetUserByEmail(ctx, email); err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	} else if found {
		return nil, "", domain.ErrEmailTaken
	}

	passwordHash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	newUser, err := s.UserRepo.CreateUser(ctx, name, email, passwordHash)
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(newUser)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return newUser, token, nil
}

// Login authenticates a user by email and password and issues a session token.
// Returns domain.ErrMissingFields on absent input and
// domain.ErrInvalidCredentials when the email is unknown or the password is
// wrong, without distinguishing the two.
func (s *AuthService) Login(ctx context.Context, email, password string) (_ *domain.User, _ string, err error) {
	log := s.Log

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "login failed", "error", err)
		} else {
			log.DebugContext(ctx, "login successful")
		}
	}()

	if email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}

	foundUser, found, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	} else if !found {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !s.Hasher.Verify(password, foundUser.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(foundUser)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return foundUser, token, nil
}

// Close releases resources held by the service, such as database connections.
// Returns an error if cleanup fails.
func (s *AuthService) Close() error {
	if err := s.UserRepo.Close(); err != nil {
		return fmt.Errorf("close user repo: %w", err)
	}

	return nil
}
