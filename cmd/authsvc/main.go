package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/kimlik-dev/kimlik/internal/infra/config"
	"github.com/kimlik-dev/kimlik/internal/infra/logging"
	"github.com/kimlik-dev/kimlik/internal/infra/transport/http"
	"github.com/kimlik-dev/kimlik/internal/repo/user"
	"github.com/kimlik-dev/kimlik/internal/svc/authsvc"
)

const (
	appName = "kimlik"
	svcName = "authsvc"
)

// ErrDefaultSecretInRelease is returned when the process starts in release
// mode with the development signing secret still in place.
var ErrDefaultSecretInRelease = errors.New("JWT_SECRET must be set in release mode")

type Config struct {
	config.EnvConfig

	Log   logging.LoggerConfig            `envPrefix:"LOG_"`
	Auth  authsvc.AuthConfig              `envPrefix:"AUTH_"`
	Token authsvc.TokenConfig             `envPrefix:"TOKEN_"`
	HTTP  authsvc.HTTPTransportConfig     `envPrefix:"HTTP_"`
	User  user.SQLiteUserRepositoryConfig `envPrefix:"USER_"`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()

		configPrefix = strings.ToUpper(strings.Join([]string{appName, svcName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, svcName}, "."))
	)

	// Optional .env file for local development; absence is not an error.
	_ = godotenv.Load()

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	defer func() {
		log := logging.GetLogger("cmd.authsvc")

		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)
			panic(err)
		}

		log.InfoContext(ctx, "shutdown")
	}()

	if cfg.HTTP.ReleaseMode && cfg.Token.Secret == authsvc.DefaultTokenSecret {
		return ErrDefaultSecretInRelease
	}

	authSvc, err := authsvc.NewAuthService(
		user.SQLiteUserRepositoryFactory(cfg.User),
		authsvc.NewTokenIssuer(cfg.Token),
		cfg.Auth,
	)
	if err != nil {
		return fmt.Errorf("new auth service: %w", err)
	}
	defer authSvc.Close()

	httpTransport := authsvc.NewHTTPTransport(authSvc, cfg.HTTP)

	if err := http.ListenAndServe(ctx, httpTransport, cfg.HTTP.HTTPTransportConfig); err != nil {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}
