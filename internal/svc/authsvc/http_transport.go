package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/kimlik-dev/kimlik/internal/domain"
	context_ "github.com/kimlik-dev/kimlik/internal/infra/context"
	"github.com/kimlik-dev/kimlik/internal/infra/logging"
	http_ "github.com/kimlik-dev/kimlik/internal/infra/transport/http"
)

// User-facing messages of the API. These strings are part of the external
// contract and must stay byte-identical across endpoints; in particular,
// unknown email and wrong password share one message so that responses do
// not reveal which emails are registered.
const (
	MsgFillAllFields     = "Tüm alanları doldurun."
	MsgInvalidEmail      = "Geçerli bir e-posta girin."
	MsgPasswordTooShort  = "Şifre en az 6 karakter olmalı."
	MsgEmailTaken        = "Bu e-posta zaten kayıtlı."
	MsgCredentialsNeeded = "E-posta ve şifre gerekli."
	MsgBadCredentials    = "E-posta veya şifre hatalı."
	MsgServerError       = "Sunucu hatası."
)

// HTTPTransportConfig contains configuration parameters for the HTTP transport layer.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// HTTPTransport handles HTTP requests for the authentication service.
// It provides endpoints for registration, login, session introspection and logout.
type HTTPTransport struct {
	authSvc *AuthService
	log     logging.Logger
	cfg     HTTPTransportConfig
}

// NewHTTPTransport creates a new HTTPTransport instance with the given configuration.
// It requires an AuthService for handling authentication operations.
func NewHTTPTransport(
	authSvc *AuthService,
	cfg HTTPTransportConfig,
) *HTTPTransport {
	return &HTTPTransport{
		authSvc: authSvc,
		log:     logging.GetLogger("svc.authsvc.http_transport"),
		cfg:     cfg,
	}
}

// ServeHTTP implements http.Handler and sets up routes for the auth service endpoints:
// - POST /api/register: Create an account and start a session
// - POST /api/login: Authenticate and start a session
// - GET /api/me: Return the identity of the current session
// - POST /api/logout: Clear the session cookie
// Any other path falls through to a minimal landing page.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", ht.HandleRegister)
	mux.HandleFunc("POST /api/login", ht.HandleLogin)
	mux.Handle("GET /api/me", http_.SessionMiddleware(
		http.HandlerFunc(ht.HandleMe), ht.authSvc.Tokens, ht.log,
	))
	mux.HandleFunc("POST /api/logout", ht.HandleLogout)
	mux.HandleFunc("/", ht.HandleLanding)
	mux.ServeHTTP(w, r)
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	OK   bool `json:"ok"`
	User any  `json:"user"`
}

// HandleRegister processes account registration requests.
// Expects a JSON body with name, email and password.
// On success it sets the session cookie and returns the public user projection.
func (ht *HTTPTransport) HandleRegister(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleRegister(w, r)
}

func (ht *HTTPTransport) handleRegister(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "user register failed", "error", err)
		} else {
			log.DebugContext(ctx, "user registered")
		}
	}(r.Context())

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http_.WriteError(w, http.StatusBadRequest, MsgFillAllFields)

		return fmt.Errorf("decode request: %w", err)
	}

	newUser, token, err := ht.authSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			http_.WriteError(w, http.StatusBadRequest, MsgFillAllFields)
		case errors.Is(err, domain.ErrInvalidEmail):
			http_.WriteError(w, http.StatusBadRequest, MsgInvalidEmail)
		case errors.Is(err, domain.ErrPasswordTooShort):
			http_.WriteError(w, http.StatusBadRequest, MsgPasswordTooShort)
		case errors.Is(err, domain.ErrEmailTaken):
			http_.WriteError(w, http.StatusConflict, MsgEmailTaken)
		default:
			http_.WriteError(w, http.StatusInternalServerError, MsgServerError)
		}

		return fmt.Errorf("register user: %w", err)
	}

	http.SetCookie(w, ht.sessionCookie(token))
	http_.WriteJSON(w, http.StatusOK, userResponse{OK: true, User: newUser.Public()})

	return nil
}

// HandleLogin processes login requests.
// Expects a JSON body with email and password.
// On success it sets the session cookie and returns the public user projection.
func (ht *HTTPTransport) HandleLogin(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleLogin(w, r)
}

func (ht *HTTPTransport) handleLogin(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "user login failed", "error", err)
		} else {
			log.DebugContext(ctx, "user logged in")
		}
	}(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http_.WriteError(w, http.StatusBadRequest, MsgCredentialsNeeded)

		return fmt.Errorf("decode request: %w", err)
	}

	foundUser, token, err := ht.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			http_.WriteError(w, http.StatusBadRequest, MsgCredentialsNeeded)
		case errors.Is(err, domain.ErrInvalidCredentials):
			http_.WriteError(w, http.StatusUnauthorized, MsgBadCredentials)
		default:
			http_.WriteError(w, http.StatusInternalServerError, MsgServerError)
		}

		return fmt.Errorf("login user: %w", err)
	}

	http.SetCookie(w, ht.sessionCookie(token))
	http_.WriteJSON(w, http.StatusOK, userResponse{OK: true, User: foundUser.Public()})

	return nil
}

// HandleMe returns the identity attached to the request by the session
// middleware, verbatim as it was embedded at token issuance.
func (ht *HTTPTransport) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := context_.SessionClaimsFromContext(r.Context())
	if !ok {
		// Only reachable if the middleware was not installed.
		http_.WriteError(w, http.StatusUnauthorized, http_.MsgNoSession)

		return
	}

	http_.WriteJSON(w, http.StatusOK, userResponse{OK: true, User: claims})
}

// HandleLogout clears the session cookie. It is idempotent: calling it
// without a session is not an error. The token itself stays valid until
// expiry since there is no server-side revocation list.
func (ht *HTTPTransport) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, ht.clearedSessionCookie())
	http_.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleLanding is the catch-all for paths outside the API surface.
// Asset serving proper is delegated to the frontend deployment; this keeps
// unmatched paths from producing bare 404s.
func (ht *HTTPTransport) HandleLanding(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<!doctype html><html><head><title>kimlik</title></head>" +
		"<body><h1>kimlik</h1><p>Authentication API at /api.</p></body></html>\n"))
}

func (ht *HTTPTransport) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     http_.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   ht.authSvc.Tokens.ValiditySeconds(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   ht.cfg.SecureCookies(),
	}
}

func (ht *HTTPTransport) clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     http_.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   ht.cfg.SecureCookies(),
	}
}
