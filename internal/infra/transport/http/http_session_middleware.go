package http

import (
	"errors"
	"net/http"

	"github.com/kimlik-dev/kimlik/internal/domain"
	context_ "github.com/kimlik-dev/kimlik/internal/infra/context"
	"github.com/kimlik-dev/kimlik/internal/infra/logging"
)

// SessionCookieName is the cookie carrying the signed session token.
// The value is opaque to the client.
const SessionCookieName = "token"

// User-facing messages for rejected sessions.
const (
	MsgNoSession      = "Oturum bulunamadı."
	MsgInvalidSession = "Oturum süresi dolmuş veya geçersiz."
)

// SessionVerifier validates a session token and returns the identity it embeds.
type SessionVerifier interface {
	Verify(token string) (domain.SessionClaims, error)
}

// SessionMiddleware creates middleware that authorizes requests by their
// session cookie. Requests without a cookie are rejected with 401 and
// MsgNoSession; requests whose token fails verification are rejected with
// 401 and MsgInvalidSession. On success the claims are added to the request
// context and the next handler runs. The middleware itself has no other
// side effects and never touches the credential store.
func SessionMiddleware(
	next http.Handler,
	verifier SessionVerifier,
	log logging.Logger,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			log.WarnContext(r.Context(), "rejected request", "error", domain.ErrNoSession)
			WriteError(w, http.StatusUnauthorized, MsgNoSession)

			return
		}

		claims, err := verifier.Verify(cookie.Value)
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidSessionToken) {
				log.ErrorContext(r.Context(), "verify session token failed", "error", err)
			} else {
				log.WarnContext(r.Context(), "invalid session token")
			}

			WriteError(w, http.StatusUnauthorized, MsgInvalidSession)

			return
		}

		next.ServeHTTP(w, r.WithContext(context_.WithSessionClaims(r.Context(), claims)))
	})
}
