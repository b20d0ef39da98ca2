package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kimlik-dev/kimlik/internal/infra/logging"
)

// HTTPTransportConfig contains configuration parameters for HTTP servers.
type HTTPTransportConfig struct {
	// ServerAddr is the network address to listen on
	ServerAddr string `env:"SERVER_ADDR" default:":3000"`
	// ReadHeaderTimeout is the timeout in seconds for reading request headers
	ReadHeaderTimeout int64 `env:"READ_HEADER_TIMEOUT" default:"5"`

	ReadTimeout  int64 `env:"READ_TIMEOUT" default:"5"`
	WriteTimeout int64 `env:"WRITE_TIMEOUT" default:"5"`

	// ReleaseMode marks a production deployment behind an HTTPS-terminating
	// proxy; it turns on Secure session cookies
	ReleaseMode bool `env:"RELEASE_MODE" default:"false"`

	// LocalTLS enables serving TLS directly from this process using the
	// certificate and key files below (local HTTPS development)
	LocalTLS bool `env:"LOCAL_HTTPS" default:"false"`

	// TLSCertFile is the path to the PEM certificate used when LocalTLS is on
	TLSCertFile string `env:"TLS_CERT_FILE" default:"localhost.pem"`
	// TLSKeyFile is the path to the PEM private key used when LocalTLS is on
	TLSKeyFile string `env:"TLS_KEY_FILE" default:"localhost-key.pem"`
}

// SecureCookies reports whether session cookies must carry the Secure flag:
// always in release mode, and whenever TLS is served locally.
func (cfg HTTPTransportConfig) SecureCookies() bool {
	return cfg.ReleaseMode || cfg.LocalTLS
}

// HTTPTransport defines the interface for HTTP handlers that can serve requests.
type HTTPTransport interface {
	http.Handler
}

// HTTPHandlerFunc converts an HTTPTransport into a standard http.HandlerFunc.
// This allows using HTTPTransport implementations with standard HTTP middleware.
func HTTPHandlerFunc(handler HTTPTransport) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}
}

// ListenAndServe starts an HTTP server with the given handler and configuration.
// It sets up standard middleware for logging, tracing, security headers and
// panic recovery. When LocalTLS is enabled the server terminates TLS itself
// with the configured certificate and key.
// Returns an error if the server fails to start or encounters an error while running.
func ListenAndServe(ctx context.Context, handler HTTPTransport, cfg HTTPTransportConfig) (err error) {
	log := logging.GetLogger("infra.transport.http")

	handler = SecurityHeadersMiddleware(handler)
	handler = RescueingMiddleware(handler, log)
	handler = LoggingMiddleware(handler, log)
	handler = TracingMiddleware(handler)

	//nolint:exhaustruct
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ErrorLog:          logging.GetLogLogger(log, logging.LevelError),
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeout * int64(time.Second)),
		ReadTimeout:       time.Duration(cfg.ReadTimeout * int64(time.Second)),
		WriteTimeout:      time.Duration(cfg.WriteTimeout * int64(time.Second)),
	}
	defer server.Close()

	sock, err := net.Listen("tcp", cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer sock.Close()

	if cfg.LocalTLS {
		log.InfoContext(ctx, "listening", "addr", cfg.ServerAddr, "scheme", "https")

		if err := server.ServeTLS(sock, cfg.TLSCertFile, cfg.TLSKeyFile); err != nil {
			return fmt.Errorf("serve tls: %w", err)
		}

		return nil
	}

	log.InfoContext(ctx, "listening", "addr", cfg.ServerAddr, "scheme", "http")

	if err := server.Serve(sock); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
