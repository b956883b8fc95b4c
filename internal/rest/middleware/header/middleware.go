package header

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type clientIPCtxKey struct{}

// FromContext retrieves the client IP stored by the middleware.
func FromContext(ctx context.Context) string {
	if addr, ok := ctx.Value(clientIPCtxKey{}).(string); ok {
		return addr
	}

	return ""
}

// Middleware extracts the client IP from each request and stores it in the
// request context for downstream middleware.
type Middleware struct {
	logger *zap.Logger
}

// New creates a new header middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{
		logger: logger,
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for client IP
// extraction in the REST server.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		clientIP := m.clientIP(req.Request)
		ctx := context.WithValue(req.Context(), clientIPCtxKey{}, clientIP)

		m.logger.Debug("Stored client IP", zap.String("ip", clientIP))

		return next(w, req.WithContext(ctx))
	}
}

// clientIP resolves the originating address, preferring the first entry of
// X-Forwarded-For when a proxy sets it.
func (m *Middleware) clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip, _, found := strings.Cut(forwarded, ","); found || ip != "" {
			return strings.TrimSpace(ip)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
