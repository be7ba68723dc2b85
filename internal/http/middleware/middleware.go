package middleware

import (
	"net/http"

	"github.com/lumiai/lumi-router/internal/config"
)

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// NewMiddleware composes the standard chain (DI constructor). CORS runs
// outermost so preflight requests short-circuit before tracing.
func NewMiddleware(corsCfg *config.CORSConfig) Middleware {
	return Chain(CORS(corsCfg), Trace())
}

// Chain composes middlewares so the first argument is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
