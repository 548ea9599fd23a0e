// Package middleware holds the echo middleware shared by every route:
// request ids, request-scoped logging, New Relic tracing, rate limiting,
// CORS, panic recovery and the global error handler.
package middleware

import (
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups the middleware components built once for the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares builds every middleware. Tracing is a no-op when the
// server has no New Relic application.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
