// Package router builds the echo instance: middleware order, the global
// error handler and every route.
package router

import (
	"github.com/deppfellow/orderhub/internal/handler"
	"github.com/deppfellow/orderhub/internal/middleware"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.JSONSerializer = jsonSerializer{}
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	if m.RateLimit.Enabled() {
		router.Use(m.RateLimit.Limit())
	}

	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerUserRoutes(router, h)
	registerOrderRoutes(router, h)
	registerOfferRoutes(router, h)

	return router
}
