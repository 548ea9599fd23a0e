package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/orderhub/internal/middleware"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthHandler reports whether the store answers and how many rows each
// table holds.
type HealthHandler struct {
	Handler
	tables []namedCounter
}

type namedCounter struct {
	name  string
	count counter
}

// NewHealthHandler counts rows through the entity services.
func NewHealthHandler(s *server.Server, services *service.Services) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		tables: []namedCounter{
			{"users", services.Users},
			{"orders", services.Orders},
			{"offers", services.Offers},
		},
	}
}

// CheckHealth answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}
	isHealthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		checks["database"] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		h.recordFailure("database", err)
	} else {
		checks["database"] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}
	}

	tables := make(map[string]int64, len(h.tables))
	for _, t := range h.tables {
		n, err := t.count.Count(ctx)
		if err != nil {
			isHealthy = false

			logger.Error().
				Err(err).
				Str("table", t.name).
				Msg("table count failed")

			h.recordFailure("table_count", err)
			continue
		}
		tables[t.name] = n
	}
	checks["tables"] = tables

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, err error) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":    check,
		"operation":     "health_check",
		"error_message": err.Error(),
	})
}
