// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout bounds each dependency check run by the health endpoint.
const checkTimeout = 2 * time.Second

// Check probes one dependency. A non-nil error marks the service unavailable.
type Check func(ctx context.Context) error

// Health returns the /healthz handler.
// GET reports {"status":"ok"}, HEAD answers 200 without a body and OPTIONS answers 204.
// When any check fails the endpoint answers 503. Responses are never cached.
func Health(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				slog.Error("health check failed", "error", err)
				status = http.StatusServiceUnavailable
				break
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		if status != http.StatusOK {
			c.JSON(status, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(status, gin.H{"status": "ok"})
	}
}
