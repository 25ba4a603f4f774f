package serverutils

import (
	"time"

	"movie-match-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// RequestLogger logs one line per request once the response status is known.
// Mount it outside ErrorHandlerMiddleware. 5xx responses log at warn.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		// details may outlive the request; fiber strings alias its buffer
		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       utils.CopyString(ctx.Path()),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("HTTP", "Request failed", details)
		} else {
			log.Debug("HTTP", "Request served", details)
		}
		return err
	}
}
