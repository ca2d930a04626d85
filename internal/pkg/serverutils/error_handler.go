package serverutils

import (
	"notekeeper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the last-resort handler for errors no controller
// mapped itself. Internal detail is only echoed back outside production.
func ErrorHandlerMiddleware(log logger.ILogger, isProd bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
			message = fe.Message
		}

		log.Error("http", "Unhandled request error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": code,
			"error":  err.Error(),
		})

		body := fiber.Map{"message": message}
		if code == fiber.StatusInternalServerError && !isProd {
			body["error"] = err.Error()
		}
		return ctx.Status(code).JSON(body)
	}
}
