package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logRequestError starts an error event carrying the request's identity.
// The error itself stays server-side; responses only carry generic messages.
func logRequestError(c *fiber.Ctx, err error) *zerolog.Event {
	return log.Error().
		Err(err).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str("method", c.Method()).
		Str("path", c.Path())
}
