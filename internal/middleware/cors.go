package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var (
	allowedMethods = []string{
		fiber.MethodGet,
		fiber.MethodPost,
		fiber.MethodPut,
		fiber.MethodDelete,
		fiber.MethodOptions,
	}
	allowedHeaders = []string{fiber.HeaderContentType, fiber.HeaderAuthorization}
)

// CORS allows every origin for the coupon routes.
//
// OPTIONS requests are answered here with a bare 200 before the cors
// middleware sees them, so preflights never reach routing and never get the
// middleware's 204.
func CORS() []fiber.Handler {
	return []fiber.Handler{preflight, cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join(allowedMethods, ","),
		AllowHeaders: strings.Join(allowedHeaders, ","),
	})}
}

func preflight(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodOptions {
		return c.Next()
	}
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	c.Set(fiber.HeaderAccessControlAllowMethods, strings.Join(allowedMethods, ", "))
	c.Set(fiber.HeaderAccessControlAllowHeaders, strings.Join(allowedHeaders, ", "))
	return c.SendStatus(fiber.StatusOK)
}
