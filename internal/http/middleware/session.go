package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// SessionEmailHeader carries the authenticated user's email, set by the
	// auth gateway in front of this service.
	SessionEmailHeader = "X-User-Email"
	// SessionEmailLocalKey is the key the email is stored under in Fiber's
	// context locals.
	SessionEmailLocalKey = "session_email"
)

// Session reads the caller's identity from the gateway header into context
// locals. Handlers read it per request and pass it to services explicitly;
// nothing downstream queries ambient session state. Routes that require an
// identity reject the request themselves when the email is absent.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email := c.Get(SessionEmailHeader); email != "" {
			c.Locals(SessionEmailLocalKey, email)
		}
		return c.Next()
	}
}

// SessionEmail extracts the email stored by Session, or "" when the request
// is anonymous.
func SessionEmail(c *fiber.Ctx) string {
	if v := c.Locals(SessionEmailLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
