package httpapi

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/dmitrijs2005/roomsync/internal/server/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	claimsLocal     = "claims"
)

// requestID ensures each request carries an identifier for logging.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)
		c.Locals(requestIDHeader, reqID)
		return c.Next()
	}
}

func (s *Server) accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		s.logger.Debug(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
			"request_id", c.Locals(requestIDHeader),
		)
		return err
	}
}

func bearer(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), strings.ToLower(common.BearerPrefix)) {
		return ""
	}
	return strings.TrimSpace(authz[len(common.BearerPrefix):])
}

func (s *Server) requireAnonKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if bearer(c) != s.anonKey {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid anon key")
		}
		return c.Next()
	}
}

func (s *Server) requireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearer(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := s.tokens.Verify(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(claimsLocal, claims)
		return c.Next()
	}
}

func claimsFrom(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsLocal).(*auth.Claims)
	return claims
}
