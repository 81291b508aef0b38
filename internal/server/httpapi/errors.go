package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/roomsync/internal/common"
	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, common.ErrMissingFields):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrDuplicatePhone):
		return fiber.StatusConflict
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error) string {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Message
	case errors.Is(err, common.ErrMissingFields):
		return "Missing required fields"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid phone or password"
	case errors.Is(err, common.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, common.ErrDuplicatePhone):
		return "Phone number already registered"
	case errors.Is(err, common.ErrNotFound):
		return "Not found"
	default:
		return "Internal server error"
	}
}

// errorHandler renders every error as {"error": "..."}.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "err", err)
	}
	return c.Status(status).JSON(errorResponse{Error: messageFor(err)})
}
