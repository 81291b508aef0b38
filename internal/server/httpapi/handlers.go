package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type signInRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) signUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	user, err := s.users.SignUp(c.UserContext(), req.Name, req.Phone, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) signIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	user, err := s.users.Authenticate(c.UserContext(), req.Phone, req.Password)
	if err != nil {
		return err
	}
	id, _ := user["id"].(string)
	token, err := s.tokens.Issue(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"accessToken": token, "user": user})
}

// session answers {"user": null} for a missing, invalid or revoked token.
func (s *Server) session(c *fiber.Ctx) error {
	token := bearer(c)
	if token == "" {
		return c.JSON(fiber.Map{"user": nil})
	}
	claims, err := s.tokens.Verify(c.UserContext(), token)
	if err != nil {
		return c.JSON(fiber.Map{"user": nil})
	}
	user, err := s.users.Profile(c.UserContext(), claims.UserID)
	if err != nil {
		return c.JSON(fiber.Map{"user": nil})
	}
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) signOut(c *fiber.Ctx) error {
	if err := s.tokens.Revoke(c.UserContext(), claimsFrom(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) completeProfile(c *fiber.Ctx) error {
	fields := map[string]any{}
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	profile, err := s.users.CompleteProfile(c.UserContext(), claimsFrom(c).UserID, fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": profile})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	user, err := s.users.UpdateProfile(c.UserContext(), claimsFrom(c).UserID, req.Name, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func (s *Server) profile(c *fiber.Ctx) error {
	profile, err := s.users.Profile(c.UserContext(), claimsFrom(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": profile})
}

func (s *Server) favorites(c *fiber.Ctx) error {
	ids, err := s.users.Favorites(c.UserContext(), claimsFrom(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func (s *Server) addFavorite(c *fiber.Ctx) error {
	ids, err := s.users.AddFavorite(c.UserContext(), claimsFrom(c).UserID, c.Params("roomId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func (s *Server) removeFavorite(c *fiber.Ctx) error {
	ids, err := s.users.RemoveFavorite(c.UserContext(), claimsFrom(c).UserID, c.Params("roomId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": ids})
}

func (s *Server) viewed(c *fiber.Ctx) error {
	ids, err := s.users.Viewed(c.UserContext(), claimsFrom(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"viewed": ids})
}

func (s *Server) addViewed(c *fiber.Ctx) error {
	ids, err := s.users.AddViewed(c.UserContext(), claimsFrom(c).UserID, c.Params("roomId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"viewed": ids})
}
