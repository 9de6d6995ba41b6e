package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.userService.GetProfile(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio                *string `json:"bio"`
		AvatarURL          *string `json:"avatar_url"`
		EmailNotifications *bool   `json:"email_notifications"`
		ShowEmailPublicly  *bool   `json:"show_email_publicly"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpdateProfile(c.Context(), userID(c), service.UpdateProfileInput{
		Bio:                req.Bio,
		AvatarURL:          req.AvatarURL,
		EmailNotifications: req.EmailNotifications,
		ShowEmailPublicly:  req.ShowEmailPublicly,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.GetProfile(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Respect the owner's email visibility preference.
	if !profile.ShowEmailPublicly && id != userID(c) {
		profile.User.Email = ""
	}
	return c.JSON(profile)
}
