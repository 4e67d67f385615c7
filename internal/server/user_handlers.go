package server

import (
	"listforge/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserLists handles GET /api/users/:username/lists. Only the public
// lists of the named user are returned, regardless of who asks.
func (s *Server) GetUserLists(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", username))
	}

	page := parsePagination(c, 20)
	q := c.Query("q")
	currentID := currentUserID(c)

	lists, err := s.listRepo.ListPublicByOwner(ctx, user.ID, q, page.Limit, page.Offset, currentID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
		},
		"lists": lists,
	})
}

// GetMyProfile handles GET /api/users/me/profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	profile, stats, err := s.userService.Profile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"bio":   profile.Bio,
		"stats": stats,
	})
}

// UpdateMyProfile handles PUT /api/users/me/profile
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Bio string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.userService.UpdateBio(ctx, userID, req.Bio)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"bio":     profile.Bio,
		"message": "Profile updated",
	})
}
