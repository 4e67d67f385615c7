package server

import (
	"strings"

	"listforge/internal/models"
	"listforge/internal/repository"
	"listforge/internal/service"
	"listforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetLists handles GET /api/lists. Authenticated callers see their own
// lists (all visibilities, with optional visibility filter); anonymous
// callers fall back to the public feed.
func (s *Server) GetLists(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	q := c.Query("q")
	userID := currentUserID(c)

	if userID == 0 {
		lists, err := s.listRepo.ListPublic(ctx, q, page.Limit, page.Offset, 0)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		return c.JSON(lists)
	}

	visibility := repository.VisibilityFilter(c.Query("visibility", string(repository.VisibilityAll)))
	switch visibility {
	case repository.VisibilityAll, repository.VisibilityPublic, repository.VisibilityPrivate:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid visibility filter"))
	}

	lists, err := s.listRepo.ListByOwner(ctx, userID, q, visibility, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(lists)
}

// Explore handles GET /api/lists/explore
func (s *Server) Explore(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)
	q := c.Query("q")
	userID := currentUserID(c)

	lists, err := s.listRepo.ListPublic(ctx, q, page.Limit, page.Offset, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(lists)
}

// GetList handles GET /api/lists/:id
func (s *Server) GetList(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	list, err := s.listRepo.GetByID(ctx, id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !list.IsPublic && list.OwnerID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewAccessError("This list is private"))
	}

	return c.JSON(list)
}

// CreateList handles POST /api/lists
func (s *Server) CreateList(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Tags        string `json:"tags"`
		IsPublic    *bool  `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Lists default to public unless the caller says otherwise
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	list, err := s.listService.Create(ctx, service.CreateListInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		IsPublic:    isPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(list)
}

// GenerateList handles POST /api/lists/generate. The draft is returned to
// the caller for review; nothing is persisted until /api/lists/save.
func (s *Server) GenerateList(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidatePrompt(req.Prompt); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	draft, err := s.generator.GenerateList(ctx, req.Prompt)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(draft)
}

// SaveGeneratedList handles POST /api/lists/save. Content arrives as the
// item slice from a generation draft and is stored newline-delimited.
func (s *Server) SaveGeneratedList(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Content     []string `json:"content"`
		Tags        string   `json:"tags"`
		Prompt      string   `json:"prompt"`
		IsPublic    *bool    `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	list, err := s.listService.Create(ctx, service.CreateListInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Content:     strings.Join(req.Content, "\n"),
		Tags:        req.Tags,
		Prompt:      req.Prompt,
		IsPublic:    isPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(list)
}

// ForkList handles POST /api/lists/:id/fork
func (s *Server) ForkList(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		IsPublic *bool `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	result, err := s.listService.Fork(ctx, id, userID, isPublic)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"fork_id":    result.Fork.ID,
		"fork_count": result.ForkCount,
		"fork":       result.Fork,
	})
}

// ToggleLike handles POST /api/lists/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	result, err := s.listService.ToggleLike(ctx, id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(result)
}

// ToggleVisibility handles POST /api/lists/:id/visibility
func (s *Server) ToggleVisibility(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	isPublic, err := s.listService.ToggleVisibility(ctx, id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "List is now private"
	if isPublic {
		message = "List is now public"
	}

	return c.JSON(fiber.Map{
		"is_public": isPublic,
		"message":   message,
	})
}

// UpdateList handles PUT /api/lists/:id
func (s *Server) UpdateList(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Tags        string `json:"tags"`
		IsPublic    bool   `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	list, err := s.listService.Update(ctx, id, userID, service.UpdateListInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(list)
}

// DeleteList handles DELETE /api/lists/:id
func (s *Server) DeleteList(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if err := s.listService.Delete(ctx, id, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "List deleted",
	})
}
