package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListCategories(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetCategory handles GET /api/categories/:slug
func (s *Server) GetCategory(c *fiber.Ctx) error {
	category, err := s.taxonomyService.GetCategory(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// GetCategoryPosts handles GET /api/categories/:slug/posts
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	category, err := s.taxonomyService.GetCategory(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.ListByCategory(c.Context(), category.ID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"category": category, "posts": posts})
}

// CreateCategory handles POST /api/admin/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		ParentID    *uint  `json:"parent_id"`
		Icon        string `json:"icon"`
		Color       string `json:"color"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.taxonomyService.CreateCategory(c.Context(), service.CreateCategoryInput{
		ActorID:     userID(c),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		Icon:        req.Icon,
		Color:       req.Color,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/admin/categories/:id
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Color       string `json:"color"`
		IsActive    *bool  `json:"is_active"`
		SortOrder   *int   `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var category models.Category
	if err := s.db.WithContext(c.Context()).First(&category, id).Error; err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("category", id))
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.taxonomyService.UpdateCategory(c.Context(), userID(c), &category); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteCategory(c.Context(), userID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.taxonomyService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// GetTag handles GET /api/tags/:slug
func (s *Server) GetTag(c *fiber.Ctx) error {
	tag, err := s.taxonomyService.GetTag(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tag)
}

// GetTagPosts handles GET /api/tags/:slug/posts
func (s *Server) GetTagPosts(c *fiber.Ctx) error {
	tag, err := s.taxonomyService.GetTag(c.Context(), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.ListByTag(c.Context(), tag.ID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tag": tag, "posts": posts})
}

// CreateTag handles POST /api/admin/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.taxonomyService.CreateTag(c.Context(), service.CreateTagInput{
		ActorID:     userID(c),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// DeleteTag handles DELETE /api/admin/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteTag(c.Context(), userID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Tag deleted"})
}
