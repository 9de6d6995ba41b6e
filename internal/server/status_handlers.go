package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetStatuses handles GET /api/statuses, the selectable statuses in display
// order.
func (s *Server) GetStatuses(c *fiber.Ctx) error {
	statuses, err := s.statusService.ListActive(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"statuses": statuses})
}

// GetStatusBySlug handles GET /api/statuses/:slug
func (s *Server) GetStatusBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	status, err := s.statusService.GetBySlug(c.Context(), slug)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}

// GetAllStatuses handles GET /api/admin/statuses, including inactive entries.
func (s *Server) GetAllStatuses(c *fiber.Ctx) error {
	statuses, err := s.statusService.List(c.Context(), userID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"statuses": statuses})
}

// CreateStatus handles POST /api/admin/statuses
func (s *Server) CreateStatus(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Color       string `json:"color"`
		IsPublished bool   `json:"is_published"`
		IsActive    *bool  `json:"is_active"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	status, err := s.statusService.Create(c.Context(), service.CreateStatusInput{
		ActorID:     userID(c),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsPublished: req.IsPublished,
		IsActive:    active,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(status)
}

// UpdateStatus handles PUT /api/admin/statuses/:id
func (s *Server) UpdateStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Color       string `json:"color"`
		IsPublished *bool  `json:"is_published"`
		IsActive    *bool  `json:"is_active"`
		SortOrder   *int   `json:"sort_order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.statusRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("status", id))
	}

	if req.Name != "" {
		status.Name = req.Name
	}
	if req.Description != "" {
		status.Description = req.Description
	}
	if req.Icon != "" {
		status.Icon = req.Icon
	}
	if req.Color != "" {
		status.Color = req.Color
	}
	if req.IsPublished != nil {
		status.IsPublished = *req.IsPublished
	}
	if req.IsActive != nil {
		status.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		status.SortOrder = *req.SortOrder
	}

	if err := s.statusService.Update(c.Context(), userID(c), status); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}

// DeactivateStatus handles DELETE /api/admin/statuses/:id. Statuses are
// never hard-deleted; posts referencing them keep their state.
func (s *Server) DeactivateStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.statusService.Deactivate(c.Context(), userID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status deactivated"})
}
