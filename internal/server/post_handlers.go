package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	includeUnpublished := false
	if c.QueryBool("all", false) {
		if uid, ok := s.optionalUserID(c); ok {
			staff, err := s.isStaffByUserID(c.Context(), uid)
			if err == nil && staff {
				includeUnpublished = true
			}
		}
	}

	posts, err := s.postService.ListPosts(c.Context(), p.Limit, p.Offset, includeUnpublished)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPost handles GET /api/posts/:id. Unpublished posts are only visible to
// their author and staff; everyone else gets a 404 rather than a hint that
// the post exists.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	if !post.IsPublishedAt(time.Now()) && !s.canViewUnpublished(c, post) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("post", id))
	}

	return c.JSON(post)
}

// GetPostBySlug handles GET /api/posts/slug/:slug. Published reads bump the
// view counter.
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid slug"))
	}

	post, err := s.postService.GetPostBySlug(c.Context(), slug, false)
	if err != nil {
		return respondServiceError(c, err)
	}

	published := post.IsPublishedAt(time.Now())
	if !published && !s.canViewUnpublished(c, post) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("post", slug))
	}
	if published {
		// Count the view only after the visibility check passed.
		post, err = s.postService.GetPostBySlug(c.Context(), slug, true)
		if err != nil {
			return respondServiceError(c, err)
		}
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title            string `json:"title"`
		Slug             string `json:"slug"`
		Content          string `json:"content"`
		Excerpt          string `json:"excerpt"`
		CategoryID       *uint  `json:"category_id"`
		TagIDs           []uint `json:"tag_ids"`
		StatusID         *uint  `json:"status_id"`
		FeaturedImageURL string `json:"featured_image_url"`
		MetaDescription  string `json:"meta_description"`
		MetaKeywords     string `json:"meta_keywords"`
		AllowComments    *bool  `json:"allow_comments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID:         userID(c),
		Title:            req.Title,
		Slug:             req.Slug,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		CategoryID:       req.CategoryID,
		TagIDs:           req.TagIDs,
		StatusID:         req.StatusID,
		FeaturedImageURL: req.FeaturedImageURL,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		AllowComments:    req.AllowComments,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title            string `json:"title"`
		Content          string `json:"content"`
		Excerpt          string `json:"excerpt"`
		CategoryID       *uint  `json:"category_id"`
		TagIDs           []uint `json:"tag_ids"`
		FeaturedImageURL string `json:"featured_image_url"`
		MetaDescription  string `json:"meta_description"`
		MetaKeywords     string `json:"meta_keywords"`
		AllowComments    *bool  `json:"allow_comments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		ActorID:          userID(c),
		PostID:           id,
		Title:            req.Title,
		Content:          req.Content,
		Excerpt:          req.Excerpt,
		CategoryID:       req.CategoryID,
		TagIDs:           req.TagIDs,
		FeaturedImageURL: req.FeaturedImageURL,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		AllowComments:    req.AllowComments,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// PublishPost handles POST /api/posts/:id/publish
func (s *Server) PublishPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Publish(c.Context(), userID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UnpublishPost handles POST /api/posts/:id/unpublish
func (s *Server) UnpublishPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Unpublish(c.Context(), userID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// SetPostStatus handles PUT /api/posts/:id/status
func (s *Server) SetPostStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		StatusID uint `json:"status_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.StatusID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("status_id is required"))
	}

	post, err := s.postService.SetStatus(c.Context(), userID(c), id, req.StatusID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// SearchPosts handles GET /api/posts/search
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.Search(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetFeaturedPosts handles GET /api/posts/featured
func (s *Server) GetFeaturedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	posts, err := s.postService.ListFeatured(c.Context(), p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPopularPosts handles GET /api/posts/popular
func (s *Server) GetPopularPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	posts, err := s.postService.ListPopular(c.Context(), p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetMyDrafts handles GET /api/users/me/drafts
func (s *Server) GetMyDrafts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListDrafts(c.Context(), userID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetUserPosts handles GET /api/users/:id/posts. Drafts stay hidden from
// everyone but the author and staff.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.ListByAuthor(c.Context(), id, p.Limit, p.Offset, s.isSelfOrStaff(c, id))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// canViewUnpublished reports whether the caller may see a non-published post.
func (s *Server) canViewUnpublished(c *fiber.Ctx, post *models.Post) bool {
	uid, ok := s.optionalUserID(c)
	if !ok {
		return false
	}
	if post.AuthorID == uid {
		return true
	}
	staff, err := s.isStaffByUserID(c.Context(), uid)
	return err == nil && staff
}
