package server

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPendingComments handles GET /api/moderation/comments/pending
func (s *Server) GetPendingComments(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	comments, err := s.commentService.PendingComments(c.Context(), userID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// ApproveComment handles POST /api/moderation/comments/:id/approve
func (s *Server) ApproveComment(c *fiber.Ctx) error {
	return s.moderateComment(c, s.commentService.Approve, "Comment approved")
}

// RejectComment handles POST /api/moderation/comments/:id/reject
func (s *Server) RejectComment(c *fiber.Ctx) error {
	return s.moderateComment(c, s.commentService.Reject, "Comment rejected")
}

// MarkCommentSpam handles POST /api/moderation/comments/:id/spam
func (s *Server) MarkCommentSpam(c *fiber.Ctx) error {
	return s.moderateComment(c, s.commentService.MarkSpam, "Comment marked as spam")
}

func (s *Server) moderateComment(
	c *fiber.Ctx,
	decide func(ctx context.Context, in service.ModerateInput) error,
	message string,
) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason string `json:"reason"`
		Notes  string `json:"notes"`
	}
	_ = c.BodyParser(&req)

	if err := decide(c.Context(), service.ModerateInput{
		ModeratorID: userID(c),
		CommentID:   commentID,
		Reason:      req.Reason,
		Notes:       req.Notes,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}

// UnflagComment handles DELETE /api/moderation/comments/:id/flag
func (s *Server) UnflagComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.Unflag(c.Context(), userID(c), commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Flag cleared"})
}

// GetModerationLog handles GET /api/moderation/comments/:id/log
func (s *Server) GetModerationLog(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entries, err := s.commentService.ModerationLog(c.Context(), userID(c), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"log": entries})
}

// ReportComment handles POST /api/comments/:id/report
func (s *Server) ReportComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Reason      string `json:"reason"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.Report(c.Context(), service.ReportInput{
		ReporterID:  userID(c),
		CommentID:   commentID,
		Reason:      models.ReportReason(req.Reason),
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetOpenReports handles GET /api/moderation/reports
func (s *Server) GetOpenReports(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	reports, err := s.reportService.ListOpen(c.Context(), userID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// GetReport handles GET /api/moderation/reports/:id
func (s *Server) GetReport(c *fiber.Ctx) error {
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	report, err := s.reportService.GetReport(c.Context(), userID(c), reportID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// StartReportReview handles POST /api/moderation/reports/:id/review
func (s *Server) StartReportReview(c *fiber.Ctx) error {
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	report, err := s.reportService.StartReview(c.Context(), userID(c), reportID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// ResolveReport handles POST /api/moderation/reports/:id/resolve
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	reportID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Outcome string `json:"outcome"`
		Notes   string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, err := s.reportService.Resolve(c.Context(), service.ResolveInput{
		ResolverID: userID(c),
		ReportID:   reportID,
		Outcome:    models.ReportStatus(req.Outcome),
		Notes:      req.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(report)
}

// GetCommentReports handles GET /api/moderation/comments/:id/reports
func (s *Server) GetCommentReports(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reports, err := s.reportService.ListForComment(c.Context(), userID(c), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}
