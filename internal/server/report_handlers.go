package server

import (
	"murmur/internal/middleware"
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FileReport handles POST /api/reports
func (s *Server) FileReport(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	var req struct {
		PostUUID    string `json:"post_uuid"`
		Reason      string `json:"reason"`
		Description string `json:"description,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("invalid request body"))
	}

	report, err := s.moderation.FileReport(c.Context(), principal, req.PostUUID, req.Reason, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/reports?checked=...
func (s *Server) GetReports(c *fiber.Ctx) error {
	checked := c.QueryBool("checked", false)
	page := parsePagination(c, 5)

	reports, err := s.moderation.ListReports(c.Context(), checked, page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reports)
}

// ResolveReport handles POST /api/reports/:uuid/resolve
func (s *Server) ResolveReport(c *fiber.Ctx) error {
	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("invalid request body"))
	}

	report, err := s.moderation.ResolveReport(c.Context(), c.Params("uuid"), req.Accept)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
