package server

import (
	"murmur/internal/middleware"
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	var req struct {
		Content    string   `json:"content"`
		Kind       string   `json:"kind,omitempty"`
		TargetUUID string   `json:"target_uuid,omitempty"`
		Tags       []string `json:"tags,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("invalid request body"))
	}

	kind := models.PostKindPlain
	switch models.PostKind(req.Kind) {
	case models.PostKindResponse:
		kind = models.PostKindResponse
	case models.PostKindQuote:
		kind = models.PostKindQuote
	case models.PostKindPlain, "":
	default:
		return respondError(c, models.NewValidationError("unknown post kind"))
	}

	post, err := s.posts.CreatePost(c.Context(), principal, req.Content, kind, req.TargetUUID, req.Tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}
