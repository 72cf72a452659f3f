package server

import (
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPopularTags handles GET /api/tags/popular?window=...&limit=...
func (s *Server) GetPopularTags(c *fiber.Ctx) error {
	window := models.ParseTagWindow(c.Query("window"))
	page := parsePagination(c, 5)

	tags, err := s.tags.PopularTags(c.Context(), window, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:uuid
func (s *Server) GetTag(c *fiber.Ctx) error {
	tag, err := s.tags.ResolveByUUID(c.Context(), c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// GetTagByName handles GET /api/tags/name/:name
func (s *Server) GetTagByName(c *fiber.Ctx) error {
	tag, err := s.tags.ResolveByName(c.Context(), c.Params("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tag)
}

// GetTagPosts handles GET /api/tags/:uuid/posts
func (s *Server) GetTagPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 5)
	posts, err := s.tags.PostsForTag(c.Context(), c.Params("uuid"), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}
