package server

import (
	"murmur/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Follow handles POST /api/follows/:uuid
func (s *Server) Follow(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	if err := s.social.Follow(c.Context(), principal, c.Params("uuid")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": true})
}

// Unfollow handles DELETE /api/follows/:uuid
func (s *Server) Unfollow(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	if err := s.social.Unfollow(c.Context(), principal, c.Params("uuid")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": false})
}

// GetFollowState handles GET /api/follows/:uuid
func (s *Server) GetFollowState(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	following, err := s.social.IsFollowing(c.Context(), principal, c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetFollowing handles GET /api/users/:uuid/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	users, err := s.social.ListFollowing(c.Context(), c.Params("uuid"), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetFollowers handles GET /api/users/:uuid/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	users, err := s.social.ListFollowers(c.Context(), c.Params("uuid"), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetMutualConnections handles GET /api/follows/:uuid/mutual
func (s *Server) GetMutualConnections(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	page := parsePagination(c, 20)
	users, err := s.social.MutualConnections(c.Context(), principal.UUID, c.Params("uuid"), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetProfileInfo handles GET /api/users/:uuid/profile-info
func (s *Server) GetProfileInfo(c *fiber.Ctx) error {
	counts, err := s.social.ProfileInfo(c.Context(), c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}
