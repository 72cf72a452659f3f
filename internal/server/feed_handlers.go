package server

import (
	"murmur/internal/middleware"
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetHomeFeed handles GET /api/feed?window=...&rankingMode=...
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	principal := middleware.Principal(c)
	window := models.ParseWindow(c.Query("window"))
	mode := models.ParseRankingMode(c.Query("rankingMode"))
	page := parsePagination(c, 20)

	var posts []models.FeedPost
	var err error
	if mode == models.RankingPopularity {
		posts, err = s.feeds.PopularityFeed(ctx, principal, window, page.Skip, page.Limit)
	} else {
		posts, err = s.feeds.ChronologicalFeed(ctx, principal, window, page.Skip, page.Limit)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetAnonymousFeed handles GET /api/feed/anonymous
func (s *Server) GetAnonymousFeed(c *fiber.Ctx) error {
	window := models.ParseWindow(c.Query("window"))
	page := parsePagination(c, 20)

	posts, err := s.feeds.AnonymousFeed(c.Context(), window, page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:uuid
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.feeds.PostDetail(c.Context(), c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPostInfo handles GET /api/posts/:uuid/info
func (s *Server) GetPostInfo(c *fiber.Ctx) error {
	counts, err := s.feeds.PostInfo(c.Context(), c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}

// GetResponses handles GET /api/posts/:uuid/responses
func (s *Server) GetResponses(c *fiber.Ctx) error {
	page := parsePagination(c, 5)
	posts, err := s.feeds.ResponsesTo(c.Context(), c.Params("uuid"), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetQuotes handles GET /api/posts/:uuid/quotes
func (s *Server) GetQuotes(c *fiber.Ctx) error {
	page := parsePagination(c, 5)
	posts, err := s.feeds.QuotesOf(c.Context(), c.Params("uuid"), page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// LikePost handles POST /api/posts/:uuid/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	liked, err := s.feeds.Like(c.Context(), principal, c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// UnlikePost handles DELETE /api/posts/:uuid/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	liked, err := s.feeds.Unlike(c.Context(), principal, c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}

// GetLikeState handles GET /api/posts/:uuid/liked
func (s *Server) GetLikeState(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	liked, err := s.feeds.IsLiked(c.Context(), principal, c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
