package server

import (
	"murmur/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	page := parsePagination(c, 20)

	notifications, err := s.notifications.ListNotifications(c.Context(), principal, page.Skip, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	count, err := s.notifications.UnreadCount(c.Context(), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	count, err := s.notifications.MarkAllRead(c.Context(), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"marked": count})
}

// MarkNotificationRead handles POST /api/notifications/:uuid/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	marked, err := s.notifications.MarkOneRead(c.Context(), principal, c.Params("uuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"marked": marked})
}
