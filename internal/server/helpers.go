package server

import (
	"errors"
	"strconv"

	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errorResponse is the JSON error body returned to clients.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// respondError maps a typed application error onto an HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	response := errorResponse{Error: err.Error()}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		response.Error = appErr.Message
		response.Code = appErr.Code
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeValidation:
			status = fiber.StatusBadRequest
		case models.CodeUnauthorized:
			status = fiber.StatusForbidden
		}
	}

	return c.Status(status).JSON(response)
}

type page struct {
	Skip  int
	Limit int
}

// parsePagination reads skip and limit, applying the endpoint's default
// limit. Negative values pass through for the services to reject; only
// unparseable input falls back to the defaults.
func parsePagination(c *fiber.Ctx, defaultLimit int) page {
	skip := 0
	if raw := c.Query("skip"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			skip = parsed
		}
	}
	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	return page{Skip: skip, Limit: limit}
}
