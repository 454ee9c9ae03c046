package handler

import (
	"net/http"

	"storefront-api/internal/core/logger"
	"storefront-api/internal/features/stats/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatsHandler handles HTTP requests for the dashboard aggregate.
type StatsHandler struct {
	service ports.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats handles GET /api/stats/getStats.
// @Summary Dashboard statistics over the last thirty days
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]domain.Stats
// @Failure 500 {object} map[string]string
// @Router /api/stats/getStats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		logger.Get().Error("Failed to build stats", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"stats": stats})
}
