package health

import (
	"energy-trading-backend/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Rdb *redis.Client
	DB  health.DBPinger
}

// GET /api/health
func (h *Handlers) Snapshot(c *fiber.Ctx) error {
	return c.JSON(health.Collect(c.Context(), h.Rdb, h.DB))
}

// GET /api/health/stats
func (h *Handlers) Stats(c *fiber.Ctx) error {
	return c.JSON(health.CollectStats(c.Context(), h.Rdb))
}
