package health

import (
	"context"
	"time"

	"bookmyconsultation/core/database"
	"bookmyconsultation/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature serves the liveness endpoint.
type Feature struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewFeature creates the health feature. db may be nil.
func NewFeature(db *gorm.DB, l *zap.Logger) *Feature {
	return &Feature{db: db, logger: l}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "health" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return true }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/health", f.HandleHealth)
	return nil
}

// HandleHealth reports service status.
// @Summary Health
// @Description Reports liveness and, when configured, token store connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Healthy"
// @Failure 503 {object} map[string]string "Token store unreachable"
// @Router /health [get]
func (f *Feature) HandleHealth(c *fiber.Ctx) error {
	if f.db == nil {
		return c.JSON(fiber.Map{"status": "ok", "database": "disabled"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, f.db); err != nil {
		logger.WithRequestID(f.logger, c).Warn("Token store ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
	}
	return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
}
