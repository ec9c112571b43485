package cmd

import (
	"errors"
	"fmt"
	"time"

	"bookmyconsultation/core/config"
	"bookmyconsultation/core/database"
	"bookmyconsultation/core/loader"
	"bookmyconsultation/core/logger"
	"bookmyconsultation/core/metrics"
	"bookmyconsultation/core/middleware"
	"bookmyconsultation/core/middleware/auth"
	"bookmyconsultation/core/middleware/chain"
	"bookmyconsultation/core/middleware/cors"
	"bookmyconsultation/core/middleware/reqcontext"
	"bookmyconsultation/feature/filters"
	"bookmyconsultation/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "bookmyconsultation/docs/swagger"
)

// Metrics is the Prometheus registry the server registers its collectors on.
type Metrics interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// buildRegistry wires the three startup filters into a chain registry.
// db may be nil, in which case tokens are not checked for revocation.
func buildRegistry(cfg *config.Config, logg *zap.Logger, db *gorm.DB, opts ...chain.Option) (*chain.Registry, error) {
	var revocations auth.RevocationChecker
	if db != nil && cfg.Auth.CheckRevocation {
		store := database.NewTokenStore(db)
		if err := store.Migrate(); err != nil {
			return nil, err
		}
		revocations = store
	}

	validator, err := auth.NewJWTValidator(cfg.Auth, revocations)
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}

	opts = append([]chain.Option{chain.WithLogger(logg)}, opts...)
	return middleware.NewRegistry(middleware.Filters{
		Cors:       cors.New(cfg.Cors),
		ReqContext: reqcontext.New(),
		Auth:       auth.New(validator, logg),
	}, cfg.Auth.PatternList(), opts...)
}

// newApp builds the Fiber application: request logging, the filter chain,
// then the public surfaces and features behind it.
func newApp(cfg *config.Config, logg *zap.Logger, db *gorm.DB, reg Metrics) (*fiber.App, *chain.Registry, error) {
	var opts []chain.Option
	if cfg.Metrics.Enabled {
		fm, err := metrics.NewFilterMetrics(reg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to register filter metrics: %w", err)
		}
		opts = append(opts, chain.WithObserver(fm))
	}

	registry, err := buildRegistry(cfg, logg, db, opts...)
	if err != nil {
		return nil, nil, err
	}

	// Routing must be as strict as the chain's url patterns, otherwise
	// "/RATINGS" or "/ratings/" would reach a protected handler without auth.
	app := fiber.New(fiber.Config{
		CaseSensitive:         true,
		StrictRouting:         true,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.Server.ReadTimeout(),
		WriteTimeout:          cfg.Server.WriteTimeout(),
		ErrorHandler:          errorHandler(logg),
	})

	// Outermost so short-circuited requests are logged too.
	app.Use(requestLogger(logg))
	app.Use(registry.Handler())

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}
	if cfg.Server.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	mgr := loader.NewManager(logg)
	mgr.Register(health.NewFeature(db, logg))
	mgr.Register(filters.NewFeature(registry, cfg.Server.ExposeFilters))
	if err := mgr.LoadAll(app); err != nil {
		return nil, nil, err
	}

	return app, registry, nil
}

func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Render the error now so the logged status is the one sent.
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.WithRequestID(logg, c).Info("Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

// errorHandler renders errors that escaped the chain or a handler.
func errorHandler(logg *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			logger.WithRequestID(logg, c).Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		body := fiber.Map{"error": msg}
		if id := reqcontext.RequestID(c); id != "" {
			body["request_id"] = id
		}
		return c.Status(code).JSON(body)
	}
}
