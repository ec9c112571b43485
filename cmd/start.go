package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookmyconsultation/core/config"
	"bookmyconsultation/core/database"
	"bookmyconsultation/core/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title BookMyConsultation API
// @version 1.0
// @description Consultation booking API. Appointment and rating endpoints require a bearer token.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the API server",
	Long:  `Loads configuration, registers the filter chain and starts the HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The token store is optional; without it revoked tokens are not detected.
		var db *gorm.DB
		if cfg.Database.Enabled {
			if conn, err := database.Connect(cfg.Database, logg); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				db = conn
			}
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		app, registry, err := newApp(cfg, logg, db, reg)
		if err != nil {
			// Malformed filter configuration must prevent startup.
			logg.Fatal("Failed to build application", zap.Error(err))
		}
		logg.Info("Filter chain ready", zap.Int("filters", len(registry.Entries())))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
