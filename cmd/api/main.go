package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/graphhopper"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/http"
	natsadapter "github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/nats"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/nominatim"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/postgres"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/tolldata"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/transitapi"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/valkey"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/waqi"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/adapters/weatherapi"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/config"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/logging"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("cityflow-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Export pool gauges
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Cache
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Static toll table
	stations, err := tolldata.Load()
	if err != nil {
		log.Fatalf("toll table: %v", err)
	}

	// Upstream provider clients
	road := graphhopper.New(cfg.Providers.GraphHopper.BaseURL, cfg.Providers.GraphHopper.APIKey)
	transit := transitapi.New(cfg.Providers.Transit.BaseURL, cfg.Providers.Transit.APIKey, cfg.Providers.Transit.IncludeTram)
	geocoder := nominatim.New(cfg.Providers.Nominatim.BaseURL)
	air := waqi.New(cfg.Providers.WAQI.BaseURL, cfg.Providers.WAQI.Token)
	weather := weatherapi.New(cfg.Providers.Weather.BaseURL, cfg.Providers.Weather.APIKey)

	// Use cases
	tollSvc := usecases.NewTollService(stations, cfg.Tolls.RadiusKm)
	plannerSvc := usecases.NewPlannerService(road, transit, tollSvc)
	locationSvc := usecases.NewLocationService(geocoder, transit, cacheService(cache))
	environmentSvc := usecases.NewEnvironmentService(air, weather, cacheService(cache))
	issueSvc := usecases.NewIssueService(postgres.NewIssueRepo(db), eventPublisher(publisher))

	deps := &http.Dependencies{
		Planner:     plannerSvc,
		Locations:   locationSvc,
		Tolls:       tollSvc,
		Environment: environmentSvc,
		Issues:      issueSvc,
		NATS:        natsConn,
		DB:          db,
		Cache:       cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "CityFlow API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// cacheService keeps a typed nil pointer out of the interface field when the
// cache is unavailable, so services fall through to the providers.
func cacheService(c *valkey.Cache) ports.CacheService {
	if c == nil {
		return nil
	}
	return c
}

// eventPublisher does the same for the NATS publisher.
func eventPublisher(p *natsadapter.Publisher) ports.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
