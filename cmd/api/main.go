package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/geocommerce/geopop/internal/adapters/gdalraster"
	"github.com/geocommerce/geopop/internal/adapters/http"
	"github.com/geocommerce/geopop/internal/adapters/valkey"
	"github.com/geocommerce/geopop/internal/core/ports"
	"github.com/geocommerce/geopop/internal/core/usecases"
	"github.com/geocommerce/geopop/internal/pkg/config"
	"github.com/geocommerce/geopop/internal/pkg/logging"
	"github.com/geocommerce/geopop/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	// Fails when the raster file is missing: the service cannot answer anything without it.
	cfg, err := config.Load("geopop-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Raster
	raster := gdalraster.NewSource(cfg.Raster.Path)

	// Cache
	var (
		cache     *valkey.Cache
		cachePort ports.CacheService
	)
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr, cfg.Valkey.KeyPrefix)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer cache.Close()
			cachePort = cache
		}
	}

	population := usecases.NewPopulationService(raster, cachePort, usecases.PopulationOptions{
		Band:      cfg.Raster.Band,
		StripRows: cfg.Raster.StripRows,
		CacheTTL:  cfg.Valkey.TTLSeconds,
	})

	// Surface a broken raster in the logs at boot rather than on the first query.
	if info, err := population.Describe(ctx); err != nil {
		slog.Error("raster unreadable", "path", cfg.Raster.Path, "error", err)
	} else {
		slog.Info("raster loaded",
			"path", cfg.Raster.Path,
			"width", info.Width,
			"height", info.Height,
			"crs", info.CRS,
		)
	}

	deps := &http.Dependencies{
		Population: population,
		Cache:      cache,
		Version:    version,
	}

	app := http.NewApp("Geopop API",
		time.Duration(cfg.Server.ReadTimeout)*time.Second,
		time.Duration(cfg.Server.WriteTimeout)*time.Second,
	)
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := cfg.Server.Addr()
		slog.Info("API server starting", "addr", addr, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
