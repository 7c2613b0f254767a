package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/roomcull/internal/config"
	"github.com/udisondev/roomcull/internal/culling"
	"github.com/udisondev/roomcull/internal/db"
	"github.com/udisondev/roomcull/internal/geom"
	"github.com/udisondev/roomcull/internal/occlusion"
	"github.com/udisondev/roomcull/internal/voxel"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.Path()
	cfg, err := config.LoadRoomCull(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg),
	})))

	slog.Info("roomcull starting", "config", cfgPath)
	slog.Info("config loaded",
		"max_scan_distance", cfg.MaxScanDistance,
		"epsilon", cfg.EpsilonOffset,
		"rescan_ticks", cfg.RescanIntervalTicks,
		"tick", cfg.TickInterval,
		"debug", cfg.DebugMode)

	palette, err := cfg.Palette()
	if err != nil {
		return fmt.Errorf("building palette: %w", err)
	}

	world := voxel.NewWorld(palette)
	if err := world.LoadWorld(cfg.WorldDir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading world: %w", err)
		}
		slog.Warn("world dir not found, rooms stay unscanned until sections load", "dir", cfg.WorldDir)
	}

	var store culling.MarkerStore
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		applied, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied", "count", applied)

		store = database.Markers()
	}

	subsystem := culling.New(cfg, world, viewerCamera(cfg.Viewer), store)

	if store != nil {
		if _, err := subsystem.LoadMarkers(ctx); err != nil {
			return fmt.Errorf("restoring markers: %w", err)
		}
	} else {
		for _, a := range cfg.Markers {
			if _, err := subsystem.PlaceMarker(ctx, a.Coord()); err != nil {
				slog.Warn("skipping configured marker", "anchor", a.Coord(), "err", err)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := subsystem.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("room culling: %w", err)
		}
		return nil
	})

	if cfg.MetricsAddress != "" {
		g.Go(func() error {
			return serveMetrics(gctx, cfg.MetricsAddress)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("service error: %w", err)
	}

	slog.Info("roomcull stopped")
	return nil
}

func logLevel(cfg config.RoomCull) slog.Level {
	if cfg.DebugMode {
		return slog.LevelDebug
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// viewerCamera returns a fixed camera, or one that reports no viewer.
func viewerCamera(v config.ViewerConfig) occlusion.Camera {
	pos := geom.V(v.X, v.Y, v.Z)
	return occlusion.CameraFunc(func() (geom.Vec3, bool) {
		return pos, v.Enabled
	})
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
