package unit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/oshokin/briefcase-alarm/internal/api/grpc/panel"
	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/logger"
	"github.com/oshokin/briefcase-alarm/internal/version"
)

// Options controls the briefcase-unit process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the panel server.
	ListenAddress string
	// MetricsAddress provides an optional override for the metrics endpoint.
	MetricsAddress string
	// Watch enables hot reload of the settings file.
	Watch bool
}

// ErrNoPanelAddress indicates missing panel configuration.
var ErrNoPanelAddress = errors.New("no panel address configured")

// metricsShutdownTimeout bounds the metrics server shutdown.
const metricsShutdownTimeout = 2 * time.Second

// Run starts the unit and its front panel and blocks until context is canceled.
// Loads configuration first, then determines listen addresses from config or overrides.
func Run(ctx context.Context, opts *Options) error {
	// Load configuration first to get unit settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Set context with logger name and unit identifier for tracking.
	ctx = logger.WithName(ctx, "briefcase-unit")
	ctx = logger.WithKV(ctx, "unit_id", settings.EnsureUnitID())

	// Determine listen address: CLI argument overrides config port extraction.
	listenAddress, err := resolveListenAddress(settings.PanelAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	metricsAddress := settings.MetricsAddress
	if opts.MetricsAddress != "" {
		metricsAddress = opts.MetricsAddress
	}

	u, err := New(settings)
	if err != nil {
		return fmt.Errorf("initialise unit: %w", err)
	}

	// Setup TCP listener for gRPC server.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	logger.InfoKV(ctx, "Briefcase unit started",
		"version", version.Full(),
		"listen_address", listenAddress,
		"metrics_address", metricsAddress,
		"queue_capacity", settings.QueueCapacity,
		"alarm_interval", settings.AlarmInterval,
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return u.Start(ctx)
	})

	g.Go(func() error {
		return servePanel(ctx, lis, u)
	})

	if metricsAddress != "" {
		g.Go(func() error {
			return serveMetrics(ctx, metricsAddress)
		})
	}

	if opts.Watch {
		g.Go(func() error {
			return config.Watch(ctx, opts.ConfigPath, func(cfg *config.Config) {
				u.ApplyReload(ctx, cfg)
			})
		})
	}

	if err := g.Wait(); err != nil {
		logger.ErrorKV(ctx, "Briefcase unit failed", "error", err)

		return err
	}

	logger.Info(ctx, "Briefcase unit stopped")

	return nil
}

// servePanel serves the front panel on lis until ctx is done.
func servePanel(ctx context.Context, lis net.Listener, svc panel.Service) error {
	grpcServer := grpc.NewServer()
	panel.RegisterPanelServiceServer(grpcServer, panel.NewServer(svc))

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// serveMetrics exposes /metrics on address until ctx is done.
func serveMetrics(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: config.DefaultTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsShutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.InfoKV(ctx, "Metrics endpoint listening", "metrics_address", address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics: %w", err)
	}

	return nil
}

// resolveListenAddress determines the listen address for the panel server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr.
// Returns appropriate listen address (e.g., ":8080" for port-only binding).
func resolveListenAddress(configAddr, override string) (string, error) {
	// Use override address if provided (e.g., ":9090", "0.0.0.0:8080").
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoPanelAddress
	}

	// Parse the address to extract port.
	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid panel address format %q: %w", configAddr, err)
	}

	// Return port-only listen address to bind on all interfaces.
	return ":" + port, nil
}
