package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/Belphemur/OpenSubtitlesAuto/internal/client"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/config"
	grpcserver "github.com/Belphemur/OpenSubtitlesAuto/internal/grpc"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/metrics"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/models"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/server"
	"github.com/Belphemur/OpenSubtitlesAuto/internal/services"
)

const (
	shutdownTimeout    = 10 * time.Second
	sentryFlushTimeout = 2 * time.Second
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port int
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the addon over HTTP (and gRPC when enabled)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("address") {
				cfg.Server.Address = address
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Sentry.DSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:         cfg.Sentry.DSN,
					Environment: cfg.Sentry.Environment,
					Release:     "opensubtitles-auto@" + models.NewManifest().Version,
				}); err != nil {
					logger := config.GetLogger()
					logger.Error().Err(err).Msg("Failed to initialize Sentry")
				} else {
					defer sentry.Flush(sentryFlushTimeout)
				}
			}

			c := client.NewClient(cfg)
			defer c.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, services.NewSubtitleLookup(c, cfg.DefaultLanguage), nil)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides server.port)")
	cmd.Flags().StringVar(&address, "address", "", "HTTP listen address (overrides server.address)")
	return cmd
}

// serve runs the HTTP adapter, plus the gRPC adapter and the metrics endpoint when
// enabled, until ctx is done or one of them fails. onListen, when set, receives each
// bound address keyed by "http", "grpc" or "metrics".
func serve(ctx context.Context, cfg *config.Config, lookup services.SubtitleLookup, onListen func(name string, addr net.Addr)) error {
	logger := config.GetLogger()

	logger.Info().
		Str("base_url", cfg.OpenSubtitles.BaseURL).
		Str("default_language", cfg.DefaultLanguage).
		Bool("api_key_set", cfg.OpenSubtitles.APIKey != "").
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Bool("grpc_enabled", cfg.GRPC.Enabled).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Application started with configuration")

	var listeners []net.Listener
	listen := func(name, address string) (net.Listener, error) {
		lis, err := net.Listen("tcp", address)
		if err != nil {
			for _, l := range listeners {
				_ = l.Close()
			}
			return nil, fmt.Errorf("failed to create %s listener on %s: %w", name, address, err)
		}
		listeners = append(listeners, lis)
		if onListen != nil {
			onListen(name, lis.Addr())
		}
		return lis, nil
	}

	httpServer := server.NewHTTPServer(cfg.Server.Address, cfg.Server.Port, server.NewRouter(lookup, cfg.DefaultLanguage))
	httpListener, err := listen("http", httpServer.Addr)
	if err != nil {
		return err
	}

	var grpcServer *grpc.Server
	var grpcListener net.Listener
	if cfg.GRPC.Enabled {
		grpcListener, err = listen("grpc", net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.GRPC.Port)))
		if err != nil {
			return err
		}
		grpcServer = grpcserver.NewGRPCServer(lookup, cfg.DefaultLanguage)
	}

	var metricsServer *http.Server
	var metricsListener net.Listener
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		metricsListener, err = listen("metrics", metricsServer.Addr)
		if err != nil {
			return err
		}
	}

	errCh := make(chan error, 3)

	go func() {
		logger.Info().Str("address", httpListener.Addr().String()).Msg("Starting HTTP server")
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()
	if grpcServer != nil {
		go func() {
			logger.Info().Str("address", grpcListener.Addr().String()).Msg("Starting gRPC server")
			if err := grpcServer.Serve(grpcListener); err != nil {
				errCh <- fmt.Errorf("failed to serve gRPC: %w", err)
			}
		}()
	}
	if metricsServer != nil {
		go func() {
			logger.Info().Str("address", metricsListener.Addr().String()).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.Serve(metricsListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("failed to serve metrics: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	case serveErr = <-errCh:
		logger.Error().Err(serveErr).Msg("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}

	logger.Info().Msg("Server stopped gracefully")
	return serveErr
}
