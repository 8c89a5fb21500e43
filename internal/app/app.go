package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikhailRaia/shorturls/internal/config"
	"github.com/MikhailRaia/shorturls/internal/handler"
	"github.com/MikhailRaia/shorturls/internal/middleware"
	"github.com/MikhailRaia/shorturls/internal/proto"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage/memory"
	"github.com/MikhailRaia/shorturls/internal/worker"
)

type App struct {
	config       *config.Config
	storage      *memory.Storage
	handler      http.Handler
	grpcServer   *grpc.Server
	healthServer *health.Server
	sweeper      *worker.ExpirySweeper
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the wall clock used for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func NewApp(cfg *config.Config, opts ...Option) *App {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	storage := memory.NewStorage()
	allocator := service.NewAllocator(cfg.ShortcodeLength, cfg.MaxAllocAttempts)

	urlService := service.NewURLService(storage, allocator,
		service.WithDefaultValidity(cfg.DefaultValidity),
		service.WithClock(o.now),
	)

	httpHandler := handler.NewHandler(urlService, cfg.BaseURL)

	a := &App{
		config:  cfg,
		storage: storage,
		handler: httpHandler.RegisterRoutes(),
	}

	if cfg.GRPCAddress != "" {
		a.grpcServer = grpc.NewServer(
			grpc.ForceServerCodec(proto.Codec{}),
			grpc.ChainUnaryInterceptor(middleware.UnaryLoggingInterceptor),
		)
		proto.RegisterShortURLServiceServer(a.grpcServer, handler.NewShortURLGRPCServer(urlService, cfg.BaseURL))

		a.healthServer = health.NewServer()
		a.healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		healthpb.RegisterHealthServer(a.grpcServer, a.healthServer)
	}

	if cfg.SweepInterval > 0 {
		a.sweeper = worker.NewExpirySweeper(storage, cfg.SweepInterval, worker.WithSweeperClock(o.now))
	}

	return a
}

// Handler returns the HTTP handler with all routes registered.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP (and gRPC when configured) until ctx is cancelled or a
// server fails, then shuts everything down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	httpListener, err := net.Listen("tcp", a.config.ServerAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.ServerAddress, err)
	}

	httpServer := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("address", httpListener.Addr().String()).Str("baseURL", a.config.BaseURL).Msg("Starting HTTP server")
		if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	if a.grpcServer != nil {
		grpcListener, err := net.Listen("tcp", a.config.GRPCAddress)
		if err != nil {
			_ = httpServer.Close()
			return fmt.Errorf("failed to listen on %s: %w", a.config.GRPCAddress, err)
		}

		go func() {
			log.Info().Str("address", grpcListener.Addr().String()).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(grpcListener); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	if a.sweeper != nil {
		a.sweeper.Start()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("Server failed")
	}

	if err := a.shutdown(httpServer); err != nil && runErr == nil {
		runErr = err
	}

	return runErr
}

func (a *App) shutdown(httpServer *http.Server) error {
	timeout := a.config.ShutdownTimeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error

	if a.healthServer != nil {
		a.healthServer.Shutdown()
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if a.grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			a.grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-ctx.Done():
			log.Warn().Msg("gRPC graceful stop timed out, forcing stop")
			a.grpcServer.Stop()
		}
	}

	if a.sweeper != nil {
		if err := a.sweeper.Shutdown(timeout); err != nil {
			errs = append(errs, fmt.Errorf("sweeper shutdown: %w", err))
		}
	}

	log.Info().Int("entries", a.storage.Len()).Msg("Server stopped")

	return errors.Join(errs...)
}
