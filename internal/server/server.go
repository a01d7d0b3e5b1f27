package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/AttachKit/internal/config"
	"github.com/GriffinCanCode/AttachKit/internal/handlers"
	"github.com/GriffinCanCode/AttachKit/internal/listener"
	"github.com/GriffinCanCode/AttachKit/internal/logging"
	"github.com/GriffinCanCode/AttachKit/internal/monitoring"
	"github.com/GriffinCanCode/AttachKit/internal/registry"
)

// Server wires the attach listener, the command registry, and the optional
// diagnostics HTTP endpoint, and drives the single consumer loop.
type Server struct {
	listener *listener.Listener
	registry *registry.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	config   *config.Config
	limiter  *rate.Limiter
	http     *http.Server
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Info("Initializing attach listener",
		zap.Int("capacity", cfg.Listener.Capacity),
		zap.String("name_prefix", cfg.Listener.NamePrefix),
	)

	metrics := monitoring.NewMetrics()

	lst := listener.New(listener.Config{
		Capacity:     cfg.Listener.Capacity,
		NamePrefix:   cfg.Listener.NamePrefix,
		ReadyRetries: cfg.Listener.ReadyRetries,
		ReadyWait:    time.Duration(cfg.Listener.ReadyWaitMs) * time.Millisecond,
	}).WithLogger(logger).WithMetrics(metrics)

	reg := registry.NewRegistry()
	if err := registerBuiltins(reg, cfg, logger); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.CommandsPerSecond), cfg.RateLimit.Burst)
	}

	s := &Server{
		listener: lst,
		registry: reg,
		metrics:  metrics,
		logger:   logger,
		config:   cfg,
		limiter:  limiter,
	}

	if cfg.HTTP.Enabled {
		s.http = &http.Server{
			Addr:    cfg.HTTP.Addr,
			Handler: s.router(),
		}
	}
	return s, nil
}

// registerBuiltins registers every builtin handler not disabled by the
// command manifest.
func registerBuiltins(reg *registry.Registry, cfg *config.Config, logger *logging.Logger) error {
	var manifest *config.Manifest
	if cfg.Manifest.Path != "" {
		m, err := config.LoadManifest(cfg.Manifest.Path)
		if err != nil {
			return fmt.Errorf("failed to load command manifest: %w", err)
		}
		manifest = m
	}

	for _, h := range handlers.Builtin() {
		name := h.Definition().Name
		if manifest.IsDisabled(name) {
			logger.Info("Command disabled by manifest", zap.String("command", name))
			continue
		}
		if err := reg.Register(h); err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}
	}
	return nil
}

// Listener exposes the enqueue entry points to in-process producers.
func (s *Server) Listener() *listener.Listener {
	return s.listener
}

// Registry exposes the command registry for embedding programs that
// register their own handlers before Run.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Run starts the consumer loop and, if enabled, the diagnostics HTTP
// endpoint, and blocks until ctx is cancelled or one of them fails.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.consume(ctx)
	})

	if s.http != nil {
		g.Go(func() error {
			s.logger.Info("Diagnostics endpoint listening", zap.String("addr", s.http.Addr))
			if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.http.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

// consume is the single consumer loop: dequeue, execute, complete, repeat.
func (s *Server) consume(ctx context.Context) error {
	s.listener.SetReady()
	s.logger.Info("Attach listener ready")

	for {
		op, err := s.listener.Dequeue(ctx)
		if err != nil {
			return err
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				op.Discard()
				return err
			}
		}

		s.logger.Info("Executing command",
			zap.String("op_id", op.ID()),
			zap.String("command", op.Name()),
		)

		start := time.Now()
		result := s.registry.Execute(ctx, op.Name(), op.Args())
		elapsed := time.Since(start)

		s.metrics.RecordCommand(op.Name(), strconv.FormatInt(int64(result.Code), 10), elapsed)

		if err := op.Complete(result.Code, result.Output); err != nil {
			// Reply failure is a transport failure: the drop stays silent.
			s.metrics.RecordTransportFailure("reply")
			continue
		}

		s.logger.Info("Command completed",
			zap.String("op_id", op.ID()),
			zap.String("command", op.Name()),
			zap.Int32("code", result.Code),
			zap.Duration("duration", elapsed),
		)
	}
}
