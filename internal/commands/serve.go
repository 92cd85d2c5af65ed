package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cloud-ru/estate-loan-calculator/internal/config"
	"github.com/cloud-ru/estate-loan-calculator/internal/handler"
	"github.com/cloud-ru/estate-loan-calculator/internal/logging"
	"github.com/cloud-ru/estate-loan-calculator/internal/store"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
	"github.com/cloud-ru/estate-loan-calculator/internal/tracing"
)

const (
	shutdownTimeout = 15 * time.Second
	pingTimeout     = 3 * time.Second
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API калькулятора",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if port != 0 {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "порт HTTP-сервера (по умолчанию из PORT)")

	return cmd
}

// runServe работает до отмены ctx, затем корректно останавливает сервер
func runServe(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Float64("max_principal", cfg.MaxPrincipal),
		zap.Float64("max_rate", cfg.MaxRate),
		zap.Int("max_months", cfg.MaxMonths),
		zap.Bool("redis", cfg.RedisAddr != ""),
		zap.Duration("result_ttl", cfg.ResultTTL),
	)

	shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	st, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	reg := tools.NewRegistry(cfg, tracing.Tracer)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.NewRouter(reg, st, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("server shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("server forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openStore выбирает Redis, если задан REDIS_ADDR, иначе хранит расчеты в памяти.
// Недоступный при старте Redis не останавливает сервис.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("result store: in-memory", zap.Duration("ttl", cfg.ResultTTL))
		ms := store.NewMemoryStore(cfg.ResultTTL)
		return ms, ms.Close
	}

	rs := store.NewRedisStore(store.NewRedisClient(cfg.RedisAddr), cfg.ResultTTL, logger)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rs.Ping(pctx); err != nil {
		logger.Warn("result store: redis is not reachable yet", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	} else {
		logger.Info("result store: redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.ResultTTL))
	}

	return rs, func() {
		if err := rs.Close(); err != nil {
			logger.Warn("closing redis client", zap.Error(err))
		}
	}
}
