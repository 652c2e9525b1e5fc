package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"hisab/internal/app"
	"hisab/internal/cli"
	apphttp "hisab/internal/http"
	"hisab/internal/log"
	"hisab/internal/metrics"
)

func main() {
	cli.LoadEnvFile()

	// Bootstrap logger until the config says otherwise
	logger := cli.SetupLogger(nil, log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg, log.ComponentApp)

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	m := metrics.New()

	be := cli.OpenBackend(ctx, logger, cfg, true)
	defer func() {
		if err := be.Close(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	opts := []app.Option{
		app.WithMetrics(m),
		app.WithLogger(logger.Logger),
	}
	if be.Notifier != nil {
		opts = append(opts, app.WithNotifier(be.Notifier))
	}
	ctrl := app.New(ctx, be.Store, opts...)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Controller:         ctrl,
		Metrics:            m,
		Logger:             log.New(log.Config{Handler: logger.Handler(), Component: log.ComponentHTTP}),
		Ready:              be.Ready,
		ConfirmTTL:         cfg.ConfirmTTL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting hisab server",
			"port", cfg.Port,
			log.FieldBackend, cfg.DataBackend,
			log.FieldRevision, ctrl.Revision())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
