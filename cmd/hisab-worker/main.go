package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"hisab/internal/amqp"
	"hisab/internal/backend"
	"hisab/internal/cli"
	"hisab/internal/log"
	"hisab/internal/sheets"
	gsheet "hisab/internal/sheets/google"
	mem "hisab/internal/sheets/memory"
	"hisab/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(nil, log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg, log.ComponentWorker)

	logger.Info("Starting hisab-worker")

	if !cfg.AMQPEnabled() {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if !backend.BackendType(cfg.DataBackend).Shared() {
		logger.Error("Worker needs a backend shared with the web process",
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	// The worker only reads the state, it never publishes.
	be := cli.OpenBackend(ctx, logger, cfg, false)
	defer func() {
		if err := be.Close(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	var writer sheets.StatsWriter
	if cfg.SheetsEnabled() {
		client, err := gsheet.New(ctx, gsheet.Options{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client",
				log.FieldError, err,
				log.FieldComponent, log.ComponentSheets)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		writer = client
	} else {
		logger.Info("Google Sheets disabled - stats are kept in memory")
		writer = mem.New()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(be.Store, writer)

	// Catch up on anything saved while the worker was down
	if err := mirror.StartupSync(ctx); err != nil {
		logger.Error("Failed startup sync", log.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := amqpClient.ConsumeWithRetry(gctx, mirror.HandleStateSaved)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
