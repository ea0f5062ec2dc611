package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery-insights/config"
	"delivery-insights/models"
	"delivery-insights/services"
	"delivery-insights/storage"
	"delivery-insights/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetLevel(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Cury Company delivery insights starting ===")
	logger.Info("Config: source=%s | page=%s | cutoff=%s | strict=%t | top-k=%d",
		cfg.Source, cfg.Page, cfg.Cutoff.Format(models.DateLayout), cfg.StrictMode, cfg.TopK)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open source: %v", err)
		os.Exit(1)
	}
	defer source.Close()

	writers, err := openWriters(cfg)
	if err != nil {
		logger.Error("Failed to create exporters: %v", err)
		os.Exit(1)
	}
	defer func() {
		for _, w := range writers {
			_ = w.Close()
		}
	}()

	pipeline := services.NewPipeline(source, services.NewCleaner(logger, cfg.StrictMode), logger)
	insightSvc := services.NewInsightService(logger, cfg.TopK)

	if err := render(ctx, cfg, pipeline, insightSvc, writers, logger); err != nil {
		exitOnError(logger, err)
	}

	if !cfg.Watch {
		return
	}
	if cfg.Source != config.SourceCSV {
		logger.Warn("WATCH is only supported for the csv source")
		return
	}

	err = storage.Watch(ctx, cfg.DatasetPath, logger, func() {
		logger.Info("Source changed, re-rendering")
		if err := render(ctx, cfg, pipeline, insightSvc, writers, logger); err != nil {
			logger.Error("Render failed: %v", err)
		}
	})
	if err != nil {
		logger.Error("Watch failed: %v", err)
		os.Exit(1)
	}
}

func openSource(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.RawSource, error) {
	csvSource := storage.NewCSVSource(cfg.DatasetPath, cfg.CSVDelimiter)
	if cfg.Source != config.SourcePostgres {
		return csvSource, nil
	}

	retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	pg, err := storage.NewPostgresSource(ctx, cfg.DSN(), retry)
	if err != nil {
		return nil, err
	}

	if cfg.SeedPostgres {
		raw, err := csvSource.Load(ctx)
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
		if err := pg.Seed(ctx, raw); err != nil {
			_ = pg.Close()
			return nil, err
		}
		logger.Info("Seeded PostgreSQL with %d raw records from %s", len(raw), cfg.DatasetPath)
	}
	return pg, nil
}

func openWriters(cfg *config.Config) ([]storage.TableWriter, error) {
	var writers []storage.TableWriter
	if cfg.CSVExportDir != "" {
		w, err := storage.NewCSVWriter(cfg.CSVExportDir)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	if cfg.XLSXExportPath != "" {
		w, err := storage.NewXLSXWriter(cfg.XLSXExportPath)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}
	return writers, nil
}

// render runs one full page cycle: load, clean, filter, aggregate, print, export.
func render(ctx context.Context, cfg *config.Config, pipeline *services.Pipeline,
	insightSvc *services.InsightService, writers []storage.TableWriter, logger *utils.Logger) error {

	records, stats, err := pipeline.Records(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("all records were dropped during cleaning")
	}
	logger.Info("Cleaned dataset: %d records (%d dropped)", len(records), stats.Total())

	filter := cfg.Filter()
	var all []models.Table
	for _, page := range cfg.Pages() {
		var tables []models.Table
		switch page {
		case config.PageCompany:
			tables = insightSvc.Company(records, filter).Tables()
		case config.PageCouriers:
			tables = insightSvc.Couriers(records, filter).Tables()
		case config.PageRestaurants:
			tables = insightSvc.Restaurants(records, filter).Tables()
		default:
			return fmt.Errorf("unknown page %q", page)
		}
		insightSvc.Print(os.Stdout, page, tables)
		all = append(all, tables...)
	}

	pool := utils.NewWorkerPool(len(writers))
	for _, w := range writers {
		pool.Submit(func() error { return w.Write(all) })
	}
	if err := pool.Wait(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if len(writers) > 0 {
		logger.Info("Exported %d tables", len(all))
	}
	return nil
}

func exitOnError(logger *utils.Logger, err error) {
	var le *models.LoadError
	var fe *models.FormatError
	switch {
	case errors.As(err, &le):
		logger.Error("Cannot load dataset: %v", err)
	case errors.As(err, &fe):
		logger.Error("Dataset format error (set STRICT_MODE=false to drop bad rows): %v", err)
	default:
		logger.Error("%v", err)
	}
	os.Exit(1)
}
