package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanshika/txfetch/internal/config"
	"github.com/vanshika/txfetch/internal/logging"
	"github.com/vanshika/txfetch/internal/report"
	"github.com/vanshika/txfetch/internal/service"
	"github.com/vanshika/txfetch/internal/source"
)

func main() {
	var (
		clients = flag.String("clients", "", "Comma separated client names to summarise (overrides REPORT_CLIENTS)")
		format  = flag.String("format", "", "Output format: text or json (overrides REPORT_FORMAT)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *clients != "" {
		cfg.Report.Clients = config.ParseCSV(*clients)
	}
	if *format != "" {
		cfg.Report.Format = *format
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
			os.Exit(1)
		}
	}

	logger := logging.ForComponent(logging.New(cfg.Logging, nil), logging.ComponentReport)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Report.Timeout)
	defer cancel()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg config.Config) error {
	loader, err := source.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s source: %w", cfg.Source.Kind, err)
	}
	defer func() {
		if err := loader.Close(context.Background()); err != nil {
			logger.Warn("closing source failed", logging.FieldError, err)
		}
	}()

	start := time.Now()
	txs, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	logger.Info("transactions loaded",
		logging.FieldSource, cfg.Source.Kind,
		logging.FieldCount, len(txs),
		logging.FieldDuration, time.Since(start).String(),
	)

	svc := service.NewTransactionQueryService(txs)
	rep, err := report.Build(ctx, svc, cfg.Report.Clients)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if cfg.Report.Format == config.FormatJSON {
		return report.WriteJSON(os.Stdout, rep)
	}
	return report.WriteText(os.Stdout, rep)
}
