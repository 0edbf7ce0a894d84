package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanshika/txfetch/internal/config"
	"github.com/vanshika/txfetch/internal/graph"
	"github.com/vanshika/txfetch/internal/logging"
	"github.com/vanshika/txfetch/internal/repository"
	"github.com/vanshika/txfetch/internal/service"
	"github.com/vanshika/txfetch/internal/source"
	"github.com/vanshika/txfetch/internal/storage"
)

var errUnknownTarget = errors.New("unknown ingest target")

// store is the write side of a transaction store.
type store interface {
	service.TransactionWriter
	CountTransactions(ctx context.Context) (int64, error)
}

func main() {
	var (
		transactions = flag.String("transactions", "", "Path to transactions.json (defaults to TRANSACTIONS_PATH)")
		target       = flag.String("target", config.SourceSQLite, "Store to ingest into: graph or sqlite")
		workers      = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.ForComponent(logging.New(cfg.Logging, nil), logging.ComponentIngest)

	path := cfg.Source.Path
	if *transactions != "" {
		path = *transactions
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, cfg, path, *target, *workers); err != nil {
		logger.Error("ingestion failed", logging.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg config.Config, path, target string, workers int) error {
	txs, err := source.NewJSONFile(path).Load(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if len(txs) == 0 {
		logger.Warn("transactions dataset empty", logging.FieldPath, path)
		return nil
	}

	dest, closeFn, err := openStore(ctx, logger, cfg, target, graph.NewNeo4jClient)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("closing store failed", logging.FieldError, err)
		}
	}()

	start := time.Now()
	logger.Info("ingesting transactions", logging.FieldCount, len(txs), logging.FieldWorkers, workers, "target", target)
	if err := service.NewBulkIngestor(dest, workers).IngestTransactions(ctx, txs); err != nil {
		return err
	}

	stored, err := dest.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("count stored transactions: %w", err)
	}
	logger.Info("ingestion complete",
		logging.FieldDuration, time.Since(start).String(),
		logging.FieldCount, len(txs),
		"stored", stored,
	)
	return nil
}

func openStore(ctx context.Context, logger *slog.Logger, cfg config.Config, target string, connect source.GraphConnector) (store, func() error, error) {
	switch target {
	case config.SourceSQLite:
		db, err := storage.NewSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("opened sqlite store", logging.FieldPath, cfg.SQLite.Path)
		return db, db.Close, nil
	case config.SourceGraph:
		// connect verifies connectivity before returning.
		client, err := connect(ctx, source.GraphOptions(cfg.Graph))
		if err != nil {
			return nil, nil, fmt.Errorf("connect to graph: %w", err)
		}
		logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
		repo := repository.New(client)
		return repo, func() error { return repo.Close(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownTarget, target)
	}
}

