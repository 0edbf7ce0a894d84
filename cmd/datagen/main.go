package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vanshika/txfetch/internal/config"
	"github.com/vanshika/txfetch/internal/generator"
	"github.com/vanshika/txfetch/internal/logging"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		transactions = flag.Int("transactions", cfg.NumTransactions, "number of transactions to generate")
		clients      = flag.Int("clients", cfg.NumClients, "number of distinct clients")
		issueChance  = flag.Float64("issue-chance", cfg.IssueChance, "probability that a transaction carries a compliance issue")
		solvedChance = flag.Float64("solved-chance", cfg.SolvedChance, "probability that an issue is solved")
		repeatChance = flag.Float64("repeat-mtn-chance", cfg.RepeatMTNChance, "probability of reusing an earlier transaction number")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir    = flag.String("output-dir", "data", "directory to write transactions.json")
		writeStdout  = flag.Bool("stdout", false, "write the dataset to stdout instead of a file")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := newLogger(nil)

	genCfg := generator.Config{
		NumTransactions: *transactions,
		NumClients:      *clients,
		IssueChance:     clampProbability(*issueChance),
		SolvedChance:    clampProbability(*solvedChance),
		RepeatMTNChance: clampProbability(*repeatChance),
		Seed:            *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	dataset, err := generator.New(genCfg).Generate(ctx)
	if err != nil {
		logger.Error("generation failed", logging.FieldError, err)
		os.Exit(1)
	}

	if *writeStdout {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dataset.Transactions); err != nil {
			logger.Error("failed to write dataset to stdout", logging.FieldError, err)
			os.Exit(1)
		}
		return
	}

	path, err := generator.WriteDataset(dataset, *outputDir)
	if err != nil {
		logger.Error("failed to write dataset", logging.FieldError, err)
		os.Exit(1)
	}

	logger.Info("dataset generated",
		logging.FieldPath, path,
		logging.FieldCount, len(dataset.Transactions),
		logging.FieldDuration, time.Since(start).String(),
	)
}

// newLogger builds the datagen logger from the environment. An invalid
// configuration falls back to text logging at info level and is reported.
func newLogger(w io.Writer) *slog.Logger {
	cfg, err := config.Load()
	loggingCfg := cfg.Logging
	if err != nil {
		loggingCfg = config.LoggingConfig{Level: "info", Format: "text"}
	}
	logger := logging.ForComponent(logging.New(loggingCfg, w), logging.ComponentDatagen)
	if err != nil {
		logger.Warn("invalid configuration, using default logging", logging.FieldError, err)
	}
	return logger
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
