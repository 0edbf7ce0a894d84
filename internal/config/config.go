package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Source kinds understood by the loaders.
const (
	SourceJSON   = "json"
	SourceGraph  = "graph"
	SourceSQLite = "sqlite"
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config aggregates application configuration values.
type Config struct {
	Source  SourceConfig
	Graph   GraphConfig
	SQLite  SQLiteConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// SourceConfig selects where the transaction sequence is read from.
type SourceConfig struct {
	Kind string
	Path string
}

// GraphConfig describes connectivity to the graph database (Neptune/Neo4j).
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// SQLiteConfig locates the SQLite transaction store.
type SQLiteConfig struct {
	Path string
}

// ReportConfig drives report rendering.
type ReportConfig struct {
	Format  string
	Clients []string
	Timeout time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultSourceKind       = SourceJSON
	defaultTransactionsPath = "testdata/transactions.json"
	defaultSQLitePath       = "data/transactions.db"
	defaultReportFormat     = FormatText
	defaultReportTimeout    = 30 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Source: SourceConfig{
			Kind: strings.ToLower(valueOrDefault("SOURCE_KIND", defaultSourceKind)),
			Path: valueOrDefault("TRANSACTIONS_PATH", defaultTransactionsPath),
		},
		Graph: GraphConfig{
			URI:            os.Getenv("GRAPH_URI"),
			Database:       valueOrDefault("GRAPH_DATABASE", ""),
			Username:       os.Getenv("GRAPH_USERNAME"),
			Password:       os.Getenv("GRAPH_PASSWORD"),
			MaxConnections: parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions),
		},
		SQLite: SQLiteConfig{
			Path: valueOrDefault("SQLITE_PATH", defaultSQLitePath),
		},
		Report: ReportConfig{
			Format:  strings.ToLower(valueOrDefault("REPORT_FORMAT", defaultReportFormat)),
			Clients: ParseCSV(os.Getenv("REPORT_CLIENTS")),
			Timeout: defaultReportTimeout,
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	if v := os.Getenv("REPORT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid REPORT_TIMEOUT: %w", err)
		}
		cfg.Report.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks option combinations and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	switch c.Source.Kind {
	case SourceJSON:
		if c.Source.Path == "" {
			problems = append(problems, "TRANSACTIONS_PATH is required for the json source")
		}
	case SourceGraph:
		if c.Graph.URI == "" {
			problems = append(problems, "GRAPH_URI is required for the graph source")
		}
	case SourceSQLite:
		if c.SQLite.Path == "" {
			problems = append(problems, "SQLITE_PATH is required for the sqlite source")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid SOURCE_KIND %q: must be one of [%s %s %s]", c.Source.Kind, SourceJSON, SourceGraph, SourceSQLite))
	}

	if c.Report.Format != FormatText && c.Report.Format != FormatJSON {
		problems = append(problems, fmt.Sprintf("invalid REPORT_FORMAT %q: must be %s or %s", c.Report.Format, FormatText, FormatJSON))
	}
	if c.Report.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid REPORT_TIMEOUT %v: must be positive", c.Report.Timeout))
	}
	if c.Graph.MaxConnections < 0 {
		problems = append(problems, fmt.Sprintf("invalid GRAPH_MAX_CONNECTIONS %d", c.Graph.MaxConnections))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ParseCSV splits a comma separated list, dropping blank entries.
func ParseCSV(csv string) []string {
	if csv == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(csv, ",") {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		values = append(values, value)
	}
	return values
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
