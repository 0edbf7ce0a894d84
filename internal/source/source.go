// Package source provides the loaders that supply the transaction sequence to
// the query service: a JSON dataset file, the graph store or the SQLite store.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/vanshika/txfetch/internal/config"
	"github.com/vanshika/txfetch/internal/domain"
	"github.com/vanshika/txfetch/internal/graph"
	"github.com/vanshika/txfetch/internal/logging"
	"github.com/vanshika/txfetch/internal/repository"
	"github.com/vanshika/txfetch/internal/service"
	"github.com/vanshika/txfetch/internal/storage"
)

// ErrUnknownKind is returned by Open for an unsupported source kind.
var ErrUnknownKind = errors.New("unknown source kind")

// Loader reads the full transaction sequence in order.
type Loader interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
	Close(ctx context.Context) error
}

// GraphConnector opens a graph client; it is swapped out in tests.
type GraphConnector func(ctx context.Context, opts graph.Options) (graph.Client, error)

// Open builds the loader selected by cfg.Source.Kind.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (Loader, error) {
	return open(ctx, cfg, logger, graph.NewNeo4jClient)
}

func open(ctx context.Context, cfg config.Config, logger *slog.Logger, connect GraphConnector) (Loader, error) {
	switch cfg.Source.Kind {
	case config.SourceJSON:
		logging.ForComponent(logger, logging.ComponentSource).
			Debug("using json dataset", logging.FieldPath, cfg.Source.Path)
		return NewJSONFile(cfg.Source.Path), nil
	case config.SourceSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		logging.ForComponent(logger, logging.ComponentStorage).
			Debug("using sqlite store", logging.FieldPath, cfg.SQLite.Path)
		return SQLite{Store: store}, nil
	case config.SourceGraph:
		client, err := connect(ctx, GraphOptions(cfg.Graph))
		if err != nil {
			return nil, err
		}
		logging.ForComponent(logger, logging.ComponentGraph).
			Debug("using graph store", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
		return Graph{Repo: repository.New(client)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Source.Kind)
	}
}

// GraphOptions maps the graph configuration to client options.
func GraphOptions(cfg config.GraphConfig) graph.Options {
	return graph.Options{
		URI:            cfg.URI,
		Database:       cfg.Database,
		Username:       cfg.Username,
		Password:       cfg.Password,
		MaxConnections: cfg.MaxConnections,
	}
}

// JSONFile loads a dataset file holding an array of transaction records.
type JSONFile struct {
	Path string
}

// NewJSONFile returns a loader for the dataset at path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path}
}

// Load decodes the file. The context is only checked before reading.
func (f *JSONFile) Load(ctx context.Context) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inputs, err := f.LoadInputs()
	if err != nil {
		return nil, err
	}
	return service.ToDomainTransactions(inputs), nil
}

// LoadInputs decodes the raw records without converting them.
func (f *JSONFile) LoadInputs() ([]service.TransactionInput, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer file.Close()

	var inputs []service.TransactionInput
	if err := json.NewDecoder(file).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return inputs, nil
}

func (f *JSONFile) Close(context.Context) error {
	return nil
}

// SQLite adapts a storage.SQLiteStore to Loader.
type SQLite struct {
	Store *storage.SQLiteStore
}

func (s SQLite) Load(ctx context.Context) ([]domain.Transaction, error) {
	return s.Store.LoadTransactions(ctx)
}

func (s SQLite) Close(context.Context) error {
	return s.Store.Close()
}

// Graph adapts a repository.Repository to Loader.
type Graph struct {
	Repo *repository.Repository
}

func (g Graph) Load(ctx context.Context) ([]domain.Transaction, error) {
	return g.Repo.LoadTransactions(ctx)
}

func (g Graph) Close(ctx context.Context) error {
	return g.Repo.Close(ctx)
}
