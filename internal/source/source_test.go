package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanshika/txfetch/internal/config"
	"github.com/vanshika/txfetch/internal/domain"
	"github.com/vanshika/txfetch/internal/graph"
	"github.com/vanshika/txfetch/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSONFile_Load(t *testing.T) {
	txs, err := NewJSONFile(filepath.Join("testdata", "transactions.json")).Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(txs) != 13 {
		t.Fatalf("expected 13 transactions, got %d", len(txs))
	}

	first := txs[0]
	if first.MTN != 663458 || first.SenderFullName != "Tom Shelby" || first.IssueID != 1 || first.IssueSolved {
		t.Errorf("unexpected first transaction %+v", first)
	}
	if txs[3].HasIssue() || txs[3].IssueMessage != "" {
		t.Errorf("expected null issue on fourth record, got %+v", txs[3])
	}
}

func TestJSONFile_Errors(t *testing.T) {
	if _, err := NewJSONFile(filepath.Join("testdata", "missing.json")).Load(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	if _, err := NewJSONFile(filepath.Join("testdata", "malformed.json")).Load(context.Background()); err == nil {
		t.Errorf("expected decode error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewJSONFile(filepath.Join("testdata", "transactions.json")).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpen_JSON(t *testing.T) {
	cfg := config.Config{Source: config.SourceConfig{Kind: config.SourceJSON, Path: filepath.Join("testdata", "transactions.json")}}

	loader, err := Open(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer loader.Close(context.Background())

	if _, ok := loader.(*JSONFile); !ok {
		t.Fatalf("expected *JSONFile, got %T", loader)
	}
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.db")
	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	want := domain.Transaction{MTN: 9, Amount: 12.5, SenderFullName: "A", BeneficiaryFullName: "B", IssueSolved: true}
	if err := store.SaveTransaction(context.Background(), 0, want); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store.Close()

	cfg := config.Config{
		Source: config.SourceConfig{Kind: config.SourceSQLite},
		SQLite: config.SQLiteConfig{Path: path},
	}
	loader, err := Open(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer loader.Close(context.Background())

	txs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 1 || txs[0] != want {
		t.Fatalf("unexpected transactions %+v", txs)
	}
}

func TestOpen_Graph(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushReadResult(graph.Result{Records: []graph.Record{
		{"mtn": int64(1), "amount": 10.0, "senderFullName": "A", "beneficiaryFullName": "B", "issueSolved": true},
	}})

	var gotOpts graph.Options
	connect := func(ctx context.Context, opts graph.Options) (graph.Client, error) {
		gotOpts = opts
		return mem, nil
	}

	cfg := config.Config{
		Source: config.SourceConfig{Kind: config.SourceGraph},
		Graph:  config.GraphConfig{URI: "bolt://localhost:7687", Database: "neo4j", MaxConnections: 3},
	}
	loader, err := open(context.Background(), cfg, discardLogger(), connect)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotOpts.URI != "bolt://localhost:7687" || gotOpts.Database != "neo4j" || gotOpts.MaxConnections != 3 {
		t.Errorf("unexpected graph options %+v", gotOpts)
	}

	txs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 1 || txs[0].SenderFullName != "A" {
		t.Fatalf("unexpected transactions %+v", txs)
	}

	if err := loader.Close(context.Background()); err != nil || !mem.Closed() {
		t.Errorf("expected graph client to be closed")
	}
}

func TestOpen_GraphConnectError(t *testing.T) {
	errRefused := errors.New("connection refused")
	connect := func(ctx context.Context, opts graph.Options) (graph.Client, error) {
		return nil, errRefused
	}
	cfg := config.Config{Source: config.SourceConfig{Kind: config.SourceGraph}}

	if _, err := open(context.Background(), cfg, discardLogger(), connect); !errors.Is(err, errRefused) {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	cfg := config.Config{Source: config.SourceConfig{Kind: "csv"}}
	if _, err := Open(context.Background(), cfg, discardLogger()); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestOpen_TagsComponentPerKind(t *testing.T) {
	connect := func(ctx context.Context, opts graph.Options) (graph.Client, error) {
		return graph.NewMemoryClient(), nil
	}

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "json",
			cfg:  config.Config{Source: config.SourceConfig{Kind: config.SourceJSON, Path: "tx.json"}},
			want: "component=source",
		},
		{
			name: "sqlite",
			cfg: config.Config{
				Source: config.SourceConfig{Kind: config.SourceSQLite},
				SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "tx.db")},
			},
			want: "component=storage",
		},
		{
			name: "graph",
			cfg: config.Config{
				Source: config.SourceConfig{Kind: config.SourceGraph},
				Graph:  config.GraphConfig{URI: "bolt://localhost:7687"},
			},
			want: "component=graph",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			loader, err := open(context.Background(), tc.cfg, logger, connect)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			defer loader.Close(context.Background())

			if !strings.Contains(buf.String(), tc.want) {
				t.Errorf("expected log line with %q, got %s", tc.want, buf.String())
			}
		})
	}
}
