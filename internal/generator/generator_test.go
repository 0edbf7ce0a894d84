package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vanshika/txfetch/internal/source"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{NumTransactions: 200, NumClients: 10, IssueChance: 0.5, SolvedChance: 0.5, RepeatMTNChance: 0.1, Seed: 7}

	first, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical datasets for the same seed")
	}
}

func TestGenerate_Shape(t *testing.T) {
	cfg := Config{NumTransactions: 500, NumClients: 12, IssueChance: 0.7, SolvedChance: 0.4, Seed: 99}

	dataset, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(dataset.Transactions) != cfg.NumTransactions {
		t.Fatalf("expected %d transactions, got %d", cfg.NumTransactions, len(dataset.Transactions))
	}

	clients := make(map[string]struct{})
	expectedIssueID := 1
	for i, tx := range dataset.Transactions {
		if tx.SenderFullName == tx.BeneficiaryFullName {
			t.Fatalf("transaction %d sends to itself", i)
		}
		if tx.Amount < 10 || tx.Amount > 5000 {
			t.Fatalf("transaction %d amount out of range: %v", i, tx.Amount)
		}
		clients[tx.SenderFullName] = struct{}{}
		clients[tx.BeneficiaryFullName] = struct{}{}

		if tx.IssueID == nil {
			if !tx.IssueSolved || tx.IssueMessage != nil {
				t.Fatalf("transaction %d without issue must be solved with no message", i)
			}
			continue
		}
		if *tx.IssueID != expectedIssueID {
			t.Fatalf("transaction %d: expected issue id %d, got %d", i, expectedIssueID, *tx.IssueID)
		}
		expectedIssueID++
		if tx.IssueMessage == nil || *tx.IssueMessage == "" {
			t.Fatalf("transaction %d issue without message", i)
		}
	}
	if len(clients) > cfg.NumClients {
		t.Fatalf("expected at most %d clients, got %d", cfg.NumClients, len(clients))
	}
}

func TestGenerate_NoIssues(t *testing.T) {
	dataset, err := New(Config{NumTransactions: 50, NumClients: 5, Seed: 3}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, tx := range dataset.Transactions {
		if tx.IssueID != nil {
			t.Fatalf("transaction %d: expected no issue with zero issue chance", i)
		}
	}
}

func TestGenerate_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(DefaultConfig()).Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWriteDataset_RoundTripsThroughLoader(t *testing.T) {
	dataset, err := New(Config{NumTransactions: 25, NumClients: 6, IssueChance: 0.5, SolvedChance: 0.5, Seed: 11}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	path, err := WriteDataset(dataset, dir)
	if err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	if path != filepath.Join(dir, TransactionsFile) {
		t.Fatalf("unexpected path %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		t.Fatalf("expected a bare json array, got %.20s", raw)
	}

	inputs, err := source.NewJSONFile(path).LoadInputs()
	if err != nil {
		t.Fatalf("load inputs: %v", err)
	}
	if !reflect.DeepEqual(inputs, dataset.Transactions) {
		t.Fatalf("expected written dataset to load back unchanged")
	}
}
