package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanshika/txfetch/internal/domain"

	_ "modernc.org/sqlite"
)

// ErrInvalidSequence is returned when a transaction is saved with a negative position.
var ErrInvalidSequence = errors.New("transaction sequence must not be negative")

// SQLiteStore keeps the transaction sequence in a single SQLite table keyed by position.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and migrates it.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY under the ingest worker pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveTransaction inserts or replaces the transaction stored at position seq.
func (s *SQLiteStore) SaveTransaction(ctx context.Context, seq int, tx domain.Transaction) error {
	if seq < 0 {
		return ErrInvalidSequence
	}

	var issueID sql.NullInt64
	if tx.HasIssue() {
		issueID = sql.NullInt64{Int64: int64(tx.IssueID), Valid: true}
	}
	var issueMessage sql.NullString
	if tx.IssueMessage != "" {
		issueMessage = sql.NullString{String: tx.IssueMessage, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, upsertTransactionSQL,
		seq,
		tx.MTN,
		tx.Amount,
		tx.SenderFullName,
		tx.SenderAge,
		tx.BeneficiaryFullName,
		tx.BeneficiaryAge,
		issueID,
		tx.IssueSolved,
		issueMessage,
	)
	if err != nil {
		return fmt.Errorf("save transaction %d: %w", seq, err)
	}
	return nil
}

// LoadTransactions returns every stored transaction ordered by sequence position.
func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectTransactionsSQL)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var (
			tx           domain.Transaction
			issueID      sql.NullInt64
			issueMessage sql.NullString
		)
		if err := rows.Scan(
			&tx.MTN,
			&tx.Amount,
			&tx.SenderFullName,
			&tx.SenderAge,
			&tx.BeneficiaryFullName,
			&tx.BeneficiaryAge,
			&issueID,
			&tx.IssueSolved,
			&issueMessage,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if issueID.Valid {
			tx.IssueID = int(issueID.Int64)
		}
		tx.IssueMessage = issueMessage.String
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// CountTransactions returns the number of stored transactions.
func (s *SQLiteStore) CountTransactions(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, countTransactionsSQL).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}

const upsertTransactionSQL = `
INSERT INTO transactions (
    seq, mtn, amount, sender_full_name, sender_age,
    beneficiary_full_name, beneficiary_age, issue_id, issue_solved, issue_message
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(seq) DO UPDATE SET
    mtn = excluded.mtn,
    amount = excluded.amount,
    sender_full_name = excluded.sender_full_name,
    sender_age = excluded.sender_age,
    beneficiary_full_name = excluded.beneficiary_full_name,
    beneficiary_age = excluded.beneficiary_age,
    issue_id = excluded.issue_id,
    issue_solved = excluded.issue_solved,
    issue_message = excluded.issue_message
`

const selectTransactionsSQL = `
SELECT mtn, amount, sender_full_name, sender_age,
       beneficiary_full_name, beneficiary_age, issue_id, issue_solved, issue_message
FROM transactions
ORDER BY seq ASC
`

const countTransactionsSQL = `SELECT COUNT(*) FROM transactions`
