package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/txfetch/internal/domain"
	"github.com/vanshika/txfetch/internal/graph"
)

// ErrInvalidSequence is returned when a transaction is saved with a negative position.
var ErrInvalidSequence = errors.New("transaction sequence must not be negative")

// Repository stores transactions in the graph as
// (:Client)-[:SENT]->(:Transaction)-[:RECEIVED_BY]->(:Client).
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// SaveTransaction upserts the transaction stored at position seq and relinks its clients.
func (r *Repository) SaveTransaction(ctx context.Context, seq int, tx domain.Transaction) error {
	if seq < 0 {
		return ErrInvalidSequence
	}

	params := map[string]any{
		"seq":                 int64(seq),
		"props":               transactionProperties(tx),
		"senderFullName":      tx.SenderFullName,
		"beneficiaryFullName": tx.BeneficiaryFullName,
	}

	if _, err := r.client.ExecuteWrite(ctx, saveTransactionCypher, params); err != nil {
		return fmt.Errorf("save transaction %d: %w", seq, err)
	}
	return nil
}

// LoadTransactions returns every stored transaction ordered by sequence position.
func (r *Repository) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	res, err := r.client.ExecuteRead(ctx, loadTransactionsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("load transactions query: %w", err)
	}

	txs := make([]domain.Transaction, 0, len(res.Records))
	for _, record := range res.Records {
		txs = append(txs, domain.Transaction{
			MTN:                 record.Int64("mtn"),
			Amount:              record.Float64("amount"),
			SenderFullName:      record.String("senderFullName"),
			SenderAge:           int(record.Int64("senderAge")),
			BeneficiaryFullName: record.String("beneficiaryFullName"),
			BeneficiaryAge:      int(record.Int64("beneficiaryAge")),
			IssueID:             int(record.Int64("issueId")),
			IssueSolved:         record.Bool("issueSolved"),
			IssueMessage:        record.String("issueMessage"),
		})
	}
	return txs, nil
}

// CountTransactions returns the number of stored transactions.
func (r *Repository) CountTransactions(ctx context.Context) (int64, error) {
	res, err := r.client.ExecuteRead(ctx, countTransactionsCypher, nil)
	if err != nil {
		return 0, fmt.Errorf("count transactions query: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	return res.Records[0].Int64("total"), nil
}

// Close releases the underlying graph client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close(ctx)
}

func transactionProperties(tx domain.Transaction) map[string]any {
	props := map[string]any{
		"mtn":            tx.MTN,
		"amount":         tx.Amount,
		"senderAge":      int64(tx.SenderAge),
		"beneficiaryAge": int64(tx.BeneficiaryAge),
		"issueSolved":    tx.IssueSolved,
		"issueId":        nil,
		"issueMessage":   nil,
	}
	if tx.HasIssue() {
		props["issueId"] = int64(tx.IssueID)
	}
	if tx.IssueMessage != "" {
		props["issueMessage"] = tx.IssueMessage
	}
	return props
}

const saveTransactionCypher = `
MERGE (t:Transaction {seq: $seq})
SET t += $props
WITH t
OPTIONAL MATCH (:Client)-[sent:SENT]->(t)
DELETE sent
WITH DISTINCT t
OPTIONAL MATCH (t)-[received:RECEIVED_BY]->(:Client)
DELETE received
WITH DISTINCT t
MERGE (sender:Client {fullName: $senderFullName})
MERGE (beneficiary:Client {fullName: $beneficiaryFullName})
MERGE (sender)-[:SENT]->(t)
MERGE (t)-[:RECEIVED_BY]->(beneficiary)
RETURN t.seq AS seq
`

const loadTransactionsCypher = `
MATCH (sender:Client)-[:SENT]->(t:Transaction)-[:RECEIVED_BY]->(beneficiary:Client)
RETURN t.seq AS seq,
       t.mtn AS mtn,
       t.amount AS amount,
       sender.fullName AS senderFullName,
       t.senderAge AS senderAge,
       beneficiary.fullName AS beneficiaryFullName,
       t.beneficiaryAge AS beneficiaryAge,
       t.issueId AS issueId,
       t.issueSolved AS issueSolved,
       t.issueMessage AS issueMessage
ORDER BY t.seq ASC
`

const countTransactionsCypher = `
MATCH (t:Transaction)
RETURN count(t) AS total
`
