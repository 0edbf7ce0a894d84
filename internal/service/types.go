package service

import (
	"github.com/vanshika/txfetch/internal/domain"
)

// TransactionInput is the inbound payload of a transaction record as found in dataset files.
// Issue fields are nullable in the source data.
type TransactionInput struct {
	MTN                 int64   `json:"mtn"`
	Amount              float64 `json:"amount"`
	SenderFullName      string  `json:"senderFullName"`
	SenderAge           int     `json:"senderAge"`
	BeneficiaryFullName string  `json:"beneficiaryFullName"`
	BeneficiaryAge      int     `json:"beneficiaryAge"`
	IssueID             *int    `json:"issueId"`
	IssueSolved         bool    `json:"issueSolved"`
	IssueMessage        *string `json:"issueMessage"`
}

// ToDomain converts the payload to a domain.Transaction, mapping absent issue
// fields to their zero values. Names are kept byte-for-byte.
func (in TransactionInput) ToDomain() domain.Transaction {
	tx := domain.Transaction{
		MTN:                 in.MTN,
		Amount:              in.Amount,
		SenderFullName:      in.SenderFullName,
		SenderAge:           in.SenderAge,
		BeneficiaryFullName: in.BeneficiaryFullName,
		BeneficiaryAge:      in.BeneficiaryAge,
		IssueSolved:         in.IssueSolved,
	}
	if in.IssueID != nil {
		tx.IssueID = *in.IssueID
	}
	if in.IssueMessage != nil {
		tx.IssueMessage = *in.IssueMessage
	}
	return tx
}

// FromDomain builds the payload representation of tx. Zero issue fields become null.
func FromDomain(tx domain.Transaction) TransactionInput {
	in := TransactionInput{
		MTN:                 tx.MTN,
		Amount:              tx.Amount,
		SenderFullName:      tx.SenderFullName,
		SenderAge:           tx.SenderAge,
		BeneficiaryFullName: tx.BeneficiaryFullName,
		BeneficiaryAge:      tx.BeneficiaryAge,
		IssueSolved:         tx.IssueSolved,
	}
	if tx.HasIssue() {
		id := tx.IssueID
		in.IssueID = &id
	}
	if tx.IssueMessage != "" {
		msg := tx.IssueMessage
		in.IssueMessage = &msg
	}
	return in
}

// ToDomainTransactions converts a batch of payloads preserving order.
func ToDomainTransactions(inputs []TransactionInput) []domain.Transaction {
	txs := make([]domain.Transaction, 0, len(inputs))
	for _, in := range inputs {
		txs = append(txs, in.ToDomain())
	}
	return txs
}
