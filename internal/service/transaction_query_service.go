package service

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/vanshika/txfetch/internal/domain"
)

// ErrNoTransactions is returned by operations that need at least one transaction.
var ErrNoTransactions = errors.New("transaction list is empty")

// IssueIDSet is an unordered set of compliance issue identifiers.
type IssueIDSet map[int]struct{}

// Contains reports whether id is part of the set.
func (s IssueIDSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the identifiers in ascending order.
func (s IssueIDSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TransactionQueryService answers read-only aggregate queries over a fixed transaction sequence.
type TransactionQueryService struct {
	transactions []domain.Transaction
}

// NewTransactionQueryService constructs a query service over a copy of txs.
func NewTransactionQueryService(txs []domain.Transaction) *TransactionQueryService {
	return &TransactionQueryService{transactions: slices.Clone(txs)}
}

// Len returns the number of transactions held by the service.
func (s *TransactionQueryService) Len() int {
	return len(s.transactions)
}

// Transactions returns a copy of the underlying sequence.
func (s *TransactionQueryService) Transactions() []domain.Transaction {
	return slices.Clone(s.transactions)
}

// TotalTransactionAmount returns the sum of the amounts of all transactions.
func (s *TransactionQueryService) TotalTransactionAmount() float64 {
	total := 0.0
	for _, tx := range s.transactions {
		total += tx.Amount
	}
	return total
}

// TotalTransactionAmountSentBy returns the sum of the amounts sent by senderFullName.
// The name must match exactly, including case.
func (s *TransactionQueryService) TotalTransactionAmountSentBy(senderFullName string) float64 {
	total := 0.0
	for _, tx := range s.transactions {
		if tx.SenderFullName == senderFullName {
			total += tx.Amount
		}
	}
	return total
}

// MaxTransactionAmount returns the highest transaction amount.
//
// The running maximum starts at zero, so a sequence without positive amounts
// yields 0. An empty sequence yields ErrNoTransactions.
func (s *TransactionQueryService) MaxTransactionAmount() (float64, error) {
	if len(s.transactions) == 0 {
		return 0, ErrNoTransactions
	}
	maxAmount := 0.0
	for _, tx := range s.transactions {
		if tx.Amount > maxAmount {
			maxAmount = tx.Amount
		}
	}
	return maxAmount, nil
}

// CountUniqueClients counts the distinct names that sent or received a transaction.
func (s *TransactionQueryService) CountUniqueClients() int {
	clients := make(map[string]struct{}, len(s.transactions)*2)
	for _, tx := range s.transactions {
		clients[tx.SenderFullName] = struct{}{}
		clients[tx.BeneficiaryFullName] = struct{}{}
	}
	return len(clients)
}

// HasOpenComplianceIssues reports whether the client, as sender or beneficiary,
// has at least one transaction whose issue is not solved. Names are compared
// case-insensitively.
func (s *TransactionQueryService) HasOpenComplianceIssues(clientFullName string) bool {
	for _, tx := range s.transactions {
		if !tx.InvolvesClient(clientFullName, strings.EqualFold) {
			continue
		}
		if !tx.IssueSolved {
			return true
		}
	}
	return false
}

// TransactionsByBeneficiaryName indexes transactions by beneficiary name.
// When a beneficiary appears more than once the latest transaction wins.
func (s *TransactionQueryService) TransactionsByBeneficiaryName() map[string]domain.Transaction {
	byBeneficiary := make(map[string]domain.Transaction)
	for _, tx := range s.transactions {
		byBeneficiary[tx.BeneficiaryFullName] = tx
	}
	return byBeneficiary
}

// UnsolvedIssueIDs returns the identifiers of all open compliance issues.
func (s *TransactionQueryService) UnsolvedIssueIDs() IssueIDSet {
	ids := make(IssueIDSet)
	for _, tx := range s.transactions {
		if !tx.IssueSolved {
			ids[tx.IssueID] = struct{}{}
		}
	}
	return ids
}

// AllSolvedIssueMessages returns the messages of solved issues in sequence order,
// duplicates included.
func (s *TransactionQueryService) AllSolvedIssueMessages() []string {
	messages := []string{}
	for _, tx := range s.transactions {
		if tx.IssueSolved {
			messages = append(messages, tx.IssueMessage)
		}
	}
	return messages
}

// Top3TransactionsByAmount returns the three transactions with the highest amount.
func (s *TransactionQueryService) Top3TransactionsByAmount() []domain.Transaction {
	return s.TopTransactionsByAmount(3)
}

// TopTransactionsByAmount returns up to n transactions sorted by amount descending.
// Equal amounts keep their sequence order.
func (s *TransactionQueryService) TopTransactionsByAmount(n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}
	sorted := slices.Clone(s.transactions)
	slices.SortStableFunc(sorted, func(a, b domain.Transaction) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return slices.Clip(sorted)
}

// TopSender returns the sender with the greatest total sent amount.
//
// Totals must be strictly greater than zero to win; ok is false when no sender
// qualifies. Ties go to the sender that appears first in the sequence.
func (s *TransactionQueryService) TopSender() (string, bool) {
	totals := make(map[string]float64)
	var order []string
	for _, tx := range s.transactions {
		if _, seen := totals[tx.SenderFullName]; !seen {
			order = append(order, tx.SenderFullName)
		}
		totals[tx.SenderFullName] += tx.Amount
	}

	topSender := ""
	found := false
	maxTotal := 0.0
	for _, sender := range order {
		if totals[sender] > maxTotal {
			topSender = sender
			maxTotal = totals[sender]
			found = true
		}
	}
	return topSender, found
}
