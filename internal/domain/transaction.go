package domain

// Transaction models a single money transfer together with its compliance issue data.
type Transaction struct {
	MTN                 int64
	Amount              float64
	SenderFullName      string
	SenderAge           int
	BeneficiaryFullName string
	BeneficiaryAge      int
	IssueID             int
	IssueSolved         bool
	IssueMessage        string
}

// HasIssue reports whether a compliance issue id was recorded for the transaction.
func (t Transaction) HasIssue() bool {
	return t.IssueID != 0
}

// InvolvesClient reports whether the name matches the sender or beneficiary using match.
func (t Transaction) InvolvesClient(name string, match func(a, b string) bool) bool {
	return match(t.SenderFullName, name) || match(t.BeneficiaryFullName, name)
}
