package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/vanshika/txfetch/internal/domain"
	"github.com/vanshika/txfetch/internal/service"
)

// Querier is the read-only query surface the report is built from.
type Querier interface {
	TotalTransactionAmount() float64
	TotalTransactionAmountSentBy(senderFullName string) float64
	MaxTransactionAmount() (float64, error)
	CountUniqueClients() int
	HasOpenComplianceIssues(clientFullName string) bool
	TransactionsByBeneficiaryName() map[string]domain.Transaction
	UnsolvedIssueIDs() service.IssueIDSet
	AllSolvedIssueMessages() []string
	Top3TransactionsByAmount() []domain.Transaction
	TopSender() (string, bool)
}

// TransactionView is the serialised form of a transaction.
type TransactionView struct {
	MTN                 int64   `json:"mtn"`
	Amount              float64 `json:"amount"`
	SenderFullName      string  `json:"senderFullName"`
	BeneficiaryFullName string  `json:"beneficiaryFullName"`
	IssueID             *int    `json:"issueId"`
	IssueSolved         bool    `json:"issueSolved"`
	IssueMessage        string  `json:"issueMessage,omitempty"`
}

// ClientSummary holds the per-client figures requested by the caller.
type ClientSummary struct {
	Name                 string  `json:"name"`
	TotalSent            float64 `json:"totalSent"`
	OpenComplianceIssues bool    `json:"openComplianceIssues"`
}

// Report collects the result of every query.
type Report struct {
	TotalAmount         float64                    `json:"totalAmount"`
	MaxAmount           *float64                   `json:"maxAmount"`
	UniqueClients       int                        `json:"uniqueClients"`
	TopSender           *string                    `json:"topSender"`
	UnsolvedIssueIDs    []int                      `json:"unsolvedIssueIds"`
	SolvedIssueMessages []string                   `json:"solvedIssueMessages"`
	Top3ByAmount        []TransactionView          `json:"top3ByAmount"`
	ByBeneficiary       map[string]TransactionView `json:"byBeneficiary"`
	Clients             []ClientSummary            `json:"clients,omitempty"`
}

// Build runs every query concurrently; the querier must be safe for concurrent reads.
// An empty sequence leaves MaxAmount nil instead of failing; TopSender is nil
// when no sender has a positive total.
func Build(ctx context.Context, q Querier, clients []string) (Report, error) {
	var (
		rep Report
		mu  sync.Mutex
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total := q.TotalTransactionAmount()
		mu.Lock()
		defer mu.Unlock()
		rep.TotalAmount = total
		return nil
	})
	g.Go(func() error {
		maxAmount, err := q.MaxTransactionAmount()
		if errors.Is(err, service.ErrNoTransactions) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("max transaction amount: %w", err)
		}
		mu.Lock()
		defer mu.Unlock()
		rep.MaxAmount = &maxAmount
		return nil
	})
	g.Go(func() error {
		count := q.CountUniqueClients()
		sender, ok := q.TopSender()
		mu.Lock()
		defer mu.Unlock()
		rep.UniqueClients = count
		if ok {
			rep.TopSender = &sender
		}
		return nil
	})
	g.Go(func() error {
		ids := q.UnsolvedIssueIDs().Sorted()
		messages := q.AllSolvedIssueMessages()
		mu.Lock()
		defer mu.Unlock()
		rep.UnsolvedIssueIDs = ids
		rep.SolvedIssueMessages = messages
		return nil
	})
	g.Go(func() error {
		top := toViews(q.Top3TransactionsByAmount())
		byBeneficiary := make(map[string]TransactionView)
		for name, tx := range q.TransactionsByBeneficiaryName() {
			byBeneficiary[name] = toView(tx)
		}
		mu.Lock()
		defer mu.Unlock()
		rep.Top3ByAmount = top
		rep.ByBeneficiary = byBeneficiary
		return nil
	})
	g.Go(func() error {
		summaries := make([]ClientSummary, 0, len(clients))
		for _, name := range clients {
			if err := ctx.Err(); err != nil {
				return err
			}
			summaries = append(summaries, ClientSummary{
				Name:                 name,
				TotalSent:            q.TotalTransactionAmountSentBy(name),
				OpenComplianceIssues: q.HasOpenComplianceIssues(name),
			})
		}
		mu.Lock()
		defer mu.Unlock()
		if len(summaries) > 0 {
			rep.Clients = summaries
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return rep, nil
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteText renders the report as aligned plain text.
func WriteText(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Total amount:\t%.2f\n", rep.TotalAmount)
	if rep.MaxAmount != nil {
		fmt.Fprintf(tw, "Max amount:\t%.2f\n", *rep.MaxAmount)
	} else {
		fmt.Fprintf(tw, "Max amount:\t-\n")
	}
	fmt.Fprintf(tw, "Unique clients:\t%d\n", rep.UniqueClients)
	if rep.TopSender != nil {
		fmt.Fprintf(tw, "Top sender:\t%q\n", *rep.TopSender)
	} else {
		fmt.Fprintf(tw, "Top sender:\t-\n")
	}
	fmt.Fprintf(tw, "Unsolved issue ids:\t%v\n", rep.UnsolvedIssueIDs)

	fmt.Fprintf(tw, "\nSolved issue messages:\n")
	for _, msg := range rep.SolvedIssueMessages {
		fmt.Fprintf(tw, "  - %s\n", msg)
	}

	fmt.Fprintf(tw, "\nTop 3 by amount:\n")
	fmt.Fprintf(tw, "  MTN\tAMOUNT\tSENDER\tBENEFICIARY\n")
	for _, tx := range rep.Top3ByAmount {
		fmt.Fprintf(tw, "  %d\t%.2f\t%s\t%s\n", tx.MTN, tx.Amount, tx.SenderFullName, tx.BeneficiaryFullName)
	}

	fmt.Fprintf(tw, "\nLatest transaction by beneficiary:\n")
	names := make([]string, 0, len(rep.ByBeneficiary))
	for name := range rep.ByBeneficiary {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		tx := rep.ByBeneficiary[name]
		fmt.Fprintf(tw, "  %s\t%d\t%.2f\n", name, tx.MTN, tx.Amount)
	}

	if len(rep.Clients) > 0 {
		fmt.Fprintf(tw, "\nClients:\n")
		fmt.Fprintf(tw, "  NAME\tSENT\tOPEN ISSUES\n")
		for _, c := range rep.Clients {
			fmt.Fprintf(tw, "  %s\t%.2f\t%t\n", c.Name, c.TotalSent, c.OpenComplianceIssues)
		}
	}

	return tw.Flush()
}

func toViews(txs []domain.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, toView(tx))
	}
	return views
}

func toView(tx domain.Transaction) TransactionView {
	view := TransactionView{
		MTN:                 tx.MTN,
		Amount:              tx.Amount,
		SenderFullName:      tx.SenderFullName,
		BeneficiaryFullName: tx.BeneficiaryFullName,
		IssueSolved:         tx.IssueSolved,
		IssueMessage:        tx.IssueMessage,
	}
	if tx.HasIssue() {
		id := tx.IssueID
		view.IssueID = &id
	}
	return view
}
