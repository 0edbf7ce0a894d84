package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vanshika/txfetch/internal/service"
)

// Dataset contains the generated transactions.
type Dataset struct {
	Transactions []service.TransactionInput
}

type client struct {
	fullName string
	age      int
}

// Generator produces synthetic transaction sequences with compliance issues.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumTransactions <= 0 {
		cfg.NumTransactions = DefaultConfig().NumTransactions
	}
	if cfg.NumClients < 2 {
		cfg.NumClients = DefaultConfig().NumClients
	}
	if cfg.IssueChance < 0 {
		cfg.IssueChance = DefaultConfig().IssueChance
	}
	if cfg.SolvedChance < 0 {
		cfg.SolvedChance = DefaultConfig().SolvedChance
	}
	if cfg.RepeatMTNChance < 0 {
		cfg.RepeatMTNChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

// Generate synthesises the transaction sequence. It respects context cancellation.
// Issue identifiers are assigned sequentially from 1; transactions without an
// issue carry null issue fields and count as solved.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	clients, err := g.clients(ctx)
	if err != nil {
		return Dataset{}, err
	}

	transactions := make([]service.TransactionInput, g.cfg.NumTransactions)
	nextIssueID := 1
	var mtns []int64

	for i := 0; i < g.cfg.NumTransactions; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		senderIdx := g.rand.Intn(len(clients))
		beneficiaryIdx := g.rand.Intn(len(clients))
		if senderIdx == beneficiaryIdx {
			beneficiaryIdx = (beneficiaryIdx + 1) % len(clients)
		}
		sender := clients[senderIdx]
		beneficiary := clients[beneficiaryIdx]

		tx := service.TransactionInput{
			MTN:                 g.nextMTN(&mtns),
			Amount:              g.randomAmount(),
			SenderFullName:      sender.fullName,
			SenderAge:           sender.age,
			BeneficiaryFullName: beneficiary.fullName,
			BeneficiaryAge:      beneficiary.age,
			IssueSolved:         true,
		}

		if g.rand.Float64() < g.cfg.IssueChance {
			id := nextIssueID
			nextIssueID++
			tx.IssueID = &id
			tx.IssueSolved = g.rand.Float64() < g.cfg.SolvedChance
			msg := g.randomIssueMessage(tx.IssueSolved)
			tx.IssueMessage = &msg
		}

		transactions[i] = tx
	}

	return Dataset{Transactions: transactions}, nil
}

func (g *Generator) clients(ctx context.Context) ([]client, error) {
	clients := make([]client, 0, g.cfg.NumClients)
	seen := make(map[string]struct{}, g.cfg.NumClients)
	for len(clients) < g.cfg.NumClients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := g.randomFullName()
		if _, dup := seen[name]; dup {
			name = fmt.Sprintf("%s %d", name, len(clients)+1)
		}
		seen[name] = struct{}{}
		clients = append(clients, client{fullName: name, age: 18 + g.rand.Intn(70)})
	}
	return clients, nil
}

// nextMTN returns a fresh transaction number, occasionally reusing an earlier one.
func (g *Generator) nextMTN(pool *[]int64) int64 {
	if len(*pool) > 0 && g.rand.Float64() < g.cfg.RepeatMTNChance {
		return (*pool)[g.rand.Intn(len(*pool))]
	}
	mtn := int64(100000 + g.rand.Intn(99900000))
	*pool = append(*pool, mtn)
	return mtn
}

func (g *Generator) randomAmount() float64 {
	amount := g.rand.Float64()*4990 + 10
	return math.Round(amount*100) / 100
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))],
		g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))])
}

func (g *Generator) randomIssueMessage(solved bool) string {
	if solved {
		return g.nameFragments.solvedMessages[g.rand.Intn(len(g.nameFragments.solvedMessages))]
	}
	return g.nameFragments.openMessages[g.rand.Intn(len(g.nameFragments.openMessages))]
}

type nameFragments struct {
	first          []string
	last           []string
	openMessages   []string
	solvedMessages []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first: []string{"Tom", "Arthur", "John", "Ada", "Polly", "Grace", "Michael", "Alfie", "Aberama", "Lizzie", "Esme", "Billy", "May", "Ruben", "Linda"},
		last:  []string{"Shelby", "Solomons", "Gold", "Gray", "Burgess", "Kimber", "Stark", "Carleton", "Oliver", "Thorne", "Changretta", "Mosley"},
		openMessages: []string{
			"Looks like money laundering",
			"Something's fishy",
			"Beneficiary on watch list",
			"Unusual transfer pattern",
			"Source of funds unverified",
		},
		solvedMessages: []string{
			"Never gonna give you up",
			"Never gonna let you down",
			"Documents provided",
			"False positive",
			"Cleared by compliance",
		},
	}
}
