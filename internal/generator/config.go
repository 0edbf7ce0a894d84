package generator

// Config drives the synthetic data generator.
type Config struct {
	NumTransactions int
	NumClients      int
	IssueChance     float64
	SolvedChance    float64
	RepeatMTNChance float64
	Seed            int64
}

// DefaultConfig returns baseline settings for a mid-sized dataset.
func DefaultConfig() Config {
	return Config{
		NumTransactions: 1000,
		NumClients:      40,
		IssueChance:     0.6,
		SolvedChance:    0.5,
		RepeatMTNChance: 0.05,
		Seed:            42,
	}
}
