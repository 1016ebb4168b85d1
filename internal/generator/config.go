package generator

// Config drives the synthetic transaction-stream generator.
type Config struct {
	NumAccounts        int
	NumBackgroundTxs   int
	NumCycleRings      int
	NumSmurfRings      int
	NumShellChains     int
	BaseTimestampEpoch int64 // unix seconds; transactions are spread forward from here
	Seed               int64
}

// DefaultConfig returns baseline settings that exercise all three detectors.
func DefaultConfig() Config {
	return Config{
		NumAccounts:      200,
		NumBackgroundTxs: 2000,
		NumCycleRings:    5,
		NumSmurfRings:    3,
		NumShellChains:   4,
		Seed:             42,
	}
}
