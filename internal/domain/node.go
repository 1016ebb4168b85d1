package domain

// Account is a graph node: one per distinct account id observed in the input.
//
// Topology fields (InDegree, OutDegree, TotalIn, TotalOut, Transactions) are set once
// during graph construction and never change afterward. The remaining fields are mutable
// analysis state written by the detectors, the merger, and the scoring engine.
type Account struct {
	ID string

	InDegree  int
	OutDegree int
	TotalIn   float64
	TotalOut  float64

	// Transactions is insertion-ordered: every transaction where this account is the
	// sender or the receiver, in the order it was observed in the input stream.
	Transactions []Transaction

	IsSuspicious     bool
	SuspicionScore   float64
	DetectedPatterns []string
	RingIDs          []string
}

// TotalDegree returns in-degree plus out-degree, counting transactions, not distinct
// counterparties.
func (a *Account) TotalDegree() int {
	return a.InDegree + a.OutDegree
}

// AddPattern appends a pattern tag. Duplicates are permitted here since a node can
// acquire the same pattern from more than one detector; they are deduplicated only at
// report-serialization time, preserving first-seen order.
func (a *Account) AddPattern(pattern string) {
	a.DetectedPatterns = append(a.DetectedPatterns, pattern)
}

// AddRingID records ring membership, skipping duplicates.
func (a *Account) AddRingID(ringID string) {
	for _, id := range a.RingIDs {
		if id == ringID {
			return
		}
	}
	a.RingIDs = append(a.RingIDs, ringID)
}

// DedupedPatterns returns DetectedPatterns with duplicates removed, first occurrence
// order preserved.
func (a *Account) DedupedPatterns() []string {
	if len(a.DetectedPatterns) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a.DetectedPatterns))
	out := make([]string, 0, len(a.DetectedPatterns))
	for _, p := range a.DetectedPatterns {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
