package detect

import (
	"fmt"
	"testing"
	"time"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
	"github.com/stretchr/testify/require"
)

// S2 — fan-in smurfing: 10 senders each send 500 to R within 48h.
func TestSmurfingDetectsFanIn(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	var txs []domain.Transaction
	for i := 0; i < 10; i++ {
		sender := fmt.Sprintf("S%d", i+1)
		txs = append(txs, tx(fmt.Sprintf("T%d", i+1), sender, "R", 500, base.Add(time.Duration(i)*4*time.Hour)))
	}
	g := txgraph.Build(txs)

	rings := Smurfing(g)
	require.Len(t, rings, 1)
	require.Equal(t, domain.PatternFanIn72h, rings[0].PatternType)
	require.Len(t, rings[0].MemberAccounts, 11)
	require.True(t, g.Node("R").IsSuspicious)
	require.Contains(t, g.Node("R").DetectedPatterns, domain.PatternFanIn72h)
}

func TestSmurfingDetectsFanOut(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	var txs []domain.Transaction
	for i := 0; i < 10; i++ {
		receiver := fmt.Sprintf("R%d", i+1)
		txs = append(txs, tx(fmt.Sprintf("T%d", i+1), "H", receiver, 500, base.Add(time.Duration(i)*4*time.Hour)))
	}
	g := txgraph.Build(txs)

	rings := Smurfing(g)
	require.Len(t, rings, 1)
	require.Equal(t, domain.PatternFanOut72h, rings[0].PatternType)
}

func TestSmurfingRequiresWindowedDistinctCount(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	var txs []domain.Transaction
	// 10 distinct counterparties but spread across 18 days, never 10 inside any 72h
	// window.
	for i := 0; i < 10; i++ {
		sender := fmt.Sprintf("S%d", i+1)
		txs = append(txs, tx(fmt.Sprintf("T%d", i+1), sender, "R", 500, base.Add(time.Duration(i)*48*time.Hour)))
	}
	g := txgraph.Build(txs)
	require.Empty(t, Smurfing(g))
}

// S6 — legitimacy suppression: a central account with >100 incoming transactions from
// distinct senders is never flagged, regardless of window density.
func TestSmurfingLegitimacySuppression(t *testing.T) {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	var txs []domain.Transaction
	for i := 0; i < 101; i++ {
		sender := fmt.Sprintf("S%d", i+1)
		txs = append(txs, tx(fmt.Sprintf("T%d", i+1), sender, "H", 100, base.Add(time.Duration(i)*2*time.Hour)))
	}
	g := txgraph.Build(txs)

	rings := Smurfing(g)
	for _, r := range rings {
		require.NotContains(t, r.MemberAccounts, "H")
	}
	require.False(t, g.Node("H").IsSuspicious)
}
