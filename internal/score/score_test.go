package score

import (
	"testing"
	"time"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
	"github.com/stretchr/testify/require"
)

func buildSuspiciousGraph() *txgraph.Graph {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		{ID: "T1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
		{ID: "T2", SenderID: "B", ReceiverID: "C", Amount: 10, Timestamp: base},
		{ID: "T3", SenderID: "C", ReceiverID: "A", Amount: 10, Timestamp: base},
	})
	for _, id := range []string{"A", "B", "C"} {
		g.Node(id).IsSuspicious = true
		g.Node(id).AddPattern(domain.PatternCycle3)
	}
	return g
}

// S1-style score check: base 20 + cycle3 bonus 20 = 40.0.
func TestAccountsScoresSingleCyclePattern(t *testing.T) {
	g := buildSuspiciousGraph()
	Accounts(g)
	require.Equal(t, 40.0, g.Node("A").SuspicionScore)
}

func TestAccountsNonSuspiciousScoreZero(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		{ID: "T1", SenderID: "A", ReceiverID: "B", Amount: 10, Timestamp: base},
	})
	Accounts(g)
	require.Equal(t, 0.0, g.Node("A").SuspicionScore)
}

func TestAccountsMultiRingBonus(t *testing.T) {
	g := buildSuspiciousGraph()
	g.Node("A").AddRingID("RING_001")
	g.Node("A").AddRingID("RING_002")
	Accounts(g)
	require.Equal(t, 50.0, g.Node("A").SuspicionScore)
}

func TestAccountsClampsAtOneHundred(t *testing.T) {
	g := buildSuspiciousGraph()
	for _, p := range []string{domain.PatternCycle3, domain.PatternCycle4, domain.PatternCycle5, domain.PatternFanIn72h, domain.PatternFanOut72h, domain.PatternShell} {
		g.Node("A").AddPattern(p)
	}
	g.Node("A").AddRingID("RING_001")
	g.Node("A").AddRingID("RING_002")
	Accounts(g)
	require.Equal(t, 100.0, g.Node("A").SuspicionScore)
}

func TestRingsRiskIsMeanOfMemberScores(t *testing.T) {
	g := buildSuspiciousGraph()
	Accounts(g)

	rings := []domain.Ring{{RingID: "RING_001", MemberAccounts: []string{"A", "B", "C"}}}
	Rings(g, rings)
	require.Equal(t, 40.0, rings[0].RiskScore)
}

func TestRingsZeroMembersScoresZero(t *testing.T) {
	rings := []domain.Ring{{RingID: "RING_001"}}
	Rings(nil, rings)
	require.Equal(t, 0.0, rings[0].RiskScore)
}
