package detect

import (
	"testing"
	"time"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
	"github.com/stretchr/testify/require"
)

func tx(id, from, to string, amount float64, ts time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: ts}
}

// S1 — three-node circular routing: A->B->C->A.
func TestCyclesDetectsLength3Ring(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		tx("T1", "A", "B", 1000, base),
		tx("T2", "B", "C", 1000, base.Add(time.Hour)),
		tx("T3", "C", "A", 1000, base.Add(2*time.Hour)),
	})

	rings := Cycles(g)
	require.Len(t, rings, 1)
	require.Equal(t, domain.PatternCycle3, rings[0].PatternType)
	require.ElementsMatch(t, []string{"A", "B", "C"}, rings[0].MemberAccounts)

	require.True(t, g.Node("A").IsSuspicious)
	require.True(t, g.Node("B").IsSuspicious)
	require.True(t, g.Node("C").IsSuspicious)
}

func TestCyclesIgnoresAcyclicGraph(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		tx("T1", "A", "B", 10, base),
		tx("T2", "B", "C", 10, base.Add(time.Hour)),
	})
	require.Empty(t, Cycles(g))
}

func TestCyclesSelfLoopNeverCounts(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		tx("T1", "A", "A", 10, base),
	})
	require.Empty(t, Cycles(g))
	require.False(t, g.Node("A").IsSuspicious)
}

func TestCyclesRejectsTwoCyclesBelowMinimumLength(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		tx("T1", "A", "B", 10, base),
		tx("T2", "B", "A", 10, base.Add(time.Hour)),
	})
	// A<->B forms two 2-cycles by direction, but cycles must be at least length 3, so
	// neither should be reported.
	require.Empty(t, Cycles(g))
}

// S4 — cycle subset elimination: both the triangle A->B->C->A and the 4-cycle
// A->B->C->D->A exist; only the 4-cycle survives because {A,B,C} is a strict subset
// of {A,B,C,D}.
func TestCyclesEliminatesStrictSubsetOfLargerCycle(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := txgraph.Build([]domain.Transaction{
		tx("T1", "A", "B", 10, base),
		tx("T2", "B", "C", 10, base.Add(time.Hour)),
		tx("T3", "C", "A", 10, base.Add(2*time.Hour)),
		tx("T4", "C", "D", 10, base.Add(3*time.Hour)),
		tx("T5", "D", "A", 10, base.Add(4*time.Hour)),
	})

	rings := Cycles(g)
	require.Len(t, rings, 1)
	require.Equal(t, domain.PatternCycle4, rings[0].PatternType)
	require.ElementsMatch(t, []string{"A", "B", "C", "D"}, rings[0].MemberAccounts)
}
