package merge

import (
	"testing"
	"time"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
	"github.com/stretchr/testify/require"
)

func buildGraphWithMembers(members ...string) *txgraph.Graph {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var txs []domain.Transaction
	for i := 0; i < len(members); i++ {
		txs = append(txs, domain.Transaction{
			ID:         "T",
			SenderID:   members[i],
			ReceiverID: members[(i+1)%len(members)],
			Amount:     10,
			Timestamp:  base,
		})
	}
	g := txgraph.Build(txs)
	for _, m := range members {
		g.Node(m).IsSuspicious = true
	}
	return g
}

func TestMergeEliminatesStrictSubset(t *testing.T) {
	g := buildGraphWithMembers("A", "B", "C", "D", "E")
	small := domain.Ring{MemberAccounts: []string{"A", "B", "C"}, PatternType: domain.PatternShell, RiskScore: 50}
	large := domain.Ring{MemberAccounts: []string{"A", "B", "C", "D", "E"}, PatternType: domain.PatternShell, RiskScore: 70}

	merged := Merge(g, nil, nil, []domain.Ring{small, large})
	require.Len(t, merged, 1)
	require.ElementsMatch(t, []string{"A", "B", "C", "D", "E"}, merged[0].MemberAccounts)
	require.Equal(t, "RING_001", merged[0].RingID)
}

func TestMergeDedupesExactCanonicalKeyByMostSevere(t *testing.T) {
	g := buildGraphWithMembers("A", "B", "C")
	weak := domain.Ring{MemberAccounts: []string{"A", "B", "C"}, PatternType: domain.PatternCycle3, RiskScore: 40}
	strong := domain.Ring{MemberAccounts: []string{"A", "B", "C"}, PatternType: domain.PatternShell, RiskScore: 60}

	merged := Merge(g, []domain.Ring{weak}, nil, []domain.Ring{strong})
	require.Len(t, merged, 1)
	require.Equal(t, domain.PatternShell, merged[0].PatternType)
}

func TestMergeUnionsOverlappingRingsAboveThreshold(t *testing.T) {
	g := buildGraphWithMembers("A", "B", "C", "D", "E", "F")
	// Neither set is a subset of the other, but the intersection {C,D,E} is 3/4 of
	// ringB, clearing the 0.70 threshold on that side.
	ringA := domain.Ring{MemberAccounts: []string{"A", "B", "C", "D", "E"}, PatternType: domain.PatternCycle3, RiskScore: 40}
	ringB := domain.Ring{MemberAccounts: []string{"C", "D", "E", "F"}, PatternType: domain.PatternCycle3, RiskScore: 40}

	merged := Merge(g, []domain.Ring{ringA, ringB}, nil, nil)
	require.Len(t, merged, 1)
	require.ElementsMatch(t, []string{"A", "B", "C", "D", "E", "F"}, merged[0].MemberAccounts)
}

func TestMergeKeepsDisjointRingsSeparate(t *testing.T) {
	g := buildGraphWithMembers("A", "B", "C", "D", "E", "F")
	ringA := domain.Ring{MemberAccounts: []string{"A", "B", "C"}, PatternType: domain.PatternCycle3, RiskScore: 40}
	ringB := domain.Ring{MemberAccounts: []string{"D", "E", "F"}, PatternType: domain.PatternCycle3, RiskScore: 40}

	merged := Merge(g, []domain.Ring{ringA, ringB}, nil, nil)
	require.Len(t, merged, 2)
	require.Equal(t, "RING_001", merged[0].RingID)
	require.Equal(t, "RING_002", merged[1].RingID)
}

func TestMergeRepopulatesNodeRingIDs(t *testing.T) {
	g := buildGraphWithMembers("A", "B", "C")
	ring := domain.Ring{MemberAccounts: []string{"A", "B", "C"}, PatternType: domain.PatternCycle3, RiskScore: 40}

	Merge(g, []domain.Ring{ring}, nil, nil)
	require.Equal(t, []string{"RING_001"}, g.Node("A").RingIDs)
}

func TestMergeEmptyInputsProduceNoRings(t *testing.T) {
	g := buildGraphWithMembers("A", "B")
	require.Empty(t, Merge(g, nil, nil, nil))
}
