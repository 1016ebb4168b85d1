package detect

import (
	"math"
	"sort"
	"time"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
)

const (
	smurfWindow             = 72 * time.Hour
	smurfDistinctThreshold  = 10
	legitimacyDegreeCutoff  = 100
	smurfRiskBase           = 60.0
	smurfRiskPerCounterpart = 2.0
)

type direction int

const (
	incoming direction = iota
	outgoing
)

// timedCounterparty pairs a counterparty account id with the timestamp of one
// transaction between it and the account under analysis.
type timedCounterparty struct {
	counterparty string
	timestamp    time.Time
}

// Smurfing identifies aggregator accounts exhibiting high distinct-counterparty fan-in
// or fan-out within a rolling 72h window. It mutates g in place (marking members
// suspicious, appending pattern tags) and returns one Ring per triggering
// aggregator/direction pair.
func Smurfing(g *txgraph.Graph) []domain.Ring {
	var rings []domain.Ring
	for _, id := range g.NodeOrder() {
		node := g.Node(id)
		if node.TotalDegree() > legitimacyDegreeCutoff {
			continue
		}

		if ring, ok := detectDirection(g, node, incoming); ok {
			rings = append(rings, ring)
			markMembers(g, ring.MemberAccounts, ring.PatternType)
		}
		if ring, ok := detectDirection(g, node, outgoing); ok {
			rings = append(rings, ring)
			markMembers(g, ring.MemberAccounts, ring.PatternType)
		}
	}
	return rings
}

func detectDirection(g *txgraph.Graph, node *domain.Account, dir direction) (domain.Ring, bool) {
	var counterparties []string
	if dir == incoming {
		counterparties = g.Predecessors(node.ID)
	} else {
		counterparties = g.Successors(node.ID)
	}
	if len(counterparties) < smurfDistinctThreshold {
		return domain.Ring{}, false
	}

	events := collectEvents(g, node.ID, counterparties, dir)
	if len(events) == 0 {
		return domain.Ring{}, false
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].timestamp.Before(events[j].timestamp)
	})

	maxWindow := slidingMaxDistinct(events)
	if len(maxWindow) < smurfDistinctThreshold {
		return domain.Ring{}, false
	}

	members := append([]string{node.ID}, domain.SortedUniqueMembers(setFromSlice(maxWindow))...)
	sort.Strings(members)

	pattern := domain.PatternFanIn72h
	if dir == outgoing {
		pattern = domain.PatternFanOut72h
	}
	risk := math.Min(100, smurfRiskBase+smurfRiskPerCounterpart*float64(len(maxWindow)))

	return domain.Ring{
		MemberAccounts: members,
		PatternType:    pattern,
		RiskScore:      risk,
	}, true
}

func collectEvents(g *txgraph.Graph, center string, counterparties []string, dir direction) []timedCounterparty {
	var events []timedCounterparty
	for _, cp := range counterparties {
		var edge *domain.Edge
		if dir == incoming {
			edge = g.Edge(cp, center)
		} else {
			edge = g.Edge(center, cp)
		}
		if edge == nil {
			continue
		}
		for _, tx := range edge.Transactions {
			events = append(events, timedCounterparty{counterparty: cp, timestamp: tx.Timestamp})
		}
	}
	return events
}

// slidingMaxDistinct runs a two-pointer window scan: advance end; while the window
// exceeds smurfWindow, advance start; track the largest set of distinct counterparties
// observed at any window position.
func slidingMaxDistinct(events []timedCounterparty) []string {
	start := 0
	var best []string
	bestSize := 0

	counts := make(map[string]int)
	for end := 0; end < len(events); end++ {
		counts[events[end].counterparty]++

		for events[end].timestamp.Sub(events[start].timestamp) > smurfWindow {
			c := events[start].counterparty
			counts[c]--
			if counts[c] == 0 {
				delete(counts, c)
			}
			start++
		}

		if len(counts) > bestSize {
			bestSize = len(counts)
			best = make([]string, 0, len(counts))
			for c := range counts {
				best = append(best, c)
			}
		}
	}
	return best
}

func setFromSlice(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, i := range items {
		set[i] = struct{}{}
	}
	return set
}
