// Package score implements the per-account suspicion score and per-ring risk score
// formulas.
package score

import (
	"math"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
)

const (
	suspicionBase = 20.0

	multiRingBonus = 10.0
)

var patternBonus = map[string]float64{
	domain.PatternCycle3:    20,
	domain.PatternCycle4:    30,
	domain.PatternCycle5:    40,
	domain.PatternFanIn72h:  35,
	domain.PatternFanOut72h: 35,
	domain.PatternShell:     25,
}

// Accounts computes and assigns SuspicionScore on every node in g. Non-suspicious
// nodes score 0; suspicious nodes start at 20, add a per-unique-pattern bonus, add 10 if
// they belong to more than one merged ring, then clamp to [0,100] and round to one
// decimal (round half away from zero).
func Accounts(g *txgraph.Graph) {
	for _, node := range g.Nodes() {
		if !node.IsSuspicious {
			node.SuspicionScore = 0
			continue
		}

		total := suspicionBase
		for _, pattern := range node.DedupedPatterns() {
			total += patternBonus[pattern]
		}
		if len(node.RingIDs) > 1 {
			total += multiRingBonus
		}
		node.SuspicionScore = roundOneDecimal(clamp(total, 0, 100))
	}
}

// Rings computes each ring's RiskScore as the arithmetic mean of its member accounts'
// suspicion scores, rounded to one decimal. A ring with zero members scores 0.
func Rings(g *txgraph.Graph, rings []domain.Ring) {
	for i := range rings {
		members := rings[i].MemberAccounts
		if len(members) == 0 {
			rings[i].RiskScore = 0
			continue
		}
		sum := 0.0
		for _, id := range members {
			sum += g.Node(id).SuspicionScore
		}
		rings[i].RiskScore = roundOneDecimal(sum / float64(len(members)))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundOneDecimal rounds half away from zero to one fractional digit.
func roundOneDecimal(v float64) float64 {
	scaled := v * 10
	if scaled >= 0 {
		scaled = math.Floor(scaled + 0.5)
	} else {
		scaled = math.Ceil(scaled - 0.5)
	}
	return scaled / 10
}
