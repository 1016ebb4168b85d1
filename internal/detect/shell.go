package detect

import (
	"math"
	"sort"
	"time"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
)

const (
	shellMinLength          = 3
	shellMaxLength          = 6
	shellIntermediateMinDeg = 2
	shellIntermediateMaxDeg = 3
	shellRapidForwardWindow = 72 * time.Hour
	shellRiskBase           = 55.0
	shellRiskPerMember      = 8.0
)

// ShellChains finds layered laundering chains: length 3-6, intermediate nodes
// shell-like (total degree in [2,3]), with at least one consecutive triple forwarding
// money within shellRapidForwardWindow. It mutates g in place and returns one Ring per
// surviving chain.
func ShellChains(g *txgraph.Graph) []domain.Ring {
	chains := enumerateChains(g)
	survivors := filterAndCanonicalizeChains(g, chains)

	rings := make([]domain.Ring, 0, len(survivors))
	for _, members := range survivors {
		ring := domain.Ring{
			MemberAccounts: members,
			PatternType:    domain.PatternShell,
			RiskScore:      math.Min(100, shellRiskBase+shellRiskPerMember*float64(len(members))),
		}
		rings = append(rings, ring)
		markMembers(g, members, domain.PatternShell)
	}
	return rings
}

// enumerateChains performs a bounded-depth DFS from every start node, producing all
// simple directed paths of length 3-6 nodes. The very first expansion from the start
// node is unconditional; every subsequent expansion is allowed only through a candidate
// whose total degree is <= 3 (the [2,3] floor is re-checked per intermediate in the
// separate verification pass below).
func enumerateChains(g *txgraph.Graph) [][]string {
	var found [][]string
	for _, start := range g.NodeOrder() {
		stack := []pathCandidate{{
			path: []string{start},
			set:  map[string]struct{}{start: {}},
		}}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if len(cur.path) >= shellMinLength {
				found = append(found, append([]string(nil), cur.path...))
			}
			if len(cur.path) >= shellMaxLength {
				continue
			}

			tail := cur.path[len(cur.path)-1]
			isFirstExpansion := len(cur.path) == 1
			for _, next := range sortedSuccessors(g, tail) {
				if _, onPath := cur.set[next]; onPath {
					continue
				}
				if !isFirstExpansion && g.Node(next).TotalDegree() > shellIntermediateMaxDeg {
					continue
				}
				nextSet := make(map[string]struct{}, len(cur.set)+1)
				for k := range cur.set {
					nextSet[k] = struct{}{}
				}
				nextSet[next] = struct{}{}
				stack = append(stack, pathCandidate{
					path: append(append([]string(nil), cur.path...), next),
					set:  nextSet,
				})
			}
		}
	}
	return found
}

// filterAndCanonicalizeChains verifies intermediate degree, verifies rapid forwarding,
// then canonicalizes by sorted member set, keeping first occurrence. The chain's own
// node order (not the sorted member order) is what rapid-forwarding checks walk, since
// it is the order money actually moved through the chain.
func filterAndCanonicalizeChains(g *txgraph.Graph, chains [][]string) [][]string {
	seen := make(map[string]bool)
	var out [][]string
	for _, chain := range chains {
		if !intermediatesAreShellLike(g, chain) {
			continue
		}
		if !rapidForwardExists(g, chain) {
			continue
		}

		members := append([]string(nil), chain...)
		sort.Strings(members)
		key := domain.Ring{MemberAccounts: members}.CanonicalKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, members)
	}
	return out
}

func intermediatesAreShellLike(g *txgraph.Graph, chain []string) bool {
	for i := 1; i < len(chain)-1; i++ {
		deg := g.Node(chain[i]).TotalDegree()
		if deg < shellIntermediateMinDeg || deg > shellIntermediateMaxDeg {
			return false
		}
	}
	return true
}

// rapidForwardExists reports whether at least one consecutive triple (u,v,w) in chain
// forwards money quickly: earliest(v->w) - latest(u->v) < shellRapidForwardWindow.
// Negative differences (the outbound leg observed before the inbound one) also count,
// since out-of-order timestamps on the same pass-through still indicate rapid layering.
func rapidForwardExists(g *txgraph.Graph, chain []string) bool {
	for i := 0; i+2 < len(chain); i++ {
		u, v, w := chain[i], chain[i+1], chain[i+2]
		uv := g.Edge(u, v)
		vw := g.Edge(v, w)
		if uv == nil || vw == nil || len(uv.Transactions) == 0 || len(vw.Transactions) == 0 {
			continue
		}
		latestUV := latestTimestamp(uv.Transactions)
		earliestVW := earliestTimestamp(vw.Transactions)
		if earliestVW.Sub(latestUV) < shellRapidForwardWindow {
			return true
		}
	}
	return false
}

func latestTimestamp(txs []domain.Transaction) time.Time {
	latest := txs[0].Timestamp
	for _, tx := range txs[1:] {
		if tx.Timestamp.After(latest) {
			latest = tx.Timestamp
		}
	}
	return latest
}

func earliestTimestamp(txs []domain.Transaction) time.Time {
	earliest := txs[0].Timestamp
	for _, tx := range txs[1:] {
		if tx.Timestamp.Before(earliest) {
			earliest = tx.Timestamp
		}
	}
	return earliest
}
