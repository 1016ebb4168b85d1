// Package detect implements the three pattern detectors: circular routing (simple
// cycles of length 3-5), temporal smurfing (fan-in/fan-out), and shell chains
// (layered low-degree pass-throughs). Each detector is a pure function of a built
// txgraph.Graph: it reads adjacency/transactions and writes only the mutable analysis
// fields on the Account values the graph already owns (suspicious flag, pattern tags).
// Ring ids are assigned later, by the merger.
package detect

import (
	"sort"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
)

// maxCycleLength is the maximum number of nodes on a reported cycle; reported cycles
// range from 3 to maxCycleLength nodes.
const maxCycleLength = 5

// Cycles enumerates simple directed cycles of length 3-5 in g, canonicalizes them,
// discards subsets, and returns one candidate Ring per survivor. It marks each cycle's
// members suspicious and appends the corresponding pattern tag.
func Cycles(g *txgraph.Graph) []domain.Ring {
	candidates := enumerate(g)
	deduped := dedupeByCanonicalKey(candidates)
	survivors := eliminateSubsets(deduped)

	rings := make([]domain.Ring, 0, len(survivors))
	for _, members := range survivors {
		pattern := cyclePattern(len(members))
		ring := domain.Ring{
			MemberAccounts: members,
			PatternType:    pattern,
			RiskScore:      cycleRiskScore(len(members)),
		}
		rings = append(rings, ring)
		markMembers(g, members, pattern)
	}
	return rings
}

func cyclePattern(length int) string {
	switch length {
	case 3:
		return domain.PatternCycle3
	case 4:
		return domain.PatternCycle4
	case 5:
		return domain.PatternCycle5
	default:
		return domain.PatternCycle5
	}
}

// cycleRiskScore is a provisional score, used only by the merger's stage-4 "max of
// constituents" tie-break; the scoring engine overwrites every ring's final risk_score
// from member suspicion scores once merging completes.
func cycleRiskScore(length int) float64 {
	switch length {
	case 3:
		return 40
	case 4:
		return 50
	default:
		return 60
	}
}

func markMembers(g *txgraph.Graph, members []string, pattern string) {
	for _, id := range members {
		node := g.Node(id)
		node.IsSuspicious = true
		node.AddPattern(pattern)
	}
}

// pathCandidate is an in-progress DFS path, represented as account ids in traversal
// order plus a set for O(1) on-path membership tests.
type pathCandidate struct {
	path []string
	set  map[string]struct{}
}

// enumerate performs a bounded-depth DFS from every node: at each step, expand only
// through successors not already on the current path; report a cycle whenever a
// successor closes the loop back to the start with path length >= 3.
func enumerate(g *txgraph.Graph) [][]string {
	var found [][]string
	for _, start := range g.NodeOrder() {
		stack := []pathCandidate{{
			path: []string{start},
			set:  map[string]struct{}{start: {}},
		}}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			tail := cur.path[len(cur.path)-1]
			for _, next := range sortedSuccessors(g, tail) {
				if next == start {
					if len(cur.path) >= 3 {
						cycle := append([]string(nil), cur.path...)
						found = append(found, cycle)
					}
					continue
				}
				if _, onPath := cur.set[next]; onPath {
					continue
				}
				if len(cur.path) >= maxCycleLength {
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

func sortedSuccessors(g *txgraph.Graph, id string) []string {
	succ := g.Successors(id)
	sort.Strings(succ)
	return succ
}

// dedupeByCanonicalKey collapses cycles sharing a member set (rotations and direction
// reversals collapse to the same sorted-member key); first occurrence wins.
func dedupeByCanonicalKey(cycles [][]string) [][]string {
	seen := make(map[string]bool)
	var out [][]string
	for _, cycle := range cycles {
		members := append([]string(nil), cycle...)
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

// eliminateSubsets discards any candidate whose member set is a strict subset of
// another candidate's member set. Candidates of equal size never subset one another, so
// both survive.
func eliminateSubsets(candidates [][]string) [][]string {
	sets := make([]map[string]struct{}, len(candidates))
	for i, c := range candidates {
		sets[i] = domain.MemberSet(c)
	}

	var out [][]string
	for i := range candidates {
		subsumed := false
		for j := range candidates {
			if i == j {
				continue
			}
			if domain.IsStrictSubset(sets[i], sets[j]) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, candidates[i])
		}
	}
	return out
}
