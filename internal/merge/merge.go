// Package merge implements the ring merger: exact canonical dedup preferring the most
// severe pattern, strict-subset elimination, and a union-find overlap union with a 70%
// threshold, emitting dense RING_NNN ids in group-emission order.
package merge

import (
	"fmt"

	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/txgraph"
)

const overlapThreshold = 0.70

// Merge runs all four merger stages over the concatenation of cycle, smurfing, and
// shell rings (order matters only for deterministic tie-breaks), assigns final ring
// ids, and repopulates every node's RingIDs by scanning the merged output.
func Merge(g *txgraph.Graph, cycleRings, smurfRings, shellRings []domain.Ring) []domain.Ring {
	all := make([]domain.Ring, 0, len(cycleRings)+len(smurfRings)+len(shellRings))
	all = append(all, cycleRings...)
	all = append(all, smurfRings...)
	all = append(all, shellRings...)

	deduped := exactDedup(all)
	survivors := eliminateSubsets(deduped)
	groups := overlapGroups(survivors)
	merged := emitGroups(survivors, groups)

	clearRingIDs(g)
	for _, ring := range merged {
		for _, id := range ring.MemberAccounts {
			g.Node(id).AddRingID(ring.RingID)
		}
	}
	return merged
}

// exactDedup groups rings by canonical key, keeping the most severe representative per
// key. Ties in severity keep the first-seen occurrence, which is stable because the
// input order (cycle, smurfing, shell) is fixed.
func exactDedup(rings []domain.Ring) []domain.Ring {
	bestIdx := make(map[string]int)
	order := make([]string, 0)
	for i, r := range rings {
		key := r.CanonicalKey()
		cur, ok := bestIdx[key]
		if !ok {
			bestIdx[key] = i
			order = append(order, key)
			continue
		}
		if domain.MoreSevere(r.PatternType, rings[cur].PatternType) {
			bestIdx[key] = i
		}
	}

	out := make([]domain.Ring, 0, len(order))
	for _, key := range order {
		out = append(out, rings[bestIdx[key]])
	}
	return out
}

// eliminateSubsets discards any ring whose member set is a strict subset of another
// surviving ring's member set.
func eliminateSubsets(rings []domain.Ring) []domain.Ring {
	sets := make([]map[string]struct{}, len(rings))
	for i, r := range rings {
		sets[i] = domain.MemberSet(r.MemberAccounts)
	}

	var out []domain.Ring
	for i := range rings {
		subsumed := false
		for j := range rings {
			if i == j {
				continue
			}
			if domain.IsStrictSubset(sets[i], sets[j]) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, rings[i])
		}
	}
	return out
}

// overlapGroups unions rings whose member-set overlap ratio reaches overlapThreshold on
// either side, via union-find so the relation is transitively closed: if A merges with
// B and B merges with C, A and C land in the same group even when their own pairwise
// overlap falls below the threshold.
func overlapGroups(rings []domain.Ring) [][]int {
	sets := make([]map[string]struct{}, len(rings))
	for i, r := range rings {
		sets[i] = domain.MemberSet(r.MemberAccounts)
	}

	uf := newUnionFind(len(rings))
	for i := 0; i < len(rings); i++ {
		for j := i + 1; j < len(rings); j++ {
			overlap := intersectionSize(sets[i], sets[j])
			if overlap == 0 {
				continue
			}
			ratioI := float64(overlap) / float64(len(sets[i]))
			ratioJ := float64(overlap) / float64(len(sets[j]))
			if ratioI >= overlapThreshold || ratioJ >= overlapThreshold {
				uf.union(i, j)
			}
		}
	}

	groupIdx := make(map[int]int)
	var groups [][]int
	for i := range rings {
		root := uf.find(i)
		gi, ok := groupIdx[root]
		if !ok {
			gi = len(groups)
			groupIdx[root] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
	}
	return groups
}

func intersectionSize(a, b map[string]struct{}) int {
	n := 0
	for m := range a {
		if _, ok := b[m]; ok {
			n++
		}
	}
	return n
}

// emitGroups produces the final merged rings in group-emission order, assigning dense
// RING_NNN ids starting at 1.
func emitGroups(rings []domain.Ring, groups [][]int) []domain.Ring {
	out := make([]domain.Ring, 0, len(groups))
	for i, group := range groups {
		memberSet := make(map[string]struct{})
		pattern := ""
		maxRisk := 0.0
		for _, idx := range group {
			r := rings[idx]
			for _, m := range r.MemberAccounts {
				memberSet[m] = struct{}{}
			}
			if pattern == "" || domain.MoreSevere(r.PatternType, pattern) {
				pattern = r.PatternType
			}
			if r.RiskScore > maxRisk {
				maxRisk = r.RiskScore
			}
		}

		out = append(out, domain.Ring{
			RingID:         fmt.Sprintf("RING_%03d", i+1),
			MemberAccounts: domain.SortedUniqueMembers(memberSet),
			PatternType:    pattern,
			RiskScore:      maxRisk,
		})
	}
	return out
}

func clearRingIDs(g *txgraph.Graph) {
	for _, node := range g.Nodes() {
		node.RingIDs = nil
	}
}
