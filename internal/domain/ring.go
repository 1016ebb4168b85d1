package domain

import "sort"

// Pattern tags emitted by the detectors. Exact strings are part of the output contract.
const (
	PatternCycle3    = "cycle_length_3"
	PatternCycle4    = "cycle_length_4"
	PatternCycle5    = "cycle_length_5"
	PatternFanIn72h  = "fan_in_72h"
	PatternFanOut72h = "fan_out_72h"
	PatternShell     = "shell_network"
)

// severityOrder lists pattern types from most to least severe, used by the merger's
// exact-dedup stage (keep the most severe representative) and its emit stage (the
// merged ring's pattern is the most severe pattern present in the group).
var severityOrder = []string{
	PatternShell,
	PatternCycle5,
	PatternCycle4,
	PatternCycle3,
	PatternFanIn72h,
	PatternFanOut72h,
}

// SeverityRank returns the position of pattern in severityOrder (0 = most severe). An
// unknown pattern ranks least severe of all.
func SeverityRank(pattern string) int {
	for i, p := range severityOrder {
		if p == pattern {
			return i
		}
	}
	return len(severityOrder)
}

// MoreSevere reports whether a outranks b (a is strictly more severe than b).
func MoreSevere(a, b string) bool {
	return SeverityRank(a) < SeverityRank(b)
}

// Ring is a candidate or final fraud ring. Detectors produce Rings with no RingID set;
// ring id assignment is deferred to merge emission, so the merger assigns RingID only
// once a group survives to the final output.
type Ring struct {
	RingID         string
	MemberAccounts []string // always sorted ascending, deduplicated
	PatternType    string
	RiskScore      float64
}

// CanonicalKey returns the ring's canonical dedup key: its sorted member set joined by
// commas. Callers must ensure MemberAccounts is already sorted and deduplicated.
func (r Ring) CanonicalKey() string {
	return canonicalKey(r.MemberAccounts)
}

func canonicalKey(members []string) string {
	out := ""
	for i, m := range members {
		if i > 0 {
			out += ","
		}
		out += m
	}
	return out
}

// SortedUniqueMembers returns the members of set sorted ascending, deduplicated.
func SortedUniqueMembers(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// MemberSet builds a lookup set from a member slice.
func MemberSet(members []string) map[string]struct{} {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set
}

// IsStrictSubset reports whether a's member set is a strict subset of b's (a ⊂ b, a ≠ b).
func IsStrictSubset(a, b map[string]struct{}) bool {
	if len(a) >= len(b) {
		return false
	}
	for m := range a {
		if _, ok := b[m]; !ok {
			return false
		}
	}
	return true
}
