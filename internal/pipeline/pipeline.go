// Package pipeline implements the orchestrator: a fixed-order pipeline over the graph
// builder, the three detectors, the merger, and the scoring engine, invoking a
// caller-supplied progress callback at stage boundaries and assembling the final report.
package pipeline

import (
	"sort"
	"time"

	"github.com/mulewatch/forensics/internal/apperr"
	"github.com/mulewatch/forensics/internal/detect"
	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/merge"
	"github.com/mulewatch/forensics/internal/score"
	"github.com/mulewatch/forensics/internal/txgraph"
)

// ProgressFunc is invoked at each stage boundary with a stage label and a percent in
// [0, 100]. Repainting a host UI from these calls is the caller's concern, not the
// pipeline's.
type ProgressFunc func(stage string, percent int)

// Options configures a single pipeline run.
type Options struct {
	Progress ProgressFunc
	// Clock overrides time.Now for processing_time_seconds, used by tests that need a
	// deterministic report.
	Clock func() time.Time
}

var stages = []struct {
	label   string
	percent int
}{
	{"build_graph", 10},
	{"detect_cycles", 30},
	{"detect_smurfing", 50},
	{"detect_shell_chains", 70},
	{"merge_rings", 85},
	{"score", 95},
	{"assemble_report", 100},
}

func report(opts Options, stage string, percent int) {
	if opts.Progress != nil {
		opts.Progress(stage, percent)
	}
}

// Run executes the fixed pipeline: build -> cycles -> smurfing -> shell -> merge ->
// rebuild per-node ring ids -> score accounts -> score rings -> assemble output.
//
// An empty transactions slice always produces an empty report rather than an error;
// apperr.KindEmptyInput remains available as a sentinel for callers that want to
// distinguish "nothing to analyze" from "found nothing suspicious" some other way.
func Run(transactions []domain.Transaction, opts Options) (domain.Report, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	start := clock()

	if len(transactions) == 0 {
		report(opts, stages[0].label, 100)
		return domain.Report{
			SuspiciousAccounts: []domain.SuspiciousAccount{},
			FraudRings:         []domain.ReportRing{},
			Summary: domain.Summary{
				ProcessingTimeSeconds: domain.OneDecimal(roundSeconds(clock().Sub(start))),
			},
		}, nil
	}

	report(opts, stages[0].label, stages[0].percent)
	g := txgraph.Build(transactions)

	report(opts, stages[1].label, stages[1].percent)
	cycleRings := detect.Cycles(g)

	report(opts, stages[2].label, stages[2].percent)
	smurfRings := detect.Smurfing(g)

	report(opts, stages[3].label, stages[3].percent)
	shellRings := detect.ShellChains(g)

	report(opts, stages[4].label, stages[4].percent)
	merged := merge.Merge(g, cycleRings, smurfRings, shellRings)

	if err := checkInvariants(g, merged); err != nil {
		return domain.Report{}, err
	}

	report(opts, stages[5].label, stages[5].percent)
	score.Accounts(g)
	score.Rings(g, merged)

	report(opts, stages[6].label, stages[6].percent)
	elapsed := clock().Sub(start)
	return assembleReport(g, merged, elapsed), nil
}

// checkInvariants verifies every account appearing in any ring also exists as a graph
// node and is marked suspicious. A violation indicates a detector or merger bug, not bad
// input, so it is treated as fatal.
func checkInvariants(g *txgraph.Graph, rings []domain.Ring) error {
	for _, ring := range rings {
		for _, id := range ring.MemberAccounts {
			node := g.Node(id)
			if node == nil {
				return apperr.InvariantViolation("ring " + ring.RingID + " references unknown account " + id)
			}
			if !node.IsSuspicious {
				return apperr.InvariantViolation("ring " + ring.RingID + " member " + id + " is not marked suspicious")
			}
		}
	}
	return nil
}

func assembleReport(g *txgraph.Graph, rings []domain.Ring, elapsed time.Duration) domain.Report {
	var suspicious []domain.SuspiciousAccount
	for _, node := range g.Nodes() {
		if !node.IsSuspicious {
			continue
		}
		var ringID *string
		if len(node.RingIDs) > 0 {
			id := node.RingIDs[0]
			ringID = &id
		}
		suspicious = append(suspicious, domain.SuspiciousAccount{
			AccountID:        node.ID,
			SuspicionScore:   domain.OneDecimal(node.SuspicionScore),
			DetectedPatterns: node.DedupedPatterns(),
			RingID:           ringID,
		})
	}
	sort.Slice(suspicious, func(i, j int) bool {
		if suspicious[i].SuspicionScore != suspicious[j].SuspicionScore {
			return suspicious[i].SuspicionScore > suspicious[j].SuspicionScore
		}
		return suspicious[i].AccountID < suspicious[j].AccountID
	})
	if suspicious == nil {
		suspicious = []domain.SuspiciousAccount{}
	}

	reportRings := make([]domain.ReportRing, 0, len(rings))
	for _, r := range rings {
		reportRings = append(reportRings, domain.ReportRing{
			RingID:         r.RingID,
			MemberAccounts: r.MemberAccounts,
			PatternType:    r.PatternType,
			RiskScore:      domain.OneDecimal(r.RiskScore),
		})
	}

	return domain.Report{
		SuspiciousAccounts: suspicious,
		FraudRings:         reportRings,
		Summary: domain.Summary{
			TotalAccountsAnalyzed:     g.NodeCount(),
			SuspiciousAccountsFlagged: len(suspicious),
			FraudRingsDetected:        len(rings),
			ProcessingTimeSeconds:     domain.OneDecimal(roundSeconds(elapsed)),
		},
	}
}

func roundSeconds(d time.Duration) float64 {
	seconds := d.Seconds()
	scaled := seconds * 10
	scaled = float64(int64(scaled + 0.5))
	return scaled / 10
}
