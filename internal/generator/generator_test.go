package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	cfg := Config{NumAccounts: 20, NumBackgroundTxs: 50, NumCycleRings: 2, NumSmurfRings: 1, NumShellChains: 1, Seed: 7}

	first := New(cfg).Generate()
	second := New(cfg).Generate()

	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].ID, second[i].ID)
		require.Equal(t, first[i].SenderID, second[i].SenderID)
		require.Equal(t, first[i].ReceiverID, second[i].ReceiverID)
		require.Equal(t, first[i].Amount, second[i].Amount)
		require.True(t, first[i].Timestamp.Equal(second[i].Timestamp))
	}
}

func TestGenerateDifferentSeedsDivergeBackgroundTraffic(t *testing.T) {
	cfgA := Config{NumAccounts: 20, NumBackgroundTxs: 50, Seed: 1}
	cfgB := Config{NumAccounts: 20, NumBackgroundTxs: 50, Seed: 2}

	a := New(cfgA).Generate()
	b := New(cfgB).Generate()

	diverged := false
	for i := range a {
		if a[i].SenderID != b[i].SenderID || a[i].ReceiverID != b[i].ReceiverID {
			diverged = true
			break
		}
	}
	require.True(t, diverged)
}

func TestGenerateEmbedsRequestedPatternCounts(t *testing.T) {
	cfg := Config{NumAccounts: 10, NumBackgroundTxs: 5, NumCycleRings: 3, NumSmurfRings: 2, NumShellChains: 1, Seed: 42}
	txs := New(cfg).Generate()

	cycleMembers := 0
	cycleRings := make(map[string]bool)
	smurfAggregators := make(map[string]bool)
	shellChains := make(map[string]bool)
	for _, tx := range txs {
		if len(tx.SenderID) >= 3 && tx.SenderID[:3] == "CYC" {
			cycleMembers++
			cycleRings[tx.SenderID[:6]] = true
		}
		for _, id := range []string{tx.SenderID, tx.ReceiverID} {
			if strings.HasPrefix(id, "SMURF-AGG-") {
				smurfAggregators[id] = true
			}
		}
		if strings.HasPrefix(tx.SenderID, "SHELL-") {
			shellChains[tx.SenderID[:8]] = true
		}
	}
	require.Positive(t, cycleMembers)
	require.Len(t, cycleRings, cfg.NumCycleRings)
	require.Len(t, smurfAggregators, cfg.NumSmurfRings)
	require.Len(t, shellChains, cfg.NumShellChains)
}

func TestDefaultConfigExercisesAllDetectors(t *testing.T) {
	cfg := DefaultConfig()
	require.Positive(t, cfg.NumCycleRings)
	require.Positive(t, cfg.NumSmurfRings)
	require.Positive(t, cfg.NumShellChains)
}
