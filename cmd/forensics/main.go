// Command forensics runs the detection pipeline over a JSON transaction batch read
// from a file or stdin, and writes the resulting report to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mulewatch/forensics/internal/config"
	"github.com/mulewatch/forensics/internal/domain"
	"github.com/mulewatch/forensics/internal/logging"
	"github.com/mulewatch/forensics/internal/pipeline"
)

func main() {
	var (
		inputPath = flag.String("input", "", "Path to a JSON array of transactions (defaults to stdin)")
	)
	flag.Parse()

	// Only environment variables configure this entrypoint; -input is a plain flag
	// kept separate from ardanlabs/conf's own CLI-flag parsing to avoid the two
	// colliding over os.Args.
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format).With("component", "forensics")

	txs, err := loadTransactions(*inputPath)
	if err != nil {
		logger.Error("failed to load transactions", "error", err)
		os.Exit(1)
	}

	report, err := pipeline.Run(txs, pipeline.Options{
		Progress: func(stage string, percent int) {
			logger.Info("pipeline progress", "stage", stage, "percent", percent)
		},
	})
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		logger.Error("failed to encode report", "error", err)
		os.Exit(1)
	}
}

func loadTransactions(path string) ([]domain.Transaction, error) {
	var reader io.Reader
	if path == "" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()
		reader = file
	}

	var txs []domain.Transaction
	if err := json.NewDecoder(reader).Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return txs, nil
}
