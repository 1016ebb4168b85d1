// Command gen wraps internal/generator to write a synthetic dataset file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mulewatch/forensics/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		accounts      = flag.Int("accounts", cfg.NumAccounts, "number of background accounts to generate")
		backgroundTxs = flag.Int("background-txs", cfg.NumBackgroundTxs, "number of legitimate background transactions")
		cycleRings    = flag.Int("cycle-rings", cfg.NumCycleRings, "number of planted circular-routing rings")
		smurfRings    = flag.Int("smurf-rings", cfg.NumSmurfRings, "number of planted smurfing rings")
		shellChains   = flag.Int("shell-chains", cfg.NumShellChains, "number of planted shell chains")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir     = flag.String("output-dir", "data", "directory to write transactions.json")
		writeStdout   = flag.Bool("stdout", false, "write the transaction stream to stdout instead of a file")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumAccounts:      *accounts,
		NumBackgroundTxs: *backgroundTxs,
		NumCycleRings:    *cycleRings,
		NumSmurfRings:    *smurfRings,
		NumShellChains:   *shellChains,
		Seed:             *seed,
	}

	gen := generator.New(genCfg)
	txs := gen.Generate()

	if *writeStdout {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(txs); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write transactions to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(txs, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d transactions into %s\n", len(txs), *outputDir)
}
