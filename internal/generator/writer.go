package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mulewatch/forensics/internal/domain"
)

// WriteDataset serializes the generated transaction stream to transactions.json under
// the provided directory, creating the directory first if it doesn't exist.
func WriteDataset(transactions []domain.Transaction, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, "transactions.json")
	if err := writeJSON(path, transactions); err != nil {
		return err
	}
	return nil
}

func writeJSON(path string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}
	return nil
}
