package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TransactionsFile is the file name WriteDataset writes under its directory.
const TransactionsFile = "transactions.json"

// WriteDataset serializes the dataset into transactions.json under the provided directory
// and returns the written path.
func WriteDataset(dataset Dataset, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, TransactionsFile)
	if err := writeJSON(path, dataset.Transactions); err != nil {
		return "", err
	}
	return path, nil
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
