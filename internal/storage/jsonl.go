package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oyvindaas/aarsrapport/internal/publication"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines
// (1MB per line). Some records carry long abstracts and contributor lists.
const MaxJSONLLineCapacity = 1024 * 1024

// WriteResults writes publication results to a JSONL file, one record per
// line. Parent directories are created as needed.
func WriteResults(path string, results []publication.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range results {
		if err := enc.Encode(&results[i]); err != nil {
			return fmt.Errorf("encoding record %d: %w", i+1, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing snapshot file: %w", err)
	}
	return nil
}

// ReadResults reads publication results from a JSONL file. A missing file
// returns an empty slice, not an error.
func ReadResults(path string) ([]publication.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	var results []publication.Result
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var r publication.Result
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		results = append(results, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	return results, nil
}
