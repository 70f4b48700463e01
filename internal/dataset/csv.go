package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var pairsHeader = []string{"path_a", "path_b", "same_person"}

// WritePairsCSV persists a sampled split as a CSV listing. The same_person
// column is informational; it is rederived from the filenames on load.
func WritePairsCSV(path string, pairs []Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pairs file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(pairsHeader); err != nil {
		return fmt.Errorf("failed to write pairs header: %w", err)
	}
	for _, p := range pairs {
		rec := []string{p.A.Path, p.B.Path, strconv.FormatBool(p.SamePerson)}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write pair row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush pairs file %q: %w", path, err)
	}
	return nil
}

// ReadPairsCSV loads a split previously written by WritePairsCSV, rebuilding
// each record from its filepath. Used mainly to pass an earlier split as an
// exclusion set to a later sampling call.
func ReadPairsCSV(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pairs file %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse pairs file %q: %w", path, err)
	}

	var pairs []Pair
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == pairsHeader[0] {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("pairs file %q line %d: expected at least 2 columns", path, i+1)
		}
		a, err := NewRecord(filepath.Dir(row[0]), filepath.Base(row[0]))
		if err != nil {
			return nil, fmt.Errorf("pairs file %q line %d: %w", path, i+1, err)
		}
		b, err := NewRecord(filepath.Dir(row[1]), filepath.Base(row[1]))
		if err != nil {
			return nil, fmt.Errorf("pairs file %q line %d: %w", path, i+1, err)
		}
		pairs = append(pairs, NewPair(a, b))
	}
	return pairs, nil
}
