package checkpoint

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// historyHeader is the column layout of a history CSV file.
var historyHeader = []string{"epoch", "loss_train", "loss_val", "acc_train", "acc_val"}

// Row is one epoch of training history.
type Row struct {
	Epoch     int
	LossTrain float64
	LossVal   float64
	AccTrain  float64
	AccVal    float64
}

// History is the per-epoch metrics of one experiment run, ordered by epoch.
type History struct {
	Rows []Row
}

// Add appends one epoch row.
func (h *History) Add(r Row) {
	h.Rows = append(h.Rows, r)
}

// LastEpoch returns the epoch of the final row, or -1 for empty history.
func (h *History) LastEpoch() int {
	if len(h.Rows) == 0 {
		return -1
	}
	return h.Rows[len(h.Rows)-1].Epoch
}

// LoadHistory reads a history CSV. Rows after the resolved checkpoint are
// dropped, so a run resumed from epoch N never replays metrics the new run
// is about to overwrite; a "last" marker keeps every row.
func LoadHistory(path string, upTo Marker) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(historyHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse history file %q: %w", path, err)
	}

	h := &History{}
	for i, rec := range records {
		if i == 0 && rec[0] == historyHeader[0] {
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("history file %q line %d: %w", path, i+1, err)
		}
		if !upTo.Last && row.Epoch > upTo.Epoch {
			continue
		}
		h.Rows = append(h.Rows, row)
	}
	return h, nil
}

// Save writes the history as CSV with a header row.
func (h *History) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create history file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(historyHeader); err != nil {
		return fmt.Errorf("failed to write history header: %w", err)
	}
	for _, row := range h.Rows {
		rec := []string{
			strconv.Itoa(row.Epoch),
			formatMetric(row.LossTrain),
			formatMetric(row.LossVal),
			formatMetric(row.AccTrain),
			formatMetric(row.AccVal),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write history row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush history file %q: %w", path, err)
	}
	return nil
}

func parseRow(rec []string) (Row, error) {
	epoch, err := strconv.Atoi(rec[0])
	if err != nil {
		return Row{}, fmt.Errorf("invalid epoch %q", rec[0])
	}
	vals := make([]float64, 4)
	for i, s := range rec[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Row{}, fmt.Errorf("invalid %s value %q", historyHeader[i+1], s)
		}
		vals[i] = v
	}
	return Row{Epoch: epoch, LossTrain: vals[0], LossVal: vals[1], AccTrain: vals[2], AccVal: vals[3]}, nil
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
