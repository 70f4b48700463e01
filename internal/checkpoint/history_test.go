package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleHistory() *History {
	h := &History{}
	h.Add(Row{Epoch: 1, LossTrain: 0.9, LossVal: 1.1, AccTrain: 0.5, AccVal: 0.45})
	h.Add(Row{Epoch: 2, LossTrain: 0.7, LossVal: 0.95, AccTrain: 0.6, AccVal: 0.55})
	h.Add(Row{Epoch: 3, LossTrain: 0.5, LossVal: 0.9, AccTrain: 0.7, AccVal: 0.6})
	return h
}

func TestHistory_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.history.csv")
	if err := sampleHistory().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadHistory(path, Marker{Last: true})
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if len(loaded.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(loaded.Rows))
	}
	want := sampleHistory()
	for i, row := range loaded.Rows {
		if row != want.Rows[i] {
			t.Errorf("row %d = %+v; want %+v", i, row, want.Rows[i])
		}
	}
	if loaded.LastEpoch() != 3 {
		t.Errorf("LastEpoch = %d; want 3", loaded.LastEpoch())
	}
}

func TestLoadHistory_TruncatesToEpoch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.history.csv")
	if err := sampleHistory().Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadHistory(path, Marker{Epoch: 2})
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if len(loaded.Rows) != 2 || loaded.LastEpoch() != 2 {
		t.Errorf("truncated history has %d rows up to epoch %d; want 2 rows up to 2",
			len(loaded.Rows), loaded.LastEpoch())
	}
}

func TestLoadHistory_NoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.csv")
	data := "1,0.9,1.1,0.5,0.45\n2,0.7,0.95,0.6,0.55\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadHistory(path, Marker{Last: true})
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if len(loaded.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(loaded.Rows))
	}
}

func TestLoadHistory_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad epoch", "epoch,loss_train,loss_val,acc_train,acc_val\nx,1,2,3,4\n"},
		{"bad metric", "epoch,loss_train,loss_val,acc_train,acc_val\n1,abc,2,3,4\n"},
		{"wrong column count", "epoch,loss_train\n1,0.5\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "h.csv")
			if err := os.WriteFile(path, []byte(tc.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadHistory(path, Marker{Last: true}); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadHistory_MissingFile(t *testing.T) {
	if _, err := LoadHistory(filepath.Join(t.TempDir(), "missing.csv"), Marker{Last: true}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHistory_LastEpochEmpty(t *testing.T) {
	h := &History{}
	if got := h.LastEpoch(); got != -1 {
		t.Errorf("LastEpoch of empty history = %d; want -1", got)
	}
}
