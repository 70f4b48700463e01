package dataset

import (
	"path/filepath"
	"testing"
)

func TestPairsCSV_RoundTrip(t *testing.T) {
	a1 := rec(t, "/data", "Alice_0001.pgm")
	a2 := rec(t, "/data", "Alice_0002.pgm")
	b1 := rec(t, "/data", "Bob_0001.pgm")
	pairs := []Pair{NewPair(a1, a2), NewPair(a1, b1), NewPair(b1, b1)}

	path := filepath.Join(t.TempDir(), "pairs.csv")
	if err := WritePairsCSV(path, pairs); err != nil {
		t.Fatalf("WritePairsCSV failed: %v", err)
	}

	loaded, err := ReadPairsCSV(path)
	if err != nil {
		t.Fatalf("ReadPairsCSV failed: %v", err)
	}
	if len(loaded) != len(pairs) {
		t.Fatalf("got %d pairs, want %d", len(loaded), len(pairs))
	}
	for i := range pairs {
		if loaded[i].A.Path != pairs[i].A.Path || loaded[i].B.Path != pairs[i].B.Path {
			t.Errorf("pair %d paths differ: %v vs %v", i, loaded[i], pairs[i])
		}
		if loaded[i].SamePerson != pairs[i].SamePerson || loaded[i].SameImage != pairs[i].SameImage {
			t.Errorf("pair %d labels differ after round trip", i)
		}
	}
}

func TestReadPairsCSV_MissingFile(t *testing.T) {
	_, err := ReadPairsCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
