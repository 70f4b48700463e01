package dataset

import "testing"

func rec(t *testing.T, dir, name string) Record {
	t.Helper()
	r, err := NewRecord(dir, name)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestNewPair_Labels(t *testing.T) {
	a1 := rec(t, "/d", "Alice_0001.pgm")
	a2 := rec(t, "/d", "Alice_0002.pgm")
	b1 := rec(t, "/d", "Bob_0001.pgm")

	tests := []struct {
		name           string
		a, b           Record
		wantSamePerson bool
		wantSameImage  bool
		wantLabel      float32
	}{
		{"same person distinct images", a1, a2, true, false, 1.0},
		{"same image", a1, a1, true, true, 1.0},
		{"different persons", a1, b1, false, false, 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPair(tc.a, tc.b)
			if p.SamePerson != tc.wantSamePerson {
				t.Errorf("SamePerson = %v; want %v", p.SamePerson, tc.wantSamePerson)
			}
			if p.SameImage != tc.wantSameImage {
				t.Errorf("SameImage = %v; want %v", p.SameImage, tc.wantSameImage)
			}
			if p.Label() != tc.wantLabel {
				t.Errorf("Label = %v; want %v", p.Label(), tc.wantLabel)
			}
		})
	}
}

func TestPairKey(t *testing.T) {
	a := rec(t, "/d", "Alice_0001.pgm")
	b := rec(t, "/d", "Bob_0001.pgm")

	ab := NewPair(a, b)
	ba := NewPair(b, a)

	if ab.Key(true) != ba.Key(true) {
		t.Error("order-insensitive keys of (A,B) and (B,A) should match")
	}
	if ab.Key(false) == ba.Key(false) {
		t.Error("order-sensitive keys of (A,B) and (B,A) should differ")
	}
	if ab.Key(false) != ab.Key(true) {
		// A sorts before B, so the canonical key equals the ordered one.
		t.Error("canonical key should keep already-sorted order")
	}
}

func TestRecords_Dedup(t *testing.T) {
	a1 := rec(t, "/d", "Alice_0001.pgm")
	a2 := rec(t, "/d", "Alice_0002.pgm")
	b1 := rec(t, "/d", "Bob_0001.pgm")

	pairs := []Pair{NewPair(a1, a2), NewPair(a1, b1)}
	records := Records(pairs)
	if len(records) != 3 {
		t.Fatalf("got %d unique records, want 3", len(records))
	}
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.Path] {
			t.Errorf("duplicate record %q", r.Path)
		}
		seen[r.Path] = true
	}
}
