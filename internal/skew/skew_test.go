package skew

import (
	"os"
	"path/filepath"
	"testing"

	"facepairs/internal/dataset"
)

func rec(t *testing.T, name string) dataset.Record {
	t.Helper()
	r, err := dataset.NewRecord("/data", name)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Arnold_Schwarzenegger", "AS"},
		{"Jean_Claude_Van_Damme", "JCVD"},
		{"alice", ""},
		{"Bob", "B"},
	}
	for _, tc := range tests {
		if got := abbreviate(tc.name); got != tc.want {
			t.Errorf("abbreviate(%q) = %q; want %q", tc.name, got, tc.want)
		}
	}
}

func TestCountByPerson(t *testing.T) {
	a1 := rec(t, "Alice_0001.pgm")
	a2 := rec(t, "Alice_0002.pgm")
	b1 := rec(t, "Bob_0001.pgm")
	c1 := rec(t, "Carol_0001.pgm")

	pairs := []dataset.Pair{
		dataset.NewPair(a1, a2),
		dataset.NewPair(a1, a2),
		dataset.NewPair(b1, c1),
	}

	t.Run("all pairs", func(t *testing.T) {
		ranked := CountByPerson(pairs, false)
		want := []PersonCount{{"Alice", 4}, {"Bob", 1}, {"Carol", 1}}
		if len(ranked) != len(want) {
			t.Fatalf("got %d persons, want %d", len(ranked), len(want))
		}
		for i := range want {
			if ranked[i] != want[i] {
				t.Errorf("ranked[%d] = %v; want %v", i, ranked[i], want[i])
			}
		}
	})

	t.Run("same person only", func(t *testing.T) {
		ranked := CountByPerson(pairs, true)
		if len(ranked) != 1 || ranked[0] != (PersonCount{"Alice", 4}) {
			t.Errorf("ranked = %v; want only Alice with 4", ranked)
		}
	})
}

func TestCountByPerson_TieBreaksByName(t *testing.T) {
	b1 := rec(t, "Bob_0001.pgm")
	a1 := rec(t, "Alice_0001.pgm")

	ranked := CountByPerson([]dataset.Pair{dataset.NewPair(b1, a1)}, false)
	if len(ranked) != 2 || ranked[0].Person != "Alice" || ranked[1].Person != "Bob" {
		t.Errorf("tied counts should rank alphabetically, got %v", ranked)
	}
}

func TestRender(t *testing.T) {
	a1 := rec(t, "Alice_0001.pgm")
	a2 := rec(t, "Alice_0002.pgm")
	b1 := rec(t, "Bob_0001.pgm")

	splits := []Split{
		{Name: "Train", Pairs: []dataset.Pair{dataset.NewPair(a1, a2), dataset.NewPair(a1, b1)}},
		{Name: "Validation", Pairs: []dataset.Pair{dataset.NewPair(a2, b1)}},
	}

	out := filepath.Join(t.TempDir(), "skew.png")
	if err := Render(splits, DefaultOptions(out)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRender_NoSplits(t *testing.T) {
	if err := Render(nil, DefaultOptions("unused.png")); err == nil {
		t.Error("expected error for empty split list")
	}
}

func TestRender_EmptySplit(t *testing.T) {
	// A split whose pairs are all filtered out still renders an empty chart.
	b1 := rec(t, "Bob_0001.pgm")
	c1 := rec(t, "Carol_0001.pgm")
	splits := []Split{{Name: "Test", Pairs: []dataset.Pair{dataset.NewPair(b1, c1)}}}

	out := filepath.Join(t.TempDir(), "skew.png")
	if err := Render(splits, DefaultOptions(out)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("chart file missing: %v", err)
	}
}
