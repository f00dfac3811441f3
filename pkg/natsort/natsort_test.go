package natsort

import (
	"sort"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"digit run magnitude", "frame2", "frame10", -1},
		{"digit run magnitude reversed", "frame10", "frame2", 1},
		{"short numeric prefix", "f2", "f10", -1},
		{"equal strings", "frame1.png", "frame1.png", 0},
		{"plain text", "a.png", "b.png", -1},
		{"text before longer text", "frame", "frames", -1},
		{"case insensitive", "Frame2", "frame10", -1},
		{"case insensitive equal run", "ABC", "abd", -1},
		{"zero padding compares equal numerically", "frame002", "frame2", -1},
		{"numbers against text", "1.png", "a.png", -1},
		{"multiple digit runs", "s1e2", "s1e10", -1},
		{"multiple digit runs major", "s2e1", "s1e10", 1},
		{"leading zeros only", "000", "0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.a, tt.b)
			if sign(got) != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
			// Antisymmetry.
			if sign(Compare(tt.b, tt.a)) != -tt.want {
				t.Errorf("Compare(%q, %q) not antisymmetric", tt.b, tt.a)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	names := []string{"frame10.png", "frame2.png", "frame1.png", "frame20.png"}
	Strings(names)

	want := []string{"frame1.png", "frame2.png", "frame10.png", "frame20.png"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestStringsMixedNames(t *testing.T) {
	names := []string{"b.png", "a.png", "c10.png"}
	Strings(names)

	want := []string{"a.png", "b.png", "c10.png"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestStringsIdempotent(t *testing.T) {
	names := []string{"x2", "x10", "x1", "y", "X3"}
	Strings(names)

	again := make([]string, len(names))
	copy(again, names)
	Strings(again)

	for i := range names {
		if names[i] != again[i] {
			t.Fatalf("resort changed order at %d: %s vs %s", i, names[i], again[i])
		}
	}
}

func TestStringsStable(t *testing.T) {
	// Indices carry the insertion order of equal keys.
	type entry struct {
		key string
		ord int
	}
	entries := []entry{{"same", 0}, {"same", 1}, {"same", 2}}
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i].key, entries[j].key)
	})
	for i, e := range entries {
		if e.ord != i {
			t.Fatalf("stability violated: position %d holds insertion %d", i, e.ord)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
