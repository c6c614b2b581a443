// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critic

import "testing"

func TestTokenOverlap(t *testing.T) {
	sim := TokenOverlap{}

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "wrong population studied", "wrong population studied", 1},
		{"stopwords ignored", "the wrong population was studied", "wrong population studied", 1},
		{"case insensitive", "Wrong Population", "wrong population", 1},
		{"disjoint", "conference abstract only", "wrong population studied", 0},
		{"empty", "", "wrong population", 0},
		{"only stopwords", "the a an", "wrong population", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sim.Score(tt.a, tt.b); got != tt.want {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenOverlapSymmetric(t *testing.T) {
	sim := TokenOverlap{}
	a := "wrong population age group"
	b := "population excluded for age"
	if sim.Score(a, b) != sim.Score(b, a) {
		t.Error("score is not symmetric")
	}
}

func TestTokenOverlapPartial(t *testing.T) {
	sim := TokenOverlap{}
	// {wrong, population} vs {wrong, setting}: one shared of three.
	got := sim.Score("wrong population", "wrong setting")
	want := 1.0 / 3.0
	if got != want {
		t.Errorf("Score = %v, want %v", got, want)
	}
}
