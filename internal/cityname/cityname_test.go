package cityname

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"São Paulo", "sao paulo"},
		{"sao paulo", "sao paulo"},
		{"SAO-PAULO", "sao paulo"},
		{"Saint-Étienne", "saint etienne"},
		{"L'Aquila", "l aquila"},
		{"  New   York ", "new york"},
		{"Córdoba", "cordoba"},
		{"München", "munchen"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestShort(t *testing.T) {
	if got := Short("Lyon, Métropole de Lyon, France"); got != "Lyon" {
		t.Errorf("Short = %q", got)
	}
	if got := Short("Berlin"); got != "Berlin" {
		t.Errorf("Short = %q", got)
	}
}

func TestParsePopulation(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2148271", 2148271},
		{"2,148,271", 2148271},
		{"2 148 271", 2148271},
		{"", 0},
		{"unknown", 0},
		// Digit-heavy provider values are rejected rather than
		// wrapped into a negative count.
		{"99999999999999999999", 0},
		{strings.Repeat("123456789", 5), 0},
	}
	for _, tc := range cases {
		if got := ParsePopulation(tc.in); got != tc.want {
			t.Errorf("ParsePopulation(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got := ParsePopulation(tc.in); got < 0 {
			t.Errorf("ParsePopulation(%q) = %d, negative", tc.in, got)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("São Paulo", "sao paulo"); s != 1 {
		t.Errorf("identical after normalization: got %v", s)
	}
	if s := Similarity("Paris", "Parys"); s < 0.4 {
		t.Errorf("near match scored %v", s)
	}
	if s := Similarity("Paris", "Johannesburg"); s > 0.2 {
		t.Errorf("unrelated names scored %v", s)
	}
}
