package e2e

import (
	"strings"
	"testing"
)

func TestBuildStatute(t *testing.T) {
	s := BuildStatute(120)
	if len(s.Articles) != 120 {
		t.Fatalf("articles = %d, want 120", len(s.Articles))
	}
	// 3 titles, chapters I-V, I-V and I-II
	if len(s.Headings) != 15 {
		t.Errorf("headings = %d, want 15: %v", len(s.Headings), s.Headings)
	}
	if s.Headings[0] != "TÍTULO I" || s.Headings[len(s.Headings)-1] != "CAPÍTULO II" {
		t.Errorf("headings = %v", s.Headings)
	}
	if !strings.Contains(s.Text, "\nArt. 9º O ") || !strings.Contains(s.Text, "\nArt. 10. O ") {
		t.Error("expected ordinal form below 10 and plain form from 10")
	}
	for _, tc := range s.TestCases {
		if len(tc.ExpectedArticles) == 0 {
			t.Errorf("%s: no expected articles", tc.Description)
		}
	}
}

func TestRoman(t *testing.T) {
	tests := map[int]string{1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1999: "MCMXCIX"}
	for n, want := range tests {
		if got := roman(n); got != want {
			t.Errorf("roman(%d) = %q, want %q", n, got, want)
		}
	}
}
