package tui

import (
	"testing"
	"time"
)

func TestScoreBand(t *testing.T) {
	tests := []struct {
		score    float64
		expected Band
	}{
		{100, BandGood},
		{75, BandGood},
		{74.9, BandWarning},
		{50, BandWarning},
		{49.9, BandPoor},
		{0, BandPoor},
	}

	for _, test := range tests {
		if got := ScoreBand(test.score); got != test.expected {
			t.Errorf("ScoreBand(%v) = %v, expected %v", test.score, got, test.expected)
		}
	}
}

func TestLanguageLabel(t *testing.T) {
	tests := []struct {
		code     string
		dialect  string
		expected string
	}{
		{"en", "", "English"},
		{"ar", "", "Arabic"},
		{"ar", "egyptian", "Arabic (Egyptian)"},
		{"ar", "gulf", "Arabic (Gulf)"},
		{"tlh", "", "tlh"}, // unmapped code falls back to itself
	}

	for _, test := range tests {
		if got := LanguageLabel(test.code, test.dialect); got != test.expected {
			t.Errorf("LanguageLabel(%q, %q) = %q, expected %q", test.code, test.dialect, got, test.expected)
		}
	}
}

func TestTruncateSummary(t *testing.T) {
	short := "brief"
	if got := TruncateSummary(short, 10); got != short {
		t.Errorf("short summary mutated: %q", got)
	}

	long := "abcdefghij"
	got := TruncateSummary(long, 4)
	if got != "abcd…" {
		t.Errorf("TruncateSummary = %q", got)
	}

	// Rune-safe for non-ASCII text
	arabic := "مرحبا بالعالم"
	got = TruncateSummary(arabic, 5)
	if got != "مرحبا…" {
		t.Errorf("TruncateSummary(arabic) = %q", got)
	}

	// Exactly at budget: no ellipsis
	if got := TruncateSummary("abcd", 4); got != "abcd" {
		t.Errorf("at-budget summary changed: %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "unknown date" {
		t.Errorf("FormatDate(nil) = %q", got)
	}

	ts := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	if got := FormatDate(&ts); got != "Mar 14, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
}
