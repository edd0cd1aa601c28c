package tui

import (
	"strings"
	"time"

	"github.com/thomaskoefod/enrichreadr/pkg/models"
)

// Fixed presentation constants. Thresholds match the bands the backend
// dashboard uses; the budget fits the list card layout.
const (
	summaryBudget = 160
	scoreGoodMin  = 75
	scoreWarnMin  = 50
)

// Band classifies a 0-100 quality score for display.
type Band int

const (
	BandPoor Band = iota
	BandWarning
	BandGood
)

// ScoreBand maps a score to its display band.
func ScoreBand(score float64) Band {
	switch {
	case score >= scoreGoodMin:
		return BandGood
	case score >= scoreWarnMin:
		return BandWarning
	default:
		return BandPoor
	}
}

var languageLabels = map[string]string{
	"en": "English",
	"ar": "Arabic",
	"fr": "French",
	"es": "Spanish",
	"de": "German",
}

// LanguageLabel returns a display label for a language code, refined by
// the dialect when present. Unmapped codes fall back to the raw code.
func LanguageLabel(code, dialect string) string {
	label, ok := languageLabels[code]
	if !ok {
		label = code
	}
	if dialect != "" {
		label += " (" + capitalize(dialect) + ")"
	}
	return label
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TruncateSummary cuts a summary to the list-card budget, appending an
// ellipsis only when the source text actually exceeds it. The input is
// never mutated. Counting is rune-based so Arabic text truncates
// cleanly.
func TruncateSummary(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + "…"
}

// FormatDate renders an optional timestamp; absence is a valid state
// and renders as "unknown date".
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "unknown date"
	}
	return t.Format("Jan 2, 2006")
}

// QAScoreLines returns the five metrics as label/value/band rows in a
// fixed order for the detail view.
func QAScoreLines(qa *models.QAScores) []ScoreLine {
	if qa == nil {
		return nil
	}
	return []ScoreLine{
		{"Readability", qa.Readability, ScoreBand(qa.Readability)},
		{"Coherence", qa.Coherence, ScoreBand(qa.Coherence)},
		{"Redundancy", qa.Redundancy, ScoreBand(qa.Redundancy)},
		{"Neutrality", qa.Neutrality, ScoreBand(qa.Neutrality)},
		{"Human-likeness", qa.HumanLikeness, ScoreBand(qa.HumanLikeness)},
	}
}

// ScoreLine is one QA metric prepared for rendering.
type ScoreLine struct {
	Label string
	Value float64
	Band  Band
}
