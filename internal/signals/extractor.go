// Package signals classifies free-text search results into structured bloom
// signals. The classifier is intentionally low precision and high recall: the
// contract is keyword-group priority order and documented defaults, evaluated
// top to bottom over normalized text.
package signals

import (
	"fmt"
	"strings"

	"bloomcore/internal/domain"
)

const (
	// classifyTopN bounds how many results feed the classifier text.
	classifyTopN = 10
	// summaryTopN bounds how many results appear in the prose summary.
	summaryTopN = 5

	// DefaultSeason is reported when neither months nor season keywords match.
	DefaultSeason = "varies by region"

	// EmptySummary is reported for an empty result sequence.
	EmptySummary = "No recent web research available."
)

// statusRule is one priority-ordered keyword group for bloom status.
type statusRule struct {
	status   domain.BloomStatus
	keywords []string
}

// Evaluated top to bottom; first group with any keyword present wins.
var statusRules = []statusRule{
	{domain.BloomStatusActive, []string{
		"currently blooming", "in full bloom", "peak bloom", "now blooming",
		"in bloom", "flowering now", "bloom is underway",
	}},
	{domain.BloomStatusUpcoming, []string{
		"will bloom", "expected to bloom", "about to bloom", "buds are forming",
		"bloom is expected", "upcoming bloom",
	}},
	{domain.BloomStatusPast, []string{
		"finished blooming", "bloom has ended", "already bloomed",
		"past bloom", "bloomed early", "petals have fallen",
	}},
	{domain.BloomStatusNotSuitable, []string{
		"cannot grow", "does not grow", "not suitable", "unsuitable",
		"too cold for", "too hot for",
	}},
}

// abundanceRule is one priority-ordered keyword group for abundance.
type abundanceRule struct {
	level    domain.AbundanceLevel
	keywords []string
}

var abundanceRules = []abundanceRule{
	{domain.AbundanceHigh, []string{
		"abundant", "widespread", "plentiful", "carpet of", "vast fields",
		"profusion", "everywhere",
	}},
	{domain.AbundanceLow, []string{
		"sparse", "scattered", "only a few", "rare", "limited", "patchy",
	}},
	{domain.AbundanceNone, []string{
		"no blooms", "no flowers", "absent", "devoid of",
	}},
}

// monthNames is the fixed month order used for season-range construction;
// ranges follow this order, not text order.
var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// seasonKeywords is the fixed priority list for season classification.
var seasonKeywords = []string{"spring", "summer", "autumn", "winter", "monsoon"}

// Extract derives structured signals from a search result sequence. Pure and
// deterministic: the same input always yields the same signals.
func Extract(results []domain.SearchResult) domain.ExtractedSignals {
	text := classifierText(results)

	return domain.ExtractedSignals{
		BloomStatus: classifyStatus(text),
		Season:      classifySeason(text),
		Abundance:   classifyAbundance(text),
		Summary:     Summarize(results),
		SourceCount: len(results),
	}
}

// AbundanceMatched reports whether any abundance keyword group matched the
// corpus, i.e. whether Extract's abundance is a real signal rather than the
// documented default.
func AbundanceMatched(results []domain.SearchResult) bool {
	text := classifierText(results)
	for _, rule := range abundanceRules {
		if containsAny(text, rule.keywords) {
			return true
		}
	}
	return false
}

// Summarize renders the numbered source digest fed to the synthesizer.
func Summarize(results []domain.SearchResult) string {
	if len(results) == 0 {
		return EmptySummary
	}

	limit := len(results)
	if limit > summaryTopN {
		limit = summaryTopN
	}

	lines := make([]string, 0, limit)
	for i, r := range results[:limit] {
		title := r.Title
		if title == "" {
			title = "No title"
		}
		snippet := r.Snippet
		if snippet == "" {
			snippet = "No description"
		}
		source := r.Source
		if source == "" {
			source = "Unknown"
		}
		lines = append(lines, fmt.Sprintf("%d. [%s] %s: %s", i+1, source, title, snippet))
	}

	return strings.Join(lines, "\n")
}

func classifierText(results []domain.SearchResult) string {
	limit := len(results)
	if limit > classifyTopN {
		limit = classifyTopN
	}

	var b strings.Builder
	for _, r := range results[:limit] {
		b.WriteString(strings.ToLower(r.Title))
		b.WriteString(" ")
		b.WriteString(strings.ToLower(r.Snippet))
		b.WriteString(" ")
	}
	return b.String()
}

func classifyStatus(text string) domain.BloomStatus {
	for _, rule := range statusRules {
		if containsAny(text, rule.keywords) {
			return rule.status
		}
	}
	return domain.BloomStatusUnknown
}

func classifySeason(text string) string {
	var found []string
	for _, month := range monthNames {
		if strings.Contains(text, month) {
			found = append(found, month)
		}
	}

	switch {
	case len(found) >= 2:
		// found is already in fixed month-list order.
		return fmt.Sprintf("%s to %s", titleMonth(found[0]), titleMonth(found[len(found)-1]))
	case len(found) == 1:
		return titleMonth(found[0])
	}

	for _, season := range seasonKeywords {
		if strings.Contains(text, season) {
			return season
		}
	}

	return DefaultSeason
}

func classifyAbundance(text string) domain.AbundanceLevel {
	for _, rule := range abundanceRules {
		if containsAny(text, rule.keywords) {
			return rule.level
		}
	}
	return domain.AbundanceMedium
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func titleMonth(month string) string {
	if month == "" {
		return month
	}
	return strings.ToUpper(month[:1]) + month[1:]
}
