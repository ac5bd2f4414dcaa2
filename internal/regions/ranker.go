// Package regions extracts candidate region names from search result text and
// ranks them by mention frequency.
package regions

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bloomcore/internal/domain"
)

const (
	// topN bounds the ranked candidate list.
	topN = 5

	// fallbackConfidence is assigned to the country-wide fallback candidate.
	fallbackConfidence = 50.0
)

// Extraction methods reported to callers.
const (
	MethodTextAnalysis    = "text_analysis"
	MethodCountryFallback = "country_fallback"
)

var (
	// "in Kashmir", "In Kashmir Valley": up to two capitalized words after
	// a locative preposition. The preposition matches case-insensitively so
	// sentence-initial mentions count; the candidate span stays capitalized.
	locativePattern = regexp.MustCompile(`(?i:\b(?:in|of|across|near|around)) ([A-Z][a-z]+(?: [A-Z][a-z]+)?)`)

	// "Kashmir Valley", "Nilgiri Hills": capitalized words before a
	// geographic suffix. The suffix is part of the candidate name.
	suffixPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)?) (Valley|Region|Province|State|District|Hills)\b`)
)

// stopwords are capitalized sentence-starters and quantifiers the locative
// pattern picks up by accident.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"these": true, "those": true, "some": true, "many": true, "most": true,
	"several": true, "various": true, "other": true, "all": true,
	"spring": true, "summer": true, "autumn": true, "winter": true,
	"march": true, "april": true, "may": true, "june": true,
	"july": true, "august": true, "september": true, "october": true,
	"november": true, "december": true, "january": true, "february": true,
}

// Ranker scores region candidates for one country and flower.
type Ranker struct{}

// NewRanker creates a ranker.
func NewRanker() *Ranker { return &Ranker{} }

// Rank extracts region names from results and returns up to five candidates
// ordered by mention count. When nothing survives filtering it returns a
// single country-wide fallback candidate and MethodCountryFallback.
func (r *Ranker) Rank(results []domain.SearchResult, country, flower string) ([]domain.RegionCandidate, string) {
	counts := make(map[string]int)
	var order []string

	for _, result := range results {
		text := result.Title + ". " + result.Snippet
		for _, name := range extractNames(text) {
			if !keepCandidate(name, country, flower) {
				continue
			}
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	if len(order) == 0 {
		return []domain.RegionCandidate{countryFallback(country, flower)}, MethodCountryFallback
	}

	// Sort by mentions descending; first occurrence breaks ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}

	total := len(results)
	candidates := make([]domain.RegionCandidate, 0, len(order))
	for _, name := range order {
		candidates = append(candidates, domain.RegionCandidate{
			Name:           name,
			Country:        country,
			FullName:       name + ", " + country,
			Mentions:       counts[name],
			Confidence:     confidence(counts[name], total),
			NeedsGeocoding: true,
		})
	}

	return candidates, MethodTextAnalysis
}

// extractNames runs both patterns over text. Locative captures that fall
// inside a suffix match are dropped so "in Kashmir Valley" counts once.
func extractNames(text string) []string {
	var names []string
	var taken [][2]int

	for _, m := range suffixPattern.FindAllStringSubmatchIndex(text, -1) {
		names = append(names, text[m[2]:m[5]])
		taken = append(taken, [2]int{m[0], m[1]})
	}
	for _, m := range locativePattern.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(m[2], m[3], taken) {
			continue
		}
		names = append(names, text[m[2]:m[3]])
	}

	return names
}

func overlaps(start, end int, spans [][2]int) bool {
	for _, span := range spans {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

func keepCandidate(name, country, flower string) bool {
	lower := strings.ToLower(name)
	if stopwords[lower] {
		return false
	}
	// Two-word candidates whose first word is a determiner ("The Valley").
	if first, _, ok := strings.Cut(lower, " "); ok && stopwords[first] {
		return false
	}
	if strings.EqualFold(name, country) || strings.EqualFold(name, flower) {
		return false
	}
	return true
}

func confidence(mentions, totalSources int) float64 {
	if totalSources == 0 {
		return 0
	}
	c := float64(mentions) / float64(totalSources) * 100
	if c > 100 {
		c = 100
	}
	return c
}

func countryFallback(country, flower string) domain.RegionCandidate {
	return domain.RegionCandidate{
		Name:           country,
		Country:        country,
		FullName:       country,
		Mentions:       0,
		Confidence:     fallbackConfidence,
		NeedsGeocoding: true,
		Note:           fmt.Sprintf("No specific regions found; %s distribution is reported country-wide", flower),
	}
}
