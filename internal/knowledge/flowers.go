package knowledge

import (
	"fmt"
	"strings"
	"time"

	"bloomcore/internal/domain"
)

// Species captures what the static knowledge base knows about one flower.
type Species struct {
	ScientificName     string
	BloomPeriod        string
	ClimateRequirement string
}

// unknownSpecies is returned for flowers outside the catalogue.
var unknownSpecies = Species{
	ScientificName:     "Unknown species",
	BloomPeriod:        "Varies by region",
	ClimateRequirement: ClimateAdaptable,
}

var catalogue = map[string]Species{
	"rose":           {"Rosa", "May to September", ClimateTemperate},
	"rhododendron":   {"Rhododendron arboreum", "March to May", ClimateTemperate},
	"sunflower":      {"Helianthus annuus", "June to September", ClimateTemperate},
	"tulip":          {"Tulipa", "March to May", ClimateTemperate},
	"cherry blossom": {"Prunus serrulata", "March to April", ClimateTemperate},
	"lotus":          {"Nelumbo nucifera", "June to August", ClimateTropical},
	"jasmine":        {"Jasminum", "June to September", ClimateSubtropical},
	"marigold":       {"Tagetes", "July to October", ClimateAdaptable},
	"lavender":       {"Lavandula", "June to August", ClimateMediterranean},
	"orchid":         {"Orchidaceae", "Year-round (varies)", ClimateTropical},
}

// Lookup returns the catalogue entry for a common name, or the unknown-species
// placeholder. Matching is case-insensitive.
func Lookup(commonName string) Species {
	key := strings.ToLower(strings.TrimSpace(commonName))
	if sp, ok := catalogue[key]; ok {
		return sp
	}
	return unknownSpecies
}

// CurrentSeason names the meteorological season for t (northern hemisphere).
func CurrentSeason(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	case time.September, time.October, time.November:
		return "Autumn"
	default:
		return "Winter"
	}
}

// SeasonLabel renders the season plus year, e.g. "Spring 2026".
func SeasonLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", CurrentSeason(t), t.Year())
}

// VegetationNotes maps a vegetation-index score onto an observation note.
// Thresholds mirror the satellite-analysis calibration: 0.8, 0.6, 0.3.
func VegetationNotes(score float64) string {
	switch {
	case score >= 0.8:
		return "Peak blooming observed, excellent vegetation health"
	case score >= 0.6:
		return "Active bloom period, favorable conditions"
	case score >= 0.3:
		return "Moderate bloom activity, typical for season"
	default:
		return "Low vegetation activity, may be off-season or stress conditions"
	}
}

// AbundanceFromVegetation converts a vegetation-index score into the default
// abundance tier used when no search-derived signal is available.
func AbundanceFromVegetation(score float64) domain.AbundanceLevel {
	switch {
	case score >= 0.7:
		return domain.AbundanceHigh
	case score >= 0.4:
		return domain.AbundanceMedium
	default:
		return domain.AbundanceLow
	}
}
