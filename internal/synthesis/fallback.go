package synthesis

import (
	"fmt"
	"strings"

	"bloomcore/internal/domain"
)

// FallbackExplanation renders the deterministic template used when no chat
// client is configured or the call fails. Same context in, same text out.
func FallbackExplanation(bc domain.BloomContext) string {
	score := bc.VegetationScore

	activity := "limited"
	condition := "early or late season conditions"
	switch {
	case score >= 0.7:
		activity = "excellent"
		condition = "peak flowering conditions"
	case score >= 0.4:
		activity = "moderate"
		condition = "active growth with emerging blooms"
	}

	var b strings.Builder

	fmt.Fprintf(&b,
		"Based on satellite NDVI analysis (score: %g), %s is currently experiencing %s bloom activity in %s.\n\n",
		score, bc.Flower.CommonName, bc.AbundanceLevel, bc.Region)
	fmt.Fprintf(&b,
		"The vegetation index indicates %s photosynthetic activity, suggesting %s.\n\n",
		activity, condition)
	b.WriteString("Ecological factors influencing bloom patterns include:\n")
	b.WriteString("1. Seasonal temperature variations triggering flowering hormones\n")
	b.WriteString("2. Precipitation patterns affecting water availability and soil moisture\n")
	b.WriteString("3. Day length (photoperiod) signaling seasonal changes\n")
	fmt.Fprintf(&b, "4. Local climate conditions specific to %s\n", bc.Region)
	b.WriteString("5. Pollinator populations facilitating reproduction\n\n")
	fmt.Fprintf(&b,
		"The current %s period aligns with the typical bloom window of %s. %s. ",
		bc.Season, bc.KnownBloomPeriod, bc.Notes)

	if !bc.Compatibility.Compatible && bc.Compatibility.Warning != "" {
		fmt.Fprintf(&b, "Note that %s. ", bc.Compatibility.Warning)
	}

	b.WriteString("This species plays an important role in the local ecosystem, " +
		"supporting pollinator populations and contributing to regional biodiversity.")

	return b.String()
}
