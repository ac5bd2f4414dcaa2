package synthesis

import (
	"fmt"
	"strings"

	"bloomcore/internal/domain"
)

// systemPrompt frames the model as a botany advisor.
const systemPrompt = "You are a botanist and remote-sensing analyst. You explain " +
	"flower bloom patterns clearly and accurately for a general audience, " +
	"grounding every claim in the provided observations."

// buildPrompt renders the user message from the assembled bloom context and
// the web research digest.
func buildPrompt(bc domain.BloomContext, searchSummary string) string {
	var b strings.Builder

	b.WriteString("Generate a comprehensive, scientifically accurate explanation of the blooming patterns for the specified flower.\n\n")
	b.WriteString("Context Data:\n")
	fmt.Fprintf(&b, "- Region: %s\n", bc.Region)
	fmt.Fprintf(&b, "- Flower: %s (%s)\n", bc.Flower.CommonName, bc.Flower.ScientificName)
	fmt.Fprintf(&b, "- Current NDVI Score: %g (Abundance Level: %s)\n", bc.VegetationScore, bc.AbundanceLevel)
	fmt.Fprintf(&b, "- Season: %s\n", bc.Season)
	fmt.Fprintf(&b, "- Known Bloom Period: %s\n", bc.KnownBloomPeriod)
	fmt.Fprintf(&b, "- Climate: %s\n", bc.Climate)
	fmt.Fprintf(&b, "- Observations: %s", bc.Notes)
	if !bc.Compatibility.Compatible {
		fmt.Fprintf(&b, "\n- Compatibility Warning: %s", bc.Compatibility.Warning)
	}
	if searchSummary != "" {
		fmt.Fprintf(&b, "\n- Recent Research & News:\n%s", searchSummary)
	}

	b.WriteString("\n\nProvide a comprehensive explanation covering:\n")
	b.WriteString("1. Current bloom status and what the NDVI score indicates\n")
	b.WriteString("2. Ecological factors influencing bloom patterns in this region\n")
	b.WriteString("3. Seasonal timing and photoperiod effects\n")
	b.WriteString("4. Climate and environmental conditions\n")
	b.WriteString("5. Ecological or agricultural significance\n")
	b.WriteString("6. Any notable patterns or recommendations for observers\n\n")
	b.WriteString("Keep the explanation informative yet accessible, around 150-250 words. ")
	b.WriteString("Be confident and authoritative, incorporating the latest research findings if available.")

	return b.String()
}
