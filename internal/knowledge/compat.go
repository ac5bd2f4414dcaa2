package knowledge

import (
	"fmt"
	"strings"

	"bloomcore/internal/domain"
)

// Climate classes used by the compatibility rules.
const (
	ClimateTemperate     = "temperate"
	ClimateTropical      = "tropical"
	ClimateSubtropical   = "subtropical"
	ClimateMediterranean = "mediterranean"
	ClimateAlpine        = "alpine"
	ClimateAdaptable     = "adaptable"
)

// regionClimateRule infers a climate class from a region-name keyword.
// Rules are evaluated top to bottom; the first hit wins.
type regionClimateRule struct {
	climate  string
	keywords []string
}

var regionClimateRules = []regionClimateRule{
	{ClimateTropical, []string{
		"kerala", "tamil nadu", "goa", "assam", "western ghats", "bali",
		"singapore", "amazon", "florida", "hawaii", "madagascar", "okinawa",
	}},
	{ClimateAlpine, []string{
		"alaska", "himalaya", "tibet", "hokkaido", "alps", "andes",
		"valley of flowers", "sikkim", "ladakh",
	}},
	{ClimateMediterranean, []string{
		"provence", "tuscany", "andalusia", "california", "greece",
	}},
	{ClimateSubtropical, []string{
		"yunnan", "sichuan", "meghalaya", "coorg",
	}},
	{ClimateTemperate, []string{
		"netherlands", "kashmir", "srinagar", "uttarakhand", "japan", "tokyo",
		"kyoto", "scotland", "england", "france", "germany", "oregon",
		"washington", "vermont", "new york", "xinjiang", "new zealand",
	}},
}

// Pairs of climate classes considered implausible. Order inside a pair is
// normalized before lookup.
var climateConflicts = map[[2]string]bool{
	{ClimateTemperate, ClimateTropical}:     true,
	{ClimateMediterranean, ClimateTropical}: true,
	{ClimateAlpine, ClimateTropical}:        true,
	{ClimateAlpine, ClimateSubtropical}:     true,
}

// RegionClimate classifies a free-form region name into a climate class.
// Returns "" when no rule matches.
func RegionClimate(region string) string {
	normalized := strings.ToLower(region)
	for _, rule := range regionClimateRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.climate
			}
		}
	}
	return ""
}

// CheckCompatibility decides whether a species' climate requirement is
// plausible for the named region. Unknown regions and adaptable species are
// always compatible; only explicitly conflicting climate pairs produce a
// warning.
func CheckCompatibility(flower string, requirement, region string) domain.Compatibility {
	if requirement == "" || requirement == ClimateAdaptable {
		return domain.Compatibility{Compatible: true}
	}

	regionClass := RegionClimate(region)
	if regionClass == "" || regionClass == requirement {
		return domain.Compatibility{Compatible: true}
	}

	pair := [2]string{requirement, regionClass}
	if pair[0] > pair[1] {
		pair[0], pair[1] = pair[1], pair[0]
	}

	if climateConflicts[pair] {
		return domain.Compatibility{
			Compatible: false,
			Warning: fmt.Sprintf(
				"%s typically requires a %s climate, but %s has a %s climate; natural blooms are unlikely",
				flower, requirement, region, regionClass),
		}
	}

	return domain.Compatibility{Compatible: true}
}
