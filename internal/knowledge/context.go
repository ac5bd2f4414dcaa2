package knowledge

import (
	"fmt"
	"time"

	"bloomcore/internal/domain"
)

// ContextRequest carries the inputs needed to assemble a BloomContext.
type ContextRequest struct {
	Region          string
	Flower          string
	VegetationScore float64
	Coordinates     *[2]float64
	Climate         *domain.ClimateObservation
	Date            string
	Now             time.Time
}

const noClimateData = "Climate data not available"

// BuildContext assembles the per-request bloom context from the static
// knowledge base. Pure and fast: no network, no shared mutable state.
func BuildContext(req ContextRequest) domain.BloomContext {
	species := Lookup(req.Flower)

	at := req.Now
	if at.IsZero() {
		at = time.Now()
	}
	if req.Date != "" {
		if parsed, err := time.Parse("2006-01-02", req.Date); err == nil {
			at = parsed
		}
	}

	date := req.Date
	if date == "" {
		date = at.Format("2006-01-02")
	}

	climate := noClimateData
	if req.Climate != nil {
		climate = fmt.Sprintf("Temperature: %.1f°C, Precipitation: %.1fmm",
			req.Climate.TemperatureC, req.Climate.PrecipitationMM)
	}

	return domain.BloomContext{
		Region: req.Region,
		Flower: domain.Flower{
			CommonName:     req.Flower,
			ScientificName: species.ScientificName,
		},
		VegetationScore:    req.VegetationScore,
		AbundanceLevel:     AbundanceFromVegetation(req.VegetationScore),
		Season:             SeasonLabel(at),
		KnownBloomPeriod:   species.BloomPeriod,
		ClimateRequirement: species.ClimateRequirement,
		Climate:            climate,
		Compatibility:      CheckCompatibility(req.Flower, species.ClimateRequirement, req.Region),
		Notes:              VegetationNotes(req.VegetationScore),
		Coordinates:        req.Coordinates,
		Date:               date,
	}
}
