package domain

import "time"

// BloomStatus is the categorical flowering state derived from search text.
type BloomStatus string

const (
	BloomStatusActive      BloomStatus = "active"
	BloomStatusUpcoming    BloomStatus = "upcoming"
	BloomStatusPast        BloomStatus = "past"
	BloomStatusNotSuitable BloomStatus = "not_suitable"
	BloomStatusUnknown     BloomStatus = "unknown"
)

// AbundanceLevel describes how common or visible blooms currently are.
type AbundanceLevel string

const (
	AbundanceHigh    AbundanceLevel = "high"
	AbundanceMedium  AbundanceLevel = "medium"
	AbundanceLow     AbundanceLevel = "low"
	AbundanceNone    AbundanceLevel = "none"
	AbundanceUnknown AbundanceLevel = "unknown"
)

// SearchMode selects between live providers and the deterministic generator.
type SearchMode string

const (
	SearchModeAuto SearchMode = "auto"
	SearchModeLive SearchMode = "live"
	SearchModeMock SearchMode = "mock"
)

// Flower identifies a species by its common and scientific names.
type Flower struct {
	CommonName     string `json:"common_name"`
	ScientificName string `json:"scientific_name"`
}

// ClimateObservation carries optional caller-supplied climate measurements.
type ClimateObservation struct {
	TemperatureC    float64 `json:"temperature"`
	PrecipitationMM float64 `json:"precipitation"`
}

// Compatibility is the outcome of the climate compatibility check.
type Compatibility struct {
	Compatible bool   `json:"compatible"`
	Warning    string `json:"warning,omitempty"`
}

// BloomContext is the deterministic per-request context assembled from the
// knowledge base. It is built once and never mutated afterwards.
type BloomContext struct {
	Region             string         `json:"region"`
	Flower             Flower         `json:"flower"`
	VegetationScore    float64        `json:"ndvi_score"`
	AbundanceLevel     AbundanceLevel `json:"abundance_level"`
	Season             string         `json:"season"`
	KnownBloomPeriod   string         `json:"known_bloom_period"`
	ClimateRequirement string         `json:"climate_requirement"`
	Climate            string         `json:"climate"`
	Compatibility      Compatibility  `json:"compatibility"`
	Notes              string         `json:"notes"`
	Coordinates        *[2]float64    `json:"coordinates,omitempty"`
	Date               string         `json:"date,omitempty"`
}

// SearchResult is a single hit returned by a search provider. The sequence
// produced for a request is append-only and never mutated.
type SearchResult struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// ExtractedSignals holds the structured signals classified from a search
// result sequence. Derived deterministically, recomputed fresh per request.
type ExtractedSignals struct {
	BloomStatus BloomStatus    `json:"bloom_status"`
	Season      string         `json:"season"`
	Abundance   AbundanceLevel `json:"abundance"`
	Summary     string         `json:"summary"`
	SourceCount int            `json:"source_count"`
}

// RegionCandidate is a place name mined from search text. Candidates are
// created by the ranker and later enriched in place by geocoding; a failed
// enrichment leaves NeedsGeocoding set without removing the candidate.
type RegionCandidate struct {
	Name           string      `json:"name"`
	Country        string      `json:"country"`
	FullName       string      `json:"full_name"`
	Mentions       int         `json:"mentions"`
	Confidence     float64     `json:"confidence"`
	Coordinates    *[2]float64 `json:"coordinates,omitempty"` // [longitude, latitude]
	NeedsGeocoding bool        `json:"needs_geocoding"`
	Note           string      `json:"note,omitempty"`
}

// WebResearch summarizes what the search gatherer contributed to a response.
type WebResearch struct {
	Summary     string         `json:"summary"`
	SourceCount int            `json:"source_count"`
	Sources     []SearchResult `json:"sources"`
}

// ResponseMetadata records how a response was produced.
type ResponseMetadata struct {
	RequestID        string    `json:"request_id"`
	Timestamp        time.Time `json:"timestamp"`
	ProcessingTimeMS int64     `json:"processing_time_ms"`
	LLMUsed          bool      `json:"llm_used"`
	SearchAvailable  bool      `json:"search_available"`
	Degraded         bool      `json:"degraded"`
	Error            string    `json:"error,omitempty"`
}

// OrchestrationResponse is the terminal output of an orchestration call.
// One is always produced: failures are folded into the metadata instead of
// propagating to the caller.
type OrchestrationResponse struct {
	Region           string           `json:"region"`
	Flower           Flower           `json:"flower"`
	VegetationScore  float64          `json:"ndvi_score"`
	AbundanceLevel   AbundanceLevel   `json:"abundance_level"`
	Season           string           `json:"season"`
	Climate          string           `json:"climate"`
	KnownBloomPeriod string           `json:"known_bloom_period"`
	Notes            string           `json:"notes"`
	Explanation      string           `json:"explanation"`
	Factors          []string         `json:"factors"`
	WebResearch      WebResearch      `json:"web_research"`
	Metadata         ResponseMetadata `json:"metadata"`
}

// TopRegionsResult is the output of the region-ranking pipeline.
type TopRegionsResult struct {
	Country          string            `json:"country"`
	Flower           string            `json:"flower"`
	Regions          []RegionCandidate `json:"top_regions"`
	TotalSources     int               `json:"total_sources"`
	ExtractionMethod string            `json:"extraction_method"`
	Error            string            `json:"error,omitempty"`
}
