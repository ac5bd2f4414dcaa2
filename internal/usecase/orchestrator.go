// Package usecase contains the application pipelines: bloom explanation
// orchestration and region ranking.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bloomcore/internal/domain"
	"bloomcore/internal/knowledge"
	"bloomcore/internal/metrics"
	"bloomcore/internal/ports"
	"bloomcore/internal/signals"
	"bloomcore/internal/synthesis"
)

// unavailableSummary replaces the research digest when search contributed
// nothing.
const unavailableSummary = "Web search temporarily unavailable"

// topSources bounds how many raw results are echoed back in a response.
const topSources = 3

// responseFactors is the fixed factor list for a full response.
var responseFactors = []string{
	"Temperature and seasonal variations",
	"Precipitation and water availability",
	"Day length (photoperiod)",
	"Soil composition and nutrients",
	"Pollinator populations",
	"Regional climate patterns",
}

// degradedFactors is the shortened list used when the pipeline timed out.
var degradedFactors = responseFactors[:3]

// abundanceByStatus maps a bloom status onto an abundance tier when no
// explicit abundance keyword matched.
var abundanceByStatus = map[domain.BloomStatus]domain.AbundanceLevel{
	domain.BloomStatusActive:      domain.AbundanceHigh,
	domain.BloomStatusUpcoming:    domain.AbundanceMedium,
	domain.BloomStatusPast:        domain.AbundanceLow,
	domain.BloomStatusNotSuitable: domain.AbundanceNone,
	domain.BloomStatusUnknown:     domain.AbundanceMedium,
}

// Request carries one orchestration call's inputs.
type Request struct {
	Region          string
	Flower          string
	VegetationScore *float64
	Coordinates     *[2]float64
	Climate         *domain.ClimateObservation
	Date            string
	Mode            domain.SearchMode
}

// Orchestrator coordinates search, context assembly, and explanation
// synthesis for one bloom query.
type Orchestrator struct {
	gatherer     ports.SearchGatherer
	mockGatherer ports.SearchGatherer
	engine       ports.ExplanationEngine
	locator      ports.RegionLocator

	hasLive           bool
	timeout           time.Duration
	defaultVegetation float64

	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewOrchestrator wires the orchestration pipeline. locator may be nil;
// responses then simply omit coordinates the caller did not supply. Remote
// geocoding stays out of this pipeline so context assembly never blocks on
// the network.
func NewOrchestrator(
	gatherer ports.SearchGatherer,
	mockGatherer ports.SearchGatherer,
	engine ports.ExplanationEngine,
	locator ports.RegionLocator,
	hasLive bool,
	timeout time.Duration,
	defaultVegetation float64,
	logger *slog.Logger,
	recorder *metrics.Recorder,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if defaultVegetation <= 0 {
		defaultVegetation = 0.7
	}
	return &Orchestrator{
		gatherer:          gatherer,
		mockGatherer:      mockGatherer,
		engine:            engine,
		locator:           locator,
		hasLive:           hasLive,
		timeout:           timeout,
		defaultVegetation: defaultVegetation,
		logger:            logger,
		recorder:          recorder,
		now:               time.Now,
	}
}

type searchOutcome struct {
	results []domain.SearchResult
	signals domain.ExtractedSignals
}

// Orchestrate runs the full pipeline. The only error it returns is invalid
// caller input; every downstream fault is folded into the response metadata.
func (o *Orchestrator) Orchestrate(ctx context.Context, req Request) (domain.OrchestrationResponse, error) {
	req.Region = strings.TrimSpace(req.Region)
	req.Flower = strings.TrimSpace(req.Flower)
	if req.Region == "" {
		return domain.OrchestrationResponse{}, fmt.Errorf("region is required")
	}
	if req.Flower == "" {
		return domain.OrchestrationResponse{}, fmt.Errorf("flower is required")
	}

	score := o.defaultVegetation
	if req.VegetationScore != nil {
		score = *req.VegetationScore
	}
	if score < 0 || score > 1 {
		return domain.OrchestrationResponse{}, fmt.Errorf("vegetation score %v out of range [0, 1]", score)
	}

	start := o.now()
	requestID := uuid.NewString()
	logger := o.logger.With("request_id", requestID, "region", req.Region, "flower", req.Flower)
	logger.Info("orchestrating bloom explanation")

	gatherer, substituted := o.selectGatherer(req.Mode)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	searchCh := make(chan searchOutcome, 1)
	contextCh := make(chan domain.BloomContext, 1)

	go func() {
		results := gatherer.Gather(ctx, req.Region, req.Flower)
		searchCh <- searchOutcome{results: results, signals: signals.Extract(results)}
	}()
	go func() {
		contextCh <- o.buildContext(req, score, start)
	}()

	var (
		search     searchOutcome
		bc         domain.BloomContext
		haveSearch bool
		haveCtx    bool
	)
	for !haveSearch || !haveCtx {
		select {
		case search = <-searchCh:
			haveSearch = true
		case bc = <-contextCh:
			haveCtx = true
		case <-ctx.Done():
			logger.Error("orchestration timed out", "timeout", o.timeout)
			resp := o.degradedResponse(req, score, "Timeout", start)
			resp.Metadata.RequestID = requestID
			o.recorder.Orchestration(true, o.now().Sub(start))
			return resp, nil
		}
	}

	searchOK := len(search.results) > 0
	summary := search.signals.Summary
	if !searchOK {
		summary = unavailableSummary
	}

	explanation, llmUsed := o.engine.Explain(ctx, bc, summary)

	resp := o.buildResponse(req, bc, search, explanation, start)
	resp.Metadata.RequestID = requestID
	resp.Metadata.LLMUsed = llmUsed
	resp.Metadata.SearchAvailable = searchOK
	resp.Metadata.Degraded = substituted || !searchOK

	logger.Info("orchestration complete",
		"processing_time_ms", resp.Metadata.ProcessingTimeMS,
		"degraded", resp.Metadata.Degraded,
		"llm_used", llmUsed)
	o.recorder.Orchestration(resp.Metadata.Degraded, o.now().Sub(start))
	return resp, nil
}

// selectGatherer picks live or mock search. Auto mode substitutes the mock
// when no live provider is usable, and that substitution marks the response
// degraded.
func (o *Orchestrator) selectGatherer(mode domain.SearchMode) (ports.SearchGatherer, bool) {
	switch mode {
	case domain.SearchModeMock:
		return o.mockGatherer, false
	case domain.SearchModeLive:
		return o.gatherer, false
	default:
		if o.hasLive {
			return o.gatherer, false
		}
		return o.mockGatherer, true
	}
}

// buildContext assembles the knowledge-base context. Coordinate lookup uses
// local data only; regions the dataset does not know stay uncoordinated here.
func (o *Orchestrator) buildContext(req Request, score float64, start time.Time) domain.BloomContext {
	coords := req.Coordinates
	if coords == nil && o.locator != nil {
		if resolved, ok := o.locator.Locate(req.Region, ""); ok {
			coords = &resolved
		}
	}
	return knowledge.BuildContext(knowledge.ContextRequest{
		Region:          req.Region,
		Flower:          req.Flower,
		VegetationScore: score,
		Coordinates:     coords,
		Climate:         req.Climate,
		Date:            req.Date,
		Now:             start,
	})
}

func (o *Orchestrator) buildResponse(
	req Request,
	bc domain.BloomContext,
	search searchOutcome,
	explanation string,
	start time.Time,
) domain.OrchestrationResponse {
	searchOK := len(search.results) > 0

	abundance := bc.AbundanceLevel
	season := bc.Season
	bloomPeriod := bc.KnownBloomPeriod
	if searchOK {
		if signals.AbundanceMatched(search.results) {
			abundance = search.signals.Abundance
		} else {
			abundance = abundanceByStatus[search.signals.BloomStatus]
		}
		if search.signals.Season != signals.DefaultSeason {
			season = search.signals.Season
			bloomPeriod = search.signals.Season
		}
	}

	sources := search.results
	if len(sources) > topSources {
		sources = sources[:topSources]
	}
	summary := search.signals.Summary
	if !searchOK {
		summary = unavailableSummary
	}

	return domain.OrchestrationResponse{
		Region:           req.Region,
		Flower:           bc.Flower,
		VegetationScore:  bc.VegetationScore,
		AbundanceLevel:   abundance,
		Season:           season,
		Climate:          bc.Climate,
		KnownBloomPeriod: bloomPeriod,
		Notes:            bc.Notes,
		Explanation:      explanation,
		Factors:          responseFactors,
		WebResearch: domain.WebResearch{
			Summary:     summary,
			SourceCount: len(search.results),
			Sources:     sources,
		},
		Metadata: domain.ResponseMetadata{
			Timestamp:        o.now().UTC(),
			ProcessingTimeMS: o.now().Sub(start).Milliseconds(),
		},
	}
}

// degradedResponse is the structurally complete answer produced when the
// pipeline could not finish in time. It relies only on the static knowledge
// base, never on in-flight sub-unit state.
func (o *Orchestrator) degradedResponse(req Request, score float64, cause string, start time.Time) domain.OrchestrationResponse {
	species := knowledge.Lookup(req.Flower)
	bc := knowledge.BuildContext(knowledge.ContextRequest{
		Region:          req.Region,
		Flower:          req.Flower,
		VegetationScore: score,
		Climate:         req.Climate,
		Date:            req.Date,
		Now:             start,
	})

	return domain.OrchestrationResponse{
		Region:           req.Region,
		Flower:           domain.Flower{CommonName: req.Flower, ScientificName: species.ScientificName},
		VegetationScore:  score,
		AbundanceLevel:   knowledge.AbundanceFromVegetation(score),
		Season:           bc.Season,
		Climate:          bc.Climate,
		KnownBloomPeriod: species.BloomPeriod,
		Notes:            bc.Notes,
		Explanation:      synthesis.FallbackExplanation(bc),
		Factors:          degradedFactors,
		WebResearch: domain.WebResearch{
			Summary:     "Search unavailable",
			SourceCount: 0,
			Sources:     []domain.SearchResult{},
		},
		Metadata: domain.ResponseMetadata{
			Timestamp:        o.now().UTC(),
			ProcessingTimeMS: o.now().Sub(start).Milliseconds(),
			Degraded:         true,
			Error:            cause,
		},
	}
}
