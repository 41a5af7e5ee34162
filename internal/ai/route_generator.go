// README: Route generator: LLM call constrained by the route schema, with a fixed fallback itinerary.
package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wanderlust/internal/modules/itinerary"
)

// Gaps above this between consecutive days are logged, never rejected.
const maxContinuityGapKm = 5.0

// RouteResult is the outcome of a single generation. Itinerary is never nil.
type RouteResult struct {
	Itinerary *itinerary.Itinerary
	// Generated is false when the canned fallback was returned.
	Generated bool
	// Err holds the reason the fallback was used, if any.
	Err error
}

// RouteGenerator asks a TextGenerator for a three-day route and falls back to
// a fixed itinerary on any failure.
type RouteGenerator struct {
	llm      TextGenerator
	schema   *itinerary.RouteSchema
	fallback func() *itinerary.Itinerary
	log      *zap.Logger
}

// NewRouteGenerator wires the generator. fallback must return a fresh value per call.
func NewRouteGenerator(llm TextGenerator, schema *itinerary.RouteSchema, fallback func() *itinerary.Itinerary, log *zap.Logger) *RouteGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &RouteGenerator{llm: llm, schema: schema, fallback: fallback, log: log}
}

// Generate never fails; callers inspect RouteResult.Generated to see which path was taken.
func (g *RouteGenerator) Generate(ctx context.Context, country string, mode itinerary.TravelMode) RouteResult {
	raw, err := g.llm.GenerateJSON(ctx, BuildRoutePrompt(g.schema, country, mode))
	if err != nil {
		return g.fallBack(country, mode, fmt.Errorf("generate route: %w", err))
	}
	it, err := itinerary.Parse(raw)
	if err != nil {
		return g.fallBack(country, mode, fmt.Errorf("parse route: %w", err))
	}
	if !it.WithinModeBounds() {
		g.log.Info("generated route outside daily distance bounds",
			zap.String("country", country), zap.String("mode", string(mode)))
	}
	for i, day := range it.Days() {
		if line := day.StraightLineKm(); line > day.DailyDistance {
			g.log.Info("generated daily distance shorter than straight line",
				zap.String("country", country), zap.Int("day", i+1),
				zap.Float64("daily_km", day.DailyDistance), zap.Float64("straight_km", line))
		}
	}
	for i, gap := range it.ContinuityGapsKm() {
		if gap > maxContinuityGapKm {
			g.log.Info("generated day does not start where the previous one ended",
				zap.String("country", country), zap.Int("day", i+2), zap.Float64("gap_km", gap))
		}
	}
	return RouteResult{Itinerary: it, Generated: true}
}

func (g *RouteGenerator) fallBack(country string, mode itinerary.TravelMode, err error) RouteResult {
	g.log.Warn("route generation failed, using fallback itinerary",
		zap.String("country", country), zap.String("mode", string(mode)), zap.Error(err))
	return RouteResult{Itinerary: g.fallback(), Err: err}
}

// BuildRoutePrompt builds the route database prompt for a country and mode.
func BuildRoutePrompt(schema *itinerary.RouteSchema, country string, mode itinerary.TravelMode) Prompt {
	system := "You are a route database that outputs routes in JSON.\nThe JSON object must use the schema: " + schema.String()

	user := fmt.Sprintf(`Generate a detailed, three-day consecutive travel route through %s using a %s. The route should adhere to the following constraints:
1) For bikes: maximum of 80 km per day.
2) For cars: between 80 km and 300 km per day.
3) Each day's route must begin where the previous day's route ended.
Each day's route must include:
- The total distance in kilometers.
- Detailed waypoints, including name, position, and whether a trekking path is available.
- Descriptive information for each waypoint, including 2-3 sentences about points of interest.
- Information on any available trekking paths.
Maximize the number of waypoints while respecting the travel constraints. Ensure each day's route is cohesive and logical, with a recap summarizing the day's travel experience. Provide as much detail as possible to make the route engaging and informative.
Set "travelType" to %q.`, country, mode, string(mode))

	return Prompt{System: system, User: user, Schema: schema.Root()}
}
