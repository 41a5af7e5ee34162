// README: Trip planner: generates a route (or the fallback) and persists it, returning the stored identifier.
package service

import (
	"context"

	"go.uber.org/zap"

	"wanderlust/internal/ai"
	"wanderlust/internal/modules/itinerary"
)

// RouteGenerator produces an itinerary for a country; it never fails.
type RouteGenerator interface {
	Generate(ctx context.Context, country string, mode itinerary.TravelMode) ai.RouteResult
}

// TripSaver persists an itinerary, reporting whether an id was assigned.
type TripSaver interface {
	Save(ctx context.Context, it *itinerary.Itinerary) (string, bool)
}

// PlannedTrip is what the client receives. Itinerary.ID is empty when the
// trip could not be saved.
type PlannedTrip struct {
	Itinerary *itinerary.Itinerary
	Generated bool
}

// TripPlanner orchestrates route generation and persistence.
type TripPlanner struct {
	routes RouteGenerator
	trips  TripSaver
	log    *zap.Logger
}

func NewTripPlanner(routes RouteGenerator, trips TripSaver, log *zap.Logger) *TripPlanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripPlanner{routes: routes, trips: trips, log: log}
}

// PlanTrip generates and saves a three-day itinerary. Storage failures are
// not returned; the itinerary is still delivered without an id.
func (p *TripPlanner) PlanTrip(ctx context.Context, country string, mode itinerary.TravelMode) PlannedTrip {
	res := p.routes.Generate(ctx, country, mode)
	it := res.Itinerary
	it.ID = ""

	if id, ok := p.trips.Save(ctx, it); ok {
		it.ID = id
	}
	p.log.Info("trip planned",
		zap.String("country", country),
		zap.String("mode", string(mode)),
		zap.Bool("generated", res.Generated),
		zap.String("trip_id", it.ID),
	)
	return PlannedTrip{Itinerary: it, Generated: res.Generated}
}
