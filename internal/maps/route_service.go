// README: Google Maps directions for one itinerary day, used by the client to draw the route.
package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"wanderlust/internal/modules/itinerary"
)

// maxWaypoints is the Directions API limit on intermediate stops.
const maxWaypoints = 25

var ErrNoRoute = errors.New("no route found")

// Directions is the summary of a routed day.
type Directions struct {
	DistanceKm float64       `json:"distanceKm"`
	Duration   time.Duration `json:"-"`
	DurationS  int64         `json:"durationSeconds"`
	Polyline   string        `json:"polyline"`
	Legs       []Leg         `json:"legs"`
}

type Leg struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	DistanceKm float64 `json:"distanceKm"`
	DurationS  int64   `json:"durationSeconds"`
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DayDirections routes from the first to the last waypoint of the day through
// the ones in between.
func (s *RouteService) DayDirections(ctx context.Context, day itinerary.DayPlan, mode itinerary.TravelMode) (*Directions, error) {
	r, err := directionsRequest(day, mode)
	if err != nil {
		return nil, err
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	route := routes[0]
	out := &Directions{Polyline: route.OverviewPolyline.Points}
	for _, leg := range route.Legs {
		out.Duration += leg.Duration
		out.DistanceKm += float64(leg.Distance.Meters) / 1000
		out.Legs = append(out.Legs, Leg{
			Start:      leg.StartAddress,
			End:        leg.EndAddress,
			DistanceKm: float64(leg.Distance.Meters) / 1000,
			DurationS:  int64(leg.Duration.Seconds()),
		})
	}
	out.DurationS = int64(out.Duration.Seconds())
	return out, nil
}

func directionsRequest(day itinerary.DayPlan, mode itinerary.TravelMode) (*maps.DirectionsRequest, error) {
	wps := day.Waypoints
	if len(wps) < 2 {
		return nil, fmt.Errorf("%w: need at least two waypoints, have %d", ErrNoRoute, len(wps))
	}

	r := &maps.DirectionsRequest{
		Origin:      latLng(wps[0].Position),
		Destination: latLng(wps[len(wps)-1].Position),
		Mode:        maps.TravelModeDriving,
	}
	if mode == itinerary.ModeBike {
		r.Mode = maps.TravelModeBicycling
	}
	for _, wp := range wps[1 : len(wps)-1] {
		if len(r.Waypoints) == maxWaypoints {
			break
		}
		r.Waypoints = append(r.Waypoints, latLng(wp.Position))
	}
	return r, nil
}

func latLng(p itinerary.Position) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat(), p.Lng())
}
