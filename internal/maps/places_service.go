package maps

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"wanderlust/internal/modules/itinerary"
)

// ErrPlacesUnavailable is returned when every waypoint lookup of a day failed.
var ErrPlacesUnavailable = errors.New("places lookup failed")

// searchRadiusMeters bounds the text search around a waypoint's position.
const searchRadiusMeters = 2000

// Place represents a simplified location result.
type Place struct {
	Waypoint         string  `json:"waypoint"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
	log    *zap.Logger
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, log *zap.Logger, opts ...maps.ClientOption) (*PlacesService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, log: log}, nil
}

// LookupWaypoint finds the best matching place for a generated waypoint. It
// returns nil when nothing matches near the waypoint's position.
func (s *PlacesService) LookupWaypoint(ctx context.Context, wp itinerary.Waypoint) (*Place, error) {
	r := &maps.TextSearchRequest{
		Query:    wp.Name,
		Location: &maps.LatLng{Lat: wp.Position.Lat(), Lng: wp.Position.Lng()},
		Radius:   searchRadiusMeters,
	}
	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	result := resp.Results[0]
	return &Place{
		Waypoint:         wp.Name,
		Name:             result.Name,
		Address:          result.FormattedAddress,
		Rating:           result.Rating,
		PlaceID:          result.PlaceID,
		UserRatingsTotal: result.UserRatingsTotal,
	}, nil
}

// DayPlaces looks up every waypoint of a day. Failed or empty lookups are
// skipped and duplicates by place id are dropped. If no lookup succeeded the
// error wraps ErrPlacesUnavailable.
func (s *PlacesService) DayPlaces(ctx context.Context, day itinerary.DayPlan) ([]Place, error) {
	seen := make(map[string]bool)
	var out []Place
	var lastErr error
	failed := 0
	for _, wp := range day.Waypoints {
		p, err := s.LookupWaypoint(ctx, wp)
		if err != nil {
			s.log.Warn("waypoint place lookup failed", zap.String("waypoint", wp.Name), zap.Error(err))
			failed++
			lastErr = err
			continue
		}
		if p == nil {
			continue
		}
		if seen[p.PlaceID] {
			continue
		}
		seen[p.PlaceID] = true
		out = append(out, *p)
	}
	if failed > 0 && failed == len(day.Waypoints) {
		return nil, fmt.Errorf("%w: %w", ErrPlacesUnavailable, lastErr)
	}
	return out, nil
}
