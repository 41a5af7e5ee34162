package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SchemaValidationError reports decoded model output that does not match the
// itinerary data model.
type SchemaValidationError struct {
	Field  string
	Reason string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("itinerary schema: %s: %s", e.Field, e.Reason)
}

// Parse decodes raw model output into an Itinerary and checks it structurally.
// Travel constraints (distance bounds, continuity) are not re-checked here.
func Parse(raw string) (*Itinerary, error) {
	clean := cleanJSONString(raw)
	if clean == "" {
		return nil, &SchemaValidationError{Field: "document", Reason: "empty response"}
	}

	var it Itinerary
	if err := json.Unmarshal([]byte(clean), &it); err != nil {
		var sve *SchemaValidationError
		if errors.As(err, &sve) {
			return nil, sve
		}
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	if err := Validate(&it); err != nil {
		return nil, err
	}
	// Identifiers are store-assigned; never trust one coming from the model.
	it.ID = ""
	it.ImageURL = ""
	return &it, nil
}

// Validate checks the structural invariants of an itinerary.
func Validate(it *Itinerary) error {
	if strings.TrimSpace(it.Country) == "" {
		return &SchemaValidationError{Field: "Country", Reason: "missing"}
	}
	if !it.TravelMode.Valid() {
		return &SchemaValidationError{Field: "travelType", Reason: fmt.Sprintf("unknown mode %q", it.TravelMode)}
	}
	if it.TotalDistance < 0 {
		return &SchemaValidationError{Field: "TotalDistance", Reason: "negative"}
	}
	for i, day := range it.Days() {
		field := fmt.Sprintf("Day%d", i+1)
		if day.DailyDistance < 0 {
			return &SchemaValidationError{Field: field + ".dailyDistance", Reason: "negative"}
		}
		if len(day.Waypoints) == 0 {
			return &SchemaValidationError{Field: field + ".waypoints", Reason: "no waypoints"}
		}
		for j, wp := range day.Waypoints {
			wpField := fmt.Sprintf("%s.waypoints[%d]", field, j)
			if wp.absent != "" {
				return &SchemaValidationError{Field: wpField + "." + wp.absent, Reason: "missing"}
			}
			if strings.TrimSpace(wp.Name) == "" {
				return &SchemaValidationError{Field: wpField + ".name", Reason: "missing"}
			}
			if wp.Position.Lat() < -90 || wp.Position.Lat() > 90 || wp.Position.Lng() < -180 || wp.Position.Lng() > 180 {
				return &SchemaValidationError{Field: wpField + ".position", Reason: "out of range"}
			}
		}
	}
	return nil
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```).
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
