// README: Itinerary aggregate (three consecutive days of waypoints) and travel modes.
package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type TravelMode string

const (
	ModeCar  TravelMode = "car"
	ModeBike TravelMode = "bike"
)

// Valid reports whether m is one of the recognised travel modes.
func (m TravelMode) Valid() bool {
	return m == ModeCar || m == ModeBike
}

// DailyBounds returns the allowed kilometres per day for the mode.
func (m TravelMode) DailyBounds() (min, max float64) {
	switch m {
	case ModeBike:
		return 0, 80
	case ModeCar:
		return 80, 300
	default:
		return 0, 0
	}
}

// Position is a latitude/longitude pair encoded as a two element JSON array.
type Position [2]float64

func (p Position) Lat() float64 { return p[0] }
func (p Position) Lng() float64 { return p[1] }

func (p *Position) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SchemaValidationError{Field: "position", Reason: "must be an array of numbers"}
	}
	if len(raw) != 2 {
		return &SchemaValidationError{Field: "position", Reason: fmt.Sprintf("expected 2 numbers, got %d", len(raw))}
	}
	p[0], p[1] = raw[0], raw[1]
	return nil
}

type Waypoint struct {
	Name        string   `json:"name"`
	Position    Position `json:"position"`
	Information string   `json:"information"`
	HasTrek     bool     `json:"hasTrek"`
	TrekDetails string   `json:"trekDetails,omitempty"`

	// absent names the first required key missing from the decoded JSON.
	absent string
}

func (w *Waypoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        *string   `json:"name"`
		Position    *Position `json:"position"`
		Information *string   `json:"information"`
		HasTrek     *bool     `json:"hasTrek"`
		TrekDetails string    `json:"trekDetails"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*w = Waypoint{TrekDetails: raw.TrekDetails}
	switch {
	case raw.Name == nil:
		w.absent = "name"
	case raw.Position == nil:
		w.absent = "position"
	case raw.Information == nil:
		w.absent = "information"
	case raw.HasTrek == nil:
		w.absent = "hasTrek"
	}
	if raw.Name != nil {
		w.Name = *raw.Name
	}
	if raw.Position != nil {
		w.Position = *raw.Position
	}
	if raw.Information != nil {
		w.Information = *raw.Information
	}
	if raw.HasTrek != nil {
		w.HasTrek = *raw.HasTrek
	}
	return nil
}

// Waypoints accepts either a JSON array or a single object; models following
// the object-shaped schema sometimes return one waypoint without the array.
type Waypoints []Waypoint

func (w *Waypoints) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one Waypoint
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return err
		}
		*w = Waypoints{one}
		return nil
	}
	var many []Waypoint
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return err
	}
	*w = many
	return nil
}

type DayPlan struct {
	Waypoints     Waypoints `json:"waypoints"`
	DailyDistance float64   `json:"dailyDistance"`
	DayRecap      string    `json:"dayRecap"`
}

// Itinerary is a generated trip. ID is assigned by the trip store and ImageURL
// is written once, after the image job finishes.
type Itinerary struct {
	ID            string     `json:"tripId,omitempty"`
	Country       string     `json:"Country"`
	TravelMode    TravelMode `json:"travelType"`
	TotalDistance float64    `json:"TotalDistance"`
	Day1          DayPlan    `json:"Day1"`
	Day2          DayPlan    `json:"Day2"`
	Day3          DayPlan    `json:"Day3"`
	ImageURL      string     `json:"imageUrl,omitempty"`
}

// Days returns the three day plans in travel order.
func (it *Itinerary) Days() []DayPlan {
	return []DayPlan{it.Day1, it.Day2, it.Day3}
}

// Day returns the plan for day n (1-based).
func (it *Itinerary) Day(n int) (DayPlan, bool) {
	switch n {
	case 1:
		return it.Day1, true
	case 2:
		return it.Day2, true
	case 3:
		return it.Day3, true
	default:
		return DayPlan{}, false
	}
}

// WithinModeBounds reports whether every day honours the travel mode limits.
// Generation does not reject on this; it exists for logging and tests.
func (it *Itinerary) WithinModeBounds() bool {
	lo, hi := it.TravelMode.DailyBounds()
	if hi == 0 {
		return false
	}
	for _, d := range it.Days() {
		if d.DailyDistance < lo || d.DailyDistance > hi {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (it *Itinerary) Clone() *Itinerary {
	if it == nil {
		return nil
	}
	cp := *it
	cp.Day1 = it.Day1.clone()
	cp.Day2 = it.Day2.clone()
	cp.Day3 = it.Day3.clone()
	return &cp
}

func (d DayPlan) clone() DayPlan {
	cp := d
	if d.Waypoints != nil {
		cp.Waypoints = make(Waypoints, len(d.Waypoints))
		copy(cp.Waypoints, d.Waypoints)
	}
	return cp
}
