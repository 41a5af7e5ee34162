package itinerary

import "math"

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(a, b Position) float64 {
	dLat := degreesToRadians(b.Lat() - a.Lat())
	dLng := degreesToRadians(b.Lng() - a.Lng())

	rLat1 := degreesToRadians(a.Lat())
	rLat2 := degreesToRadians(b.Lat())

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// StraightLineKm is the sum of great-circle hops between consecutive
// waypoints, a lower bound for the real daily distance.
func (d DayPlan) StraightLineKm() float64 {
	var km float64
	for i := 1; i < len(d.Waypoints); i++ {
		km += haversineKm(d.Waypoints[i-1].Position, d.Waypoints[i].Position)
	}
	return km
}

// ContinuityGapsKm returns, for day 2 and day 3, how far the first waypoint is
// from the previous day's last waypoint.
func (it *Itinerary) ContinuityGapsKm() []float64 {
	days := it.Days()
	gaps := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		prev, next := days[i-1].Waypoints, days[i].Waypoints
		if len(prev) == 0 || len(next) == 0 {
			gaps = append(gaps, 0)
			continue
		}
		gaps = append(gaps, haversineKm(prev[len(prev)-1].Position, next[0].Position))
	}
	return gaps
}
