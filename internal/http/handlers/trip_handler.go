// README: Trip read-back handlers: stored itinerary, image job status, per-day directions and places.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust/internal/maps"
	"wanderlust/internal/modules/imagejob"
	"wanderlust/internal/modules/itinerary"
)

type TripReader interface {
	Get(ctx context.Context, id string) (*itinerary.Itinerary, error)
}

type ImageStatus interface {
	Get(ctx context.Context, tripID string) (*imagejob.Snapshot, error)
}

type Directions interface {
	DayDirections(ctx context.Context, day itinerary.DayPlan, mode itinerary.TravelMode) (*maps.Directions, error)
}

type Places interface {
	DayPlaces(ctx context.Context, day itinerary.DayPlan) ([]maps.Place, error)
}

type TripHandler struct {
	trips      TripReader
	status     ImageStatus
	directions Directions
	places     Places
	log        *zap.Logger
}

// NewTripHandler builds the handler. directions and places may be nil when no
// Maps key is configured; their endpoints then answer 503.
func NewTripHandler(trips TripReader, status ImageStatus, directions Directions, places Places, log *zap.Logger) *TripHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripHandler{trips: trips, status: status, directions: directions, places: places, log: log}
}

// Get handles GET /trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	it, ok := h.loadTrip(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// ImageStatus handles GET /trips/:id/image-status.
func (h *TripHandler) ImageStatus(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	snap, err := h.status.Get(c.Request.Context(), id)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snap)
}

// Directions handles GET /trips/:id/directions?day=N.
func (h *TripHandler) Directions(c *gin.Context) {
	if h.directions == nil {
		writeError(c, http.StatusServiceUnavailable, "directions not configured")
		return
	}
	it, day, ok := h.loadDay(c)
	if !ok {
		return
	}
	d, err := h.directions.DayDirections(c.Request.Context(), day, it.TravelMode)
	if err != nil {
		if errors.Is(err, maps.ErrNoRoute) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("day directions", zap.String("trip_id", it.ID), zap.Error(err))
		writeError(c, http.StatusBadGateway, "directions lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, d)
}

// Places handles GET /trips/:id/places?day=N.
func (h *TripHandler) Places(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "places not configured")
		return
	}
	it, day, ok := h.loadDay(c)
	if !ok {
		return
	}
	places, err := h.places.DayPlaces(c.Request.Context(), day)
	if err != nil {
		h.log.Error("day places", zap.String("trip_id", it.ID), zap.Error(err))
		writeError(c, http.StatusBadGateway, "places lookup failed")
		return
	}
	if places == nil {
		places = []maps.Place{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"places": places})
}

func (h *TripHandler) loadTrip(c *gin.Context) (*itinerary.Itinerary, bool) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return nil, false
	}
	it, err := h.trips.Get(c.Request.Context(), id)
	if err != nil {
		writeTripError(c, err)
		return nil, false
	}
	return it, true
}

func (h *TripHandler) loadDay(c *gin.Context) (*itinerary.Itinerary, itinerary.DayPlan, bool) {
	n, err := strconv.Atoi(c.DefaultQuery("day", "1"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "day must be 1, 2 or 3")
		return nil, itinerary.DayPlan{}, false
	}
	it, ok := h.loadTrip(c)
	if !ok {
		return nil, itinerary.DayPlan{}, false
	}
	day, ok := it.Day(n)
	if !ok {
		writeError(c, http.StatusBadRequest, "day must be 1, 2 or 3")
		return nil, itinerary.DayPlan{}, false
	}
	return it, day, true
}
