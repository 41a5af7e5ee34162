// README: Route handler (POST /generate-route).
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderlust/internal/modules/itinerary"
	"wanderlust/internal/service"
)

type TripPlanner interface {
	PlanTrip(ctx context.Context, country string, mode itinerary.TravelMode) service.PlannedTrip
}

type RouteHandler struct {
	planner TripPlanner
}

func NewRouteHandler(planner TripPlanner) *RouteHandler {
	return &RouteHandler{planner: planner}
}

type generateRouteReq struct {
	Country    string `json:"country"`
	TravelType string `json:"travelType"`
}

// Generate handles POST /generate-route. Generation failures are answered
// with the fallback itinerary, so only bad input is an error here.
func (h *RouteHandler) Generate(c *gin.Context) {
	var req generateRouteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Country = strings.TrimSpace(req.Country)
	mode := itinerary.TravelMode(strings.ToLower(strings.TrimSpace(req.TravelType)))
	if req.Country == "" {
		writeError(c, http.StatusBadRequest, "missing country")
		return
	}
	if !mode.Valid() {
		writeError(c, http.StatusBadRequest, "travelType must be car or bike")
		return
	}

	planned := h.planner.PlanTrip(c.Request.Context(), req.Country, mode)
	writeJSON(c, http.StatusOK, planned.Itinerary)
}
