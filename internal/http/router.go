// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust/internal/http/handlers"
	"wanderlust/internal/http/middleware"
)

type RouterDeps struct {
	Planner     handlers.TripPlanner
	Images      handlers.ImageJobs
	Trips       handlers.TripReader
	ImageStatus handlers.ImageStatus
	// Directions and Places are optional.
	Directions handlers.Directions
	Places     handlers.Places

	CORSOrigin string
	Log        *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log), middleware.CORS(deps.CORSOrigin))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)

	routeHandler := handlers.NewRouteHandler(deps.Planner)
	r.POST("/generate-route", routeHandler.Generate)

	imageHandler := handlers.NewImageHandler(deps.Images, log)
	r.GET("/generate-image", imageHandler.Generate)

	tripHandler := handlers.NewTripHandler(deps.Trips, deps.ImageStatus, deps.Directions, deps.Places, log)
	trips := r.Group("/trips/:id")
	trips.GET("", tripHandler.Get)
	trips.GET("/image-status", tripHandler.ImageStatus)
	trips.GET("/directions", tripHandler.Directions)
	trips.GET("/places", tripHandler.Places)

	return r
}
