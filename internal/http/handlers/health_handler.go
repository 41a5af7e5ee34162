package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health.
func Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
}

// Root handles GET / with a plain-text liveness line.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Wanderlust server is running")
}
