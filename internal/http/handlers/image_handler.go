// README: Image handler (GET /generate-image); streams job progress as server-sent events.
package handlers

import (
	"context"
	"iter"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust/internal/modules/imagejob"
	"wanderlust/internal/stream"
)

type ImageJobs interface {
	Start(ctx context.Context, country, tripID string) (*imagejob.Job, error)
	Poll(ctx context.Context, job *imagejob.Job) iter.Seq[imagejob.ProgressEvent]
}

type ImageHandler struct {
	jobs ImageJobs
	log  *zap.Logger
}

func NewImageHandler(jobs ImageJobs, log *zap.Logger) *ImageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageHandler{jobs: jobs, log: log}
}

// Generate handles GET /generate-image?country=&tripId=. A job that cannot be
// started is a plain 500; after that every outcome is a stream frame.
func (h *ImageHandler) Generate(c *gin.Context) {
	country := strings.TrimSpace(c.Query("country"))
	tripID := strings.TrimSpace(c.Query("tripId"))
	if country == "" {
		writeError(c, http.StatusBadRequest, "missing country")
		return
	}
	if tripID != "" && !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid tripId")
		return
	}

	ctx := c.Request.Context()
	job, err := h.jobs.Start(ctx, country, tripID)
	if err != nil {
		h.log.Error("start image job", zap.String("country", country), zap.Error(err))
		writeError(c, http.StatusInternalServerError, "Failed to generate image")
		return
	}

	em := stream.New(ctx, c.Writer)
	em.Open()
	defer em.Close()

	for ev := range h.jobs.Poll(ctx, job) {
		if !em.Send(ev) {
			h.log.Info("image stream client gone", zap.String("job_id", job.ID))
			return
		}
		if ev.Terminal() {
			return
		}
	}
}
