// README: Image job types: progress events (wire shape included), jobs and ledger snapshots.
package imagejob

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wanderlust/internal/imagegen"
)

var (
	ErrJobStart         = errors.New("failed to generate image")
	ErrStatusCheck      = errors.New("image status check failed")
	ErrJobFaulted       = errors.New("image generation faulted")
	ErrResultTimeout    = errors.New("timed out waiting for image")
	ErrSnapshotNotFound = errors.New("image job snapshot not found")
)

type Kind string

const (
	KindWaiting Kind = "waiting"
	KindDone    Kind = "done"
	KindFailed  Kind = "failed"
)

// ProgressEvent is one unit of job status pushed to the client.
type ProgressEvent struct {
	Kind        Kind
	WaitSeconds int
	ImageURL    string
	Reason      string
}

func Waiting(seconds int) ProgressEvent { return ProgressEvent{Kind: KindWaiting, WaitSeconds: seconds} }
func Done(url string) ProgressEvent     { return ProgressEvent{Kind: KindDone, ImageURL: url} }
func Failed(reason string) ProgressEvent {
	return ProgressEvent{Kind: KindFailed, Reason: reason}
}

func (e ProgressEvent) Terminal() bool { return e.Kind == KindDone || e.Kind == KindFailed }

// MarshalJSON emits the stream frame payload: {"waitTime"}, {"imageUrl"} or {"error"}.
func (e ProgressEvent) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case KindWaiting:
		return json.Marshal(struct {
			WaitTime int `json:"waitTime"`
		}{e.WaitSeconds})
	case KindDone:
		return json.Marshal(struct {
			ImageURL string `json:"imageUrl"`
		}{e.ImageURL})
	default:
		return json.Marshal(struct {
			Error string `json:"error"`
		}{e.Reason})
	}
}

// Job is a submitted image generation tied to an optional trip.
type Job struct {
	ID        string
	Country   string
	TripID    string
	StartedAt time.Time
}

// Provider is the image generation backend.
type Provider interface {
	Submit(ctx context.Context, prompt string) (string, error)
	Check(ctx context.Context, jobID string) (imagegen.CheckStatus, error)
	Result(ctx context.Context, jobID string) (string, error)
}

// ImageAttacher writes a finished image URL back to its trip.
type ImageAttacher interface {
	AttachImage(ctx context.Context, tripID, url string)
}

// Snapshot is the last known progress of the job for a trip.
type Snapshot struct {
	TripID      string    `json:"tripId"`
	JobID       string    `json:"jobId"`
	Country     string    `json:"country"`
	State       Kind      `json:"state"`
	WaitSeconds int       `json:"waitTime"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Reason      string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Ledger keeps per-trip job snapshots.
type Ledger interface {
	Record(ctx context.Context, s Snapshot) error
	Get(ctx context.Context, tripID string) (*Snapshot, error)
}

// EffectiveWait maps a check response to the seconds reported to the client.
func EffectiveWait(st imagegen.CheckStatus) int {
	switch {
	case st.Done:
		return 0
	case st.Waiting > 0 && st.WaitTime == 0:
		return 1
	case st.WaitTime < 0:
		return 0
	default:
		return st.WaitTime
	}
}
