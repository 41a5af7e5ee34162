// README: Image job orchestrator: submit, poll queue status, then poll for the finished image.
package imagejob

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"wanderlust/internal/config"
	"wanderlust/internal/imagegen"
)

type Orchestrator struct {
	provider Provider
	trips    ImageAttacher
	ledger   Ledger
	cfg      config.ImageConfig
	log      *zap.Logger
	now      func() time.Time
}

// NewOrchestrator builds an orchestrator. cfg.ResultInterval must already be
// resolved (see config.Config.ResultInterval). trips and ledger may be nil.
func NewOrchestrator(provider Provider, trips ImageAttacher, ledger Ledger, cfg config.ImageConfig, log *zap.Logger) *Orchestrator {
	if ledger == nil {
		ledger = NewMemoryLedger()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{provider: provider, trips: trips, ledger: ledger, cfg: cfg, log: log, now: time.Now}
}

// Start submits the generation job. Errors wrap ErrJobStart.
func (o *Orchestrator) Start(ctx context.Context, country, tripID string) (*Job, error) {
	id, err := o.provider.Submit(ctx, imagegen.Prompt(country))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJobStart, err)
	}
	job := &Job{ID: id, Country: country, TripID: tripID, StartedAt: o.now()}
	o.log.Info("image job started", zap.String("job_id", id), zap.String("country", country), zap.String("trip_id", tripID))
	o.record(ctx, job, Waiting(0))
	return job, nil
}

// Run starts a job and polls it. A start failure is reported as a single
// failed event.
func (o *Orchestrator) Run(ctx context.Context, country, tripID string) iter.Seq[ProgressEvent] {
	return func(yield func(ProgressEvent) bool) {
		job, err := o.Start(ctx, country, tripID)
		if err != nil {
			o.log.Error("image job start failed", zap.String("country", country), zap.Error(err))
			yield(Failed(ErrJobStart.Error()))
			return
		}
		for ev := range o.Poll(ctx, job) {
			if !yield(ev) {
				return
			}
		}
	}
}

// Poll drives a started job to completion. The sequence ends after a terminal
// event, when the consumer stops ranging, or when ctx is done. Polls for one
// job are strictly sequential.
func (o *Orchestrator) Poll(ctx context.Context, job *Job) iter.Seq[ProgressEvent] {
	return func(yield func(ProgressEvent) bool) {
		jobCtx, cancel := context.WithTimeout(ctx, o.jobTimeout())
		defer cancel()

		emit := func(ev ProgressEvent) bool {
			if ev.Kind == KindDone && job.TripID != "" && o.trips != nil {
				o.trips.AttachImage(context.WithoutCancel(ctx), job.TripID, ev.ImageURL)
			}
			o.record(ctx, job, ev)
			return yield(ev)
		}
		// stop reports why polling can't continue. A cancelled parent means the
		// client went away, so nothing is emitted.
		stop := func() {
			if ctx.Err() != nil {
				o.log.Info("image job abandoned", zap.String("job_id", job.ID), zap.Error(ctx.Err()))
				return
			}
			o.log.Warn("image job timed out", zap.String("job_id", job.ID), zap.Duration("timeout", o.jobTimeout()))
			emit(Failed(ErrResultTimeout.Error()))
		}

		for {
			st, err := o.provider.Check(jobCtx, job.ID)
			if err != nil {
				if jobCtx.Err() != nil {
					stop()
					return
				}
				o.log.Error("image status check failed", zap.String("job_id", job.ID), zap.Error(err))
				emit(Failed(ErrStatusCheck.Error()))
				return
			}
			if st.Faulted {
				o.log.Error("image job faulted", zap.String("job_id", job.ID))
				emit(Failed(ErrJobFaulted.Error()))
				return
			}
			wait := EffectiveWait(st)
			if wait == 0 {
				break
			}
			if !emit(Waiting(wait)) {
				return
			}
			if !sleep(jobCtx, o.cfg.StatusInterval) {
				stop()
				return
			}
		}

		for attempt := 1; ; attempt++ {
			url, err := o.provider.Result(jobCtx, job.ID)
			switch {
			case err != nil && jobCtx.Err() != nil:
				stop()
				return
			case err != nil:
				o.log.Warn("image result not available, retrying", zap.String("job_id", job.ID), zap.Int("attempt", attempt), zap.Error(err))
			case url == "":
				o.log.Debug("waiting for image to be transferred", zap.String("job_id", job.ID), zap.Int("attempt", attempt))
			default:
				o.log.Info("image job done", zap.String("job_id", job.ID), zap.Duration("elapsed", o.now().Sub(job.StartedAt)))
				emit(Done(url))
				return
			}
			if attempt >= o.cfg.MaxResultAttempts {
				o.log.Warn("image result attempts exhausted", zap.String("job_id", job.ID), zap.Int("attempts", attempt))
				emit(Failed(ErrResultTimeout.Error()))
				return
			}
			if !sleep(jobCtx, o.cfg.ResultInterval) {
				stop()
				return
			}
		}
	}
}

func (o *Orchestrator) jobTimeout() time.Duration {
	if o.cfg.JobTimeout <= 0 {
		return 20 * time.Minute
	}
	return o.cfg.JobTimeout
}

func (o *Orchestrator) record(ctx context.Context, job *Job, ev ProgressEvent) {
	if job.TripID == "" {
		return
	}
	snap := Snapshot{
		TripID:      job.TripID,
		JobID:       job.ID,
		Country:     job.Country,
		State:       ev.Kind,
		WaitSeconds: ev.WaitSeconds,
		ImageURL:    ev.ImageURL,
		Reason:      ev.Reason,
		UpdatedAt:   o.now(),
	}
	// The ledger write must not be cut short by a client that just left.
	if err := o.ledger.Record(context.WithoutCancel(ctx), snap); err != nil {
		o.log.Warn("record image job snapshot failed", zap.String("trip_id", job.TripID), zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
