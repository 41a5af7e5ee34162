// README: Trip service: persistence failures are logged here and never reach the client.
package trip

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"wanderlust/internal/modules/itinerary"
)

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// Save stores the itinerary and reports whether an identifier was assigned.
func (s *Service) Save(ctx context.Context, it *itinerary.Itinerary) (string, bool) {
	id, err := s.store.Save(ctx, it)
	if err != nil {
		s.log.Error("save trip failed", zap.Error(err))
		return "", false
	}
	return id, true
}

// AttachImage records the image URL on a trip. A missing trip is logged only.
func (s *Service) AttachImage(ctx context.Context, id, url string) {
	err := s.store.AttachImage(ctx, id, url)
	switch {
	case err == nil:
		s.log.Info("image attached to trip", zap.String("trip_id", id))
	case errors.Is(err, ErrNotFound):
		s.log.Warn("attach image: trip not found", zap.String("trip_id", id))
	default:
		s.log.Error("attach image failed", zap.String("trip_id", id), zap.Error(err))
	}
}

func (s *Service) Get(ctx context.Context, id string) (*itinerary.Itinerary, error) {
	return s.store.Get(ctx, id)
}
