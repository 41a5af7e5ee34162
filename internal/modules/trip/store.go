// README: Trip store: in-memory map for local runs, PostgreSQL JSONB document per trip otherwise.
package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wanderlust/internal/modules/itinerary"
)

var ErrNotFound = errors.New("trip not found")

// Store persists itineraries. Save assigns a fresh identifier; the passed
// itinerary is not modified.
type Store interface {
	Save(ctx context.Context, it *itinerary.Itinerary) (string, error)
	AttachImage(ctx context.Context, id, url string) error
	Get(ctx context.Context, id string) (*itinerary.Itinerary, error)
}

type MemoryStore struct {
	mu    sync.RWMutex
	trips map[string]*itinerary.Itinerary
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: make(map[string]*itinerary.Itinerary)}
}

func (s *MemoryStore) Save(_ context.Context, it *itinerary.Itinerary) (string, error) {
	if it == nil {
		return "", errors.New("trip: nil itinerary")
	}
	id := uuid.NewString()
	rec := it.Clone()
	rec.ID = id
	rec.ImageURL = ""

	s.mu.Lock()
	s.trips[id] = rec
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) AttachImage(_ context.Context, id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.trips[id]
	if !ok {
		return ErrNotFound
	}
	rec.ImageURL = url
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*itinerary.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, it *itinerary.Itinerary) (string, error) {
	if it == nil {
		return "", errors.New("trip: nil itinerary")
	}
	doc := it.Clone()
	doc.ID = ""
	doc.ImageURL = ""
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("trip: encode document: %w", err)
	}

	var id string
	err = s.db.QueryRow(ctx, `
        INSERT INTO trips (id, country, travel_type, document)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		uuid.NewString(), doc.Country, string(doc.TravelMode), body,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("trip: insert: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) AttachImage(ctx context.Context, id, url string) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE trips
        SET image_url = $1, updated_at = NOW()
        WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("trip: attach image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*itinerary.Itinerary, error) {
	var (
		body     []byte
		imageURL *string
	)
	err := s.db.QueryRow(ctx, `
        SELECT document, image_url
        FROM trips
        WHERE id = $1`, id,
	).Scan(&body, &imageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("trip: get: %w", err)
	}

	var it itinerary.Itinerary
	if err := json.Unmarshal(body, &it); err != nil {
		return nil, fmt.Errorf("trip: decode document: %w", err)
	}
	it.ID = id
	if imageURL != nil {
		it.ImageURL = *imageURL
	}
	return &it, nil
}
