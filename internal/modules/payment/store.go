// README: Payment event persistence (postgres and in-memory).
package payment

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"speedyrider/internal/types"
)

type EventStore interface {
	Record(ctx context.Context, e *Event) error
	ListByOrder(ctx context.Context, orderID types.ID) ([]Event, error)
}

type PGEventStore struct {
	db *pgxpool.Pool
}

func NewPGEventStore(db *pgxpool.Pool) *PGEventStore {
	return &PGEventStore{db: db}
}

func (s *PGEventStore) Record(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO payment_events (
			id, provider, provider_event_id, order_id, payload, status, processed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Provider, e.ProviderEventID, e.OrderID, []byte(e.Payload), e.Status, e.ProcessedAt,
	)
	return err
}

func (s *PGEventStore) ListByOrder(ctx context.Context, orderID types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, provider, provider_event_id, order_id, payload, status, processed_at
		FROM payment_events
		WHERE order_id = $1
		ORDER BY processed_at ASC`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Provider, &e.ProviderEventID, &e.OrderID, &payload, &e.Status, &e.ProcessedAt); err != nil {
			return nil, err
		}
		e.Payload = payload
		out = append(out, e)
	}
	return out, rows.Err()
}

type MemEventStore struct {
	mu     sync.Mutex
	events []Event
}

func NewMemEventStore() *MemEventStore {
	return &MemEventStore{}
}

func (m *MemEventStore) Record(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *MemEventStore) ListByOrder(_ context.Context, orderID types.ID) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Event
	for _, e := range m.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}
