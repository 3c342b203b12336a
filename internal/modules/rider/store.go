// README: Rider persistence (postgres and in-memory).
package rider

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"speedyrider/internal/types"
)

var ErrNotFound = errors.New("rider not found")

type Store interface {
	Create(ctx context.Context, r *Rider) error
	Get(ctx context.Context, id types.ID) (*Rider, error)
	GetByPhone(ctx context.Context, phone string) (*Rider, error)
	TouchLastSeen(ctx context.Context, id types.ID, at time.Time) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, r *Rider) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO riders (id, name, phone, mpin_hash, last_seen, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Name, r.Phone, r.MPINHash, r.LastSeen, r.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id types.ID) (*Rider, error) {
	return s.scanOne(ctx, `
		SELECT id, name, phone, mpin_hash, last_seen, created_at
		FROM riders WHERE id = $1`, id)
}

func (s *PGStore) GetByPhone(ctx context.Context, phone string) (*Rider, error) {
	return s.scanOne(ctx, `
		SELECT id, name, phone, mpin_hash, last_seen, created_at
		FROM riders WHERE phone = $1`, phone)
}

func (s *PGStore) scanOne(ctx context.Context, query string, arg any) (*Rider, error) {
	var r Rider
	err := s.db.QueryRow(ctx, query, arg).
		Scan(&r.ID, &r.Name, &r.Phone, &r.MPINHash, &r.LastSeen, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGStore) TouchLastSeen(ctx context.Context, id types.ID, at time.Time) error {
	_, err := s.db.Exec(ctx, `UPDATE riders SET last_seen = $2 WHERE id = $1`, id, at)
	return err
}

type MemStore struct {
	mu     sync.Mutex
	riders map[types.ID]*Rider
}

func NewMemStore() *MemStore {
	return &MemStore{riders: make(map[types.ID]*Rider)}
}

func (m *MemStore) Create(_ context.Context, r *Rider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.riders[r.ID] = &cp
	return nil
}

func (m *MemStore) Get(_ context.Context, id types.ID) (*Rider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.riders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemStore) GetByPhone(_ context.Context, phone string) (*Rider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.riders {
		if r.Phone == phone {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) TouchLastSeen(_ context.Context, id types.ID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.riders[id]; ok {
		t := at
		r.LastSeen = &t
	}
	return nil
}
