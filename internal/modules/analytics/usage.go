// README: Monthly briefing quota persistence.
package analytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInsufficientTokens is returned when a rider has no briefing tokens
// remaining for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of briefing tokens granted per month.
const DefaultTokens = 100

type UsageStore interface {
	EnsureRider(ctx context.Context, riderID string) error
	UseToken(ctx context.Context, riderID string) error
}

// PGUsageStore handles briefing_usage persistence.
type PGUsageStore struct {
	db *pgxpool.Pool
}

func NewPGUsageStore(db *pgxpool.Pool) *PGUsageStore {
	return &PGUsageStore{db: db}
}

// EnsureRider inserts a briefing_usage row with the default allowance. An
// existing row is silently skipped.
func (s *PGUsageStore) EnsureRider(ctx context.Context, riderID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO briefing_usage (rider_id, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (rider_id) DO NOTHING
	`, riderID, DefaultTokens, time.Now().Format("2006-01"))
	return err
}

// UseToken atomically checks the monthly quota and deducts one token. It
// resets the counter to DefaultTokens when last_reset_month is behind the
// current month. Returns ErrInsufficientTokens when 0 rows are updated.
func (s *PGUsageStore) UseToken(ctx context.Context, riderID string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE briefing_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE rider_id = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, now, DefaultTokens, riderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

type memUsageRow struct {
	remaining  int
	resetMonth string
}

type MemUsageStore struct {
	mu   sync.Mutex
	rows map[string]*memUsageRow
	now  func() time.Time
}

func NewMemUsageStore() *MemUsageStore {
	return &MemUsageStore{rows: make(map[string]*memUsageRow), now: time.Now}
}

func (m *MemUsageStore) EnsureRider(_ context.Context, riderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[riderID]; !ok {
		m.rows[riderID] = &memUsageRow{remaining: DefaultTokens, resetMonth: m.now().Format("2006-01")}
	}
	return nil
}

func (m *MemUsageStore) UseToken(_ context.Context, riderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[riderID]
	if !ok {
		return ErrInsufficientTokens
	}
	month := m.now().Format("2006-01")
	if row.resetMonth != month {
		row.remaining = DefaultTokens
		row.resetMonth = month
	}
	if row.remaining <= 0 {
		return ErrInsufficientTokens
	}
	row.remaining--
	return nil
}
