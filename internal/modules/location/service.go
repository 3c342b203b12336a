// README: Location service handles high-frequency updates with throttled snapshot flushing.
package location

import (
	"context"
	"sync"
	"time"

	"speedyrider/internal/types"
)

type Service struct {
	store    *Store
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastSnap map[types.ID]time.Time
}

// NewService throttles postgres snapshots to at most one per interval per
// rider; redis always gets the latest position.
func NewService(store *Store, snapshotInterval time.Duration) *Service {
	return &Service{
		store:    store,
		interval: snapshotInterval,
		now:      time.Now,
		lastSnap: make(map[types.ID]time.Time),
	}
}

type Update struct {
	RiderID  types.ID
	Position types.Point
}

func (s *Service) Update(ctx context.Context, u Update) error {
	if err := s.store.SetGeo(ctx, u.RiderID, u.Position); err != nil {
		return err
	}
	if !s.shouldSnapshot(u.RiderID) {
		return nil
	}
	return s.store.AppendSnapshot(ctx, Snapshot{
		RiderID:    u.RiderID,
		Position:   u.Position,
		RecordedAt: s.now(),
	})
}

func (s *Service) Position(ctx context.Context, riderID types.ID) (types.Point, error) {
	return s.store.GetGeo(ctx, riderID)
}

func (s *Service) shouldSnapshot(id types.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if last, ok := s.lastSnap[id]; ok && now.Sub(last) < s.interval {
		return false
	}
	s.lastSnap[id] = now
	return true
}
