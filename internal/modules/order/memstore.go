// README: In-memory order store for tests and the no-database mock mode.
package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"speedyrider/internal/types"
)

type MemStore struct {
	mu      sync.Mutex
	orders  map[types.ID]*Order
	events  []Event
	eventID int64
}

func NewMemStore() *MemStore {
	return &MemStore{orders: make(map[types.ID]*Order)}
}

func (s *MemStore) Create(_ context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *MemStore) Get(_ context.Context, id types.ID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *MemStore) ListByRider(_ context.Context, riderID types.ID) ([]*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Order
	for _, o := range s.orders {
		if o.RiderID != nil && *o.RiderID == riderID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) ListPending(_ context.Context) ([]*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Order
	for _, o := range s.orders {
		if o.Status == StatusPending {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int, mut Mutation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from || o.StatusVersion != version {
		return false, nil
	}
	o.Status = to
	o.StatusVersion++
	if mut.RiderID != nil {
		o.RiderID = mut.RiderID
	}
	if mut.Distance != nil {
		o.Distance = *mut.Distance
	}
	if mut.EstimatedTime != nil {
		o.EstimatedTime = *mut.EstimatedTime
	}
	if mut.PaymentMethod != nil {
		o.PaymentMethod = mut.PaymentMethod
	}
	if mut.PaymentStatus != nil {
		o.PaymentStatus = *mut.PaymentStatus
	}
	if mut.PODPhotoURL != nil {
		o.PODPhotoURL = mut.PODPhotoURL
	}
	if mut.PODLocation != nil {
		o.PODLocation = mut.PODLocation
	}
	now := time.Now()
	switch to {
	case StatusAccepted:
		o.AcceptedAt = &now
	case StatusPickedUp:
		o.PickedUpAt = &now
	case StatusVerified:
		o.VerifiedAt = &now
	case StatusPaymentCollected:
		o.PaidAt = &now
	case StatusCompleted:
		o.CompletedAt = &now
	}
	return true, nil
}

func (s *MemStore) AppendEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventID++
	cp := *e
	cp.ID = s.eventID
	s.events = append(s.events, cp)
	return nil
}

func (s *MemStore) ListEvents(_ context.Context, orderID types.ID) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}
