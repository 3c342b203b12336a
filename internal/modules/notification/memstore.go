// README: In-memory notification feed for mock mode.
package notification

import (
	"context"
	"sync"
)

type MemStore struct {
	mu    sync.Mutex
	feeds map[string][]Notification
}

func NewMemStore() *MemStore {
	return &MemStore{feeds: make(map[string][]Notification)}
}

func (m *MemStore) Append(_ context.Context, riderID string, n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeds[riderID] = append([]Notification{n}, m.feeds[riderID]...)
	return nil
}

func (m *MemStore) List(_ context.Context, riderID string) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.feeds[riderID]))
	copy(out, m.feeds[riderID])
	return out, nil
}

func (m *MemStore) MarkRead(_ context.Context, riderID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	feed := m.feeds[riderID]
	for i := range feed {
		if feed[i].ID == id {
			feed[i].Read = true
			return nil
		}
	}
	return nil
}
