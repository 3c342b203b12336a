// README: Notification service (emit, list, mark read).
package notification

import (
	"context"
	"strconv"
	"time"

	"speedyrider/internal/types"
)

// Feed is the persistence boundary. The redis Store is the real one, MemStore
// covers mock mode.
type Feed interface {
	Append(ctx context.Context, riderID string, n Notification) error
	List(ctx context.Context, riderID string) ([]Notification, error)
	MarkRead(ctx context.Context, riderID, id string) error
}

type Service struct {
	feed Feed
	now  func() time.Time
}

func NewService(feed Feed) *Service {
	return &Service{feed: feed, now: time.Now}
}

// Emit appends an unread notification to the rider's feed. The id is the
// creation timestamp in nanoseconds, which the feed keeps most-recent-first.
func (s *Service) Emit(ctx context.Context, riderID types.ID, title, message, typ string) error {
	ts := s.now()
	n := Notification{
		ID:        strconv.FormatInt(ts.UnixNano(), 10),
		Title:     title,
		Message:   message,
		Timestamp: ts,
		Read:      false,
		Type:      Type(typ),
	}
	return s.feed.Append(ctx, string(riderID), n)
}

func (s *Service) List(ctx context.Context, riderID types.ID) ([]Notification, error) {
	return s.feed.List(ctx, string(riderID))
}

func (s *Service) MarkRead(ctx context.Context, riderID types.ID, id string) error {
	return s.feed.MarkRead(ctx, string(riderID), id)
}
