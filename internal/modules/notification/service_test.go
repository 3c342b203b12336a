// README: Notification feed tests over miniredis.
package notification

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewService(NewStore(client))
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return svc
}

func TestListIsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if err := svc.Emit(ctx, "RIDER-001", "First", "first message", "update"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := svc.Emit(ctx, "RIDER-001", "Second", "second message", "assignment"); err != nil {
		t.Fatalf("emit: %v", err)
	}

	feed, err := svc.List(ctx, "RIDER-001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(feed))
	}
	if feed[0].Title != "Second" || feed[1].Title != "First" {
		t.Fatalf("feed not most-recent-first: %q then %q", feed[0].Title, feed[1].Title)
	}
	if feed[0].Type != TypeAssignment {
		t.Fatalf("expected assignment type, got %s", feed[0].Type)
	}
	if feed[0].Read || feed[1].Read {
		t.Fatal("new notifications should be unread")
	}
}

func TestFeedsAreIsolatedPerRider(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if err := svc.Emit(ctx, "RIDER-001", "Mine", "for rider one", "update"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	feed, err := svc.List(ctx, "RIDER-002")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("expected empty feed for another rider, got %d", len(feed))
	}
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if err := svc.Emit(ctx, "RIDER-001", "Pickup", "scan done", "update"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	feed, err := svc.List(ctx, "RIDER-001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := svc.MarkRead(ctx, "RIDER-001", feed[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	feed, err = svc.List(ctx, "RIDER-001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !feed[0].Read {
		t.Fatal("notification not marked read")
	}
}

func TestMarkReadUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if err := svc.MarkRead(ctx, "RIDER-001", "999999"); err != nil {
		t.Fatalf("mark read of unknown id should not error: %v", err)
	}
}

func TestMemStoreMatchesRedisSemantics(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemStore())

	if err := svc.Emit(ctx, "RIDER-001", "First", "m1", "update"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := svc.Emit(ctx, "RIDER-001", "Second", "m2", "update"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	feed, err := svc.List(ctx, "RIDER-001")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 2 || feed[0].Title != "Second" {
		t.Fatalf("memstore feed not most-recent-first: %+v", feed)
	}
	if err := svc.MarkRead(ctx, "RIDER-001", "missing"); err != nil {
		t.Fatalf("memstore mark read unknown id: %v", err)
	}
}
