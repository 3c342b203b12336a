// README: Location tracking tests over miniredis GEO.
package location

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"speedyrider/internal/types"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(NewStore(nil, client), 30*time.Second)
}

func TestUpdateAndPosition(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	manila := types.Point{Lat: 14.5995, Lng: 120.9842}
	if err := svc.Update(ctx, Update{RiderID: "RIDER-001", Position: manila}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Position(ctx, "RIDER-001")
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	// GEO storage quantizes coordinates.
	if math.Abs(got.Lat-manila.Lat) > 0.001 || math.Abs(got.Lng-manila.Lng) > 0.001 {
		t.Fatalf("position drifted: got %+v want %+v", got, manila)
	}
}

func TestLatestUpdateWins(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if err := svc.Update(ctx, Update{RiderID: "RIDER-001", Position: types.Point{Lat: 14.5995, Lng: 120.9842}}); err != nil {
		t.Fatalf("update: %v", err)
	}
	makati := types.Point{Lat: 14.5547, Lng: 121.0244}
	if err := svc.Update(ctx, Update{RiderID: "RIDER-001", Position: makati}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Position(ctx, "RIDER-001")
	if err != nil {
		t.Fatalf("position: %v", err)
	}
	if math.Abs(got.Lat-makati.Lat) > 0.001 {
		t.Fatalf("expected the newer position, got %+v", got)
	}
}

func TestPositionUnknownRider(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Position(context.Background(), "RIDER-404")
	if !errors.Is(err, ErrNoPosition) {
		t.Fatalf("expected ErrNoPosition, got %v", err)
	}
}

func TestSnapshotThrottle(t *testing.T) {
	svc := newTestService(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	now := base
	svc.now = func() time.Time { return now }

	if !svc.shouldSnapshot("RIDER-001") {
		t.Fatal("first update should snapshot")
	}
	now = base.Add(10 * time.Second)
	if svc.shouldSnapshot("RIDER-001") {
		t.Fatal("second update inside the interval should not snapshot")
	}
	now = base.Add(31 * time.Second)
	if !svc.shouldSnapshot("RIDER-001") {
		t.Fatal("update past the interval should snapshot")
	}
	// Per-rider throttling.
	if !svc.shouldSnapshot("RIDER-002") {
		t.Fatal("another rider's first update should snapshot")
	}
}
