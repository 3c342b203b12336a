// README: Daily stats and AI briefing service.
package analytics

import (
	"context"
	"time"

	"speedyrider/internal/ai"
	"speedyrider/internal/modules/order"
	"speedyrider/internal/modules/rider"
	"speedyrider/internal/types"
)

// Orders is the slice of the order module the analytics screens read.
type Orders interface {
	ListForRider(ctx context.Context, riderID types.ID) ([]*order.Order, error)
}

// Riders resolves the rider's display name for the briefing.
type Riders interface {
	Get(ctx context.Context, id types.ID) (*rider.Rider, error)
}

type Service struct {
	orders   Orders
	riders   Riders
	provider ai.BriefingProvider
	usage    UsageStore
}

func NewService(orders Orders, riders Riders, provider ai.BriefingProvider, usage UsageStore) *Service {
	return &Service{orders: orders, riders: riders, provider: provider, usage: usage}
}

// DailyStats computes the rider's figures for one calendar day. Assigned
// counts orders accepted that day, completed counts orders closed that day,
// and COD is summed over orders paid that day.
func (s *Service) DailyStats(ctx context.Context, riderID types.ID, day time.Time) (DailyStats, error) {
	orders, err := s.orders.ListForRider(ctx, riderID)
	if err != nil {
		return DailyStats{}, err
	}

	stats := DailyStats{Date: day, CODCollected: types.PHP(0)}
	for _, o := range orders {
		if sameDay(o.AcceptedAt, day) {
			stats.Assigned++
		}
		if sameDay(o.CompletedAt, day) {
			stats.Completed++
		}
		if sameDay(o.PaidAt, day) && o.PaymentStatus == order.PaymentPaid {
			stats.CODCollected = stats.CODCollected.Add(o.TotalAmount)
		}
	}
	if stats.Assigned > 0 {
		stats.SuccessRate = float64(stats.Completed) / float64(stats.Assigned)
	}
	return stats, nil
}

// Briefing renders the day's stats as prose. Each call spends one monthly
// quota token; the quota is checked before the provider runs.
func (s *Service) Briefing(ctx context.Context, riderID types.ID, day time.Time) (string, error) {
	if err := s.usage.EnsureRider(ctx, string(riderID)); err != nil {
		return "", err
	}
	if err := s.usage.UseToken(ctx, string(riderID)); err != nil {
		return "", err
	}

	r, err := s.riders.Get(ctx, riderID)
	if err != nil {
		return "", err
	}
	stats, err := s.DailyStats(ctx, riderID, day)
	if err != nil {
		return "", err
	}
	return s.provider.DailyBriefing(ctx, ai.BriefingRequest{
		RiderName:    r.Name,
		Date:         day,
		Assigned:     stats.Assigned,
		Completed:    stats.Completed,
		CODCollected: stats.CODCollected,
		SuccessRate:  stats.SuccessRate,
	})
}

func sameDay(t *time.Time, day time.Time) bool {
	if t == nil {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
