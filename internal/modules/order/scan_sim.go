// README: Simulated customer-side QR scan confirmer.
package order

import (
	"context"
	"time"

	"speedyrider/internal/types"
)

// SimScanConfirmer stands in for the customer-side scan callback: it reports
// success after a fixed delay. The wait is tied to the caller's context, so an
// abandoned request cancels the pending confirmation instead of firing late.
type SimScanConfirmer struct {
	Delay time.Duration
}

func (c SimScanConfirmer) AwaitScan(ctx context.Context, _ types.ID) error {
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
