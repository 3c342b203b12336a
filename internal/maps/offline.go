// README: Offline travel estimator for when no Maps API key is configured.
package maps

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"
)

// OfflineEstimator fabricates a stable estimate from the address pair so the
// same route always reports the same figures. Used in mock mode.
type OfflineEstimator struct{}

func (OfflineEstimator) Estimate(_ context.Context, origin, destination string) (time.Duration, string, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(origin))
	_, _ = h.Write([]byte(destination))
	n := h.Sum32()

	minutes := 15 + int(n%31)       // 15..45 mins
	tenthsKm := 20 + int(n%141)     // 2.0..16.0 km
	dist := fmt.Sprintf("%.1f km", float64(tenthsKm)/10)
	return time.Duration(minutes) * time.Minute, dist, nil
}
