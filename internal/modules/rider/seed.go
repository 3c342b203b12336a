// README: Demo rider account for mock mode.
package rider

import (
	"context"
	"time"
)

// SeedDemo creates the rider the demo orders are assigned to. MPIN is "1234".
func SeedDemo(ctx context.Context, store Store) error {
	hash, err := HashMPIN("1234")
	if err != nil {
		return err
	}
	return store.Create(ctx, &Rider{
		ID:        "RIDER-001",
		Name:      "Juan Dela Cruz",
		Phone:     "+639171234567",
		MPINHash:  hash,
		CreatedAt: time.Now(),
	})
}
