// README: Payment processor boundary and the simulated implementation.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"speedyrider/internal/types"
)

// Result is what a processor reports back on a successful charge.
type Result struct {
	Provider        string
	ProviderEventID string
	Payload         json.RawMessage
}

// Processor charges the customer for one order. The interface carries an error
// return so a real gateway can decline; SimProcessor never does.
type Processor interface {
	Charge(ctx context.Context, orderID types.ID, amount types.Money, method Method) (Result, error)
}

// SimProcessor stands in for a real gateway. It waits Delay (the confirmation
// round trip) and reports success. Cancelling ctx aborts the wait.
type SimProcessor struct {
	Delay time.Duration
}

func (p SimProcessor) Charge(ctx context.Context, orderID types.ID, amount types.Money, method Method) (Result, error) {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
	}
	eventID := "SIM-" + newEventID()
	payload, _ := json.Marshal(map[string]any{
		"order_id": orderID,
		"amount":   amount.Amount,
		"currency": amount.Currency,
		"method":   method,
		"message":  fmt.Sprintf("simulated %s charge approved", method),
	})
	return Result{Provider: "sim", ProviderEventID: eventID, Payload: payload}, nil
}

func newEventID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
