// README: Payment methods and processor event records.
package payment

import (
	"encoding/json"
	"time"

	"speedyrider/internal/types"
)

type Method string

const (
	MethodWallet Method = "wallet"
	MethodCard   Method = "card"
	MethodBank   Method = "bank"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodWallet, MethodCard, MethodBank:
		return true
	}
	return false
}

// Event records one processor interaction. Payload is the provider's raw
// response, stored opaque.
type Event struct {
	ID              types.ID        `json:"id"`
	Provider        string          `json:"provider"`
	ProviderEventID string          `json:"provider_event_id"`
	OrderID         types.ID        `json:"order_id"`
	Payload         json.RawMessage `json:"payload"`
	Status          string          `json:"status"`
	ProcessedAt     time.Time       `json:"processed_at"`
}
