// README: Payment collection service (gate between verified and completed).
package payment

import (
	"context"
	"time"

	"speedyrider/internal/modules/order"
	"speedyrider/internal/types"
)

// Orders is the slice of the order module the payment gate needs.
type Orders interface {
	Get(ctx context.Context, id types.ID) (*order.Order, error)
	CollectPayment(ctx context.Context, cmd order.CollectPaymentCommand) error
}

type Service struct {
	orders    Orders
	processor Processor
	events    EventStore
	publisher EventPublisher
}

func NewService(orders Orders, processor Processor, events EventStore, publisher EventPublisher) *Service {
	return &Service{orders: orders, processor: processor, events: events, publisher: publisher}
}

type CollectCommand struct {
	OrderID types.ID
	RiderID types.ID
	Method  Method
}

// Collect charges the order's total through the processor, then advances the
// order to payment_collected and records the processor event. The state check
// runs before the charge so a wrong-state order never reaches the processor.
func (s *Service) Collect(ctx context.Context, cmd CollectCommand) error {
	if !ValidMethod(cmd.Method) {
		return order.ErrBadRequest
	}
	o, err := s.orders.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if o.Status != order.StatusVerified {
		return order.ErrIllegalTransition
	}

	res, err := s.processor.Charge(ctx, o.ID, o.TotalAmount, cmd.Method)
	if err != nil {
		return err
	}

	if err := s.orders.CollectPayment(ctx, order.CollectPaymentCommand{
		OrderID: cmd.OrderID,
		RiderID: cmd.RiderID,
		Method:  string(cmd.Method),
	}); err != nil {
		return err
	}

	e := Event{
		ID:              types.ID(newEventID()),
		Provider:        res.Provider,
		ProviderEventID: res.ProviderEventID,
		OrderID:         o.ID,
		Payload:         res.Payload,
		Status:          "succeeded",
		ProcessedAt:     time.Now(),
	}
	if err := s.events.Record(ctx, &e); err != nil {
		return err
	}
	// Downstream consumers are best-effort. The order is already paid.
	_ = s.publisher.Publish(ctx, e)
	return nil
}

func (s *Service) EventsForOrder(ctx context.Context, orderID types.ID) ([]Event, error) {
	return s.events.ListByOrder(ctx, orderID)
}
