// README: Order aggregate, delivery status machine, and action definitions.
package order

import (
	"time"

	"speedyrider/internal/types"
)

type Status string

const (
	StatusPending          Status = "pending"
	StatusAccepted         Status = "accepted"
	StatusEnRoutePickup    Status = "en_route_pickup"
	StatusArrivedPickup    Status = "arrived_pickup"
	StatusPickedUp         Status = "picked_up"
	StatusEnRouteDelivery  Status = "en_route_delivery"
	StatusArrivedDelivery  Status = "arrived_delivery"
	StatusVerified         Status = "verified"
	StatusPaymentCollected Status = "payment_collected"
	StatusCompleted        Status = "completed"
)

// Action is a rider-initiated trigger against an order.
type Action string

const (
	ActionAccept           Action = "accept"
	ActionStartPickupLeg   Action = "start_pickup_leg"
	ActionArrivePickup     Action = "arrive_pickup"
	ActionScanPackage      Action = "scan_package"
	ActionStartDeliveryLeg Action = "start_delivery_leg"
	ActionArriveDelivery   Action = "arrive_delivery"
	ActionVerify           Action = "verify"
	ActionCollectPayment   Action = "collect_payment"
	ActionComplete         Action = "complete"
)

type LineItem struct {
	Name      string
	Quantity  int
	UnitPrice types.Money
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type Order struct {
	ID                  types.ID
	RiderID             *types.ID
	CustomerName        string
	CustomerPhone       string
	PickupAddress       string
	DeliveryAddress     string
	Items               []LineItem
	SpecialInstructions string
	Status              Status
	StatusVersion       int

	// TotalAmount is stored, not derived from Items. The legacy client never
	// reconciled the two and neither do we.
	TotalAmount types.Money

	Distance      string
	EstimatedTime string

	Barcode string
	OTP     string

	PaymentMethod *string
	PaymentStatus PaymentStatus

	PODPhotoURL *string
	PODLocation *types.Point

	CreatedAt   time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	VerifiedAt  *time.Time
	PaidAt      *time.Time
	CompletedAt *time.Time
}

type Event struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	Action     Action
	ActorID    *types.ID
	CreatedAt  time.Time
}

// Transition pairs the single legal action for a state with its target state.
type Transition struct {
	Action Action
	Next   Status
}

// transitions represents the delivery flow (diagram) as code. Every
// non-terminal state has exactly one way forward; completed has none.
var transitions = map[Status]Transition{
	StatusPending:          {ActionAccept, StatusAccepted},
	StatusAccepted:         {ActionStartPickupLeg, StatusEnRoutePickup},
	StatusEnRoutePickup:    {ActionArrivePickup, StatusArrivedPickup},
	StatusArrivedPickup:    {ActionScanPackage, StatusPickedUp},
	StatusPickedUp:         {ActionStartDeliveryLeg, StatusEnRouteDelivery},
	StatusEnRouteDelivery:  {ActionArriveDelivery, StatusArrivedDelivery},
	StatusArrivedDelivery:  {ActionVerify, StatusVerified},
	StatusVerified:         {ActionCollectPayment, StatusPaymentCollected},
	StatusPaymentCollected: {ActionComplete, StatusCompleted},
}

// Advance validates action against the current status and returns the next
// status. An action that is not the state's single legal trigger is an error,
// never a no-op.
func Advance(from Status, action Action) (Status, error) {
	t, ok := transitions[from]
	if !ok || t.Action != action {
		return "", ErrIllegalTransition
	}
	return t.Next, nil
}

// NextTransition is the query clients use to render the available action for
// an order instead of hardcoding screen conditionals. ok is false for the
// terminal state.
func NextTransition(from Status) (Transition, bool) {
	t, ok := transitions[from]
	return t, ok
}
