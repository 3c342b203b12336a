// README: Order service; enforces the status machine and the scan/verify/proof gates.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"speedyrider/internal/barcode"
	"speedyrider/internal/types"
)

var (
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrNotFound           = errors.New("order not found")
	ErrConflict           = errors.New("order state conflict")
	ErrBadRequest         = errors.New("bad request")
	ErrVerificationFailed = errors.New("verification failed")
	ErrProofRequired      = errors.New("proof of delivery photo required")
)

// Notifier receives feed entries for transitions of interest. Emission happens
// synchronously inside the transition so the feed reflects it immediately.
type Notifier interface {
	Emit(ctx context.Context, riderID types.ID, title, message, typ string) error
}

// Estimator fills the distance and ETA display fields when a parcel is
// accepted.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination string) (time.Duration, string, error)
}

// ScanConfirmer reports the outcome of a customer-side QR scan. The real
// contract is an external, independently authenticated scan event; the
// simulated implementation stands in for it behind this boundary.
type ScanConfirmer interface {
	AwaitScan(ctx context.Context, orderID types.ID) error
}

type Service struct {
	store      Store
	notifier   Notifier
	estimator  Estimator
	scans      ScanConfirmer
	barcodeKey string
}

func NewService(store Store, notifier Notifier, estimator Estimator, scans ScanConfirmer, barcodeKey string) *Service {
	return &Service{
		store:      store,
		notifier:   notifier,
		estimator:  estimator,
		scans:      scans,
		barcodeKey: barcodeKey,
	}
}

type AcceptCommand struct {
	OrderID types.ID
	RiderID types.ID
}

type AdvanceCommand struct {
	OrderID types.ID
	RiderID types.ID
	Action  Action
}

type ScanCommand struct {
	OrderID types.ID
	RiderID types.ID
	Scanned string
}

type VerifyMethod string

const (
	VerifyOTP VerifyMethod = "otp"
	VerifyQR  VerifyMethod = "qr"
)

type VerifyCommand struct {
	OrderID types.ID
	RiderID types.ID
	Method  VerifyMethod
	OTP     string
}

type CollectPaymentCommand struct {
	OrderID types.ID
	RiderID types.ID
	Method  string
}

type CompleteCommand struct {
	OrderID  types.ID
	RiderID  types.ID
	PhotoURL string
	Location *types.Point
}

// Accept assigns a pending parcel to the rider and fills the travel estimate.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	if cmd.RiderID == "" {
		return ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}

	mut := Mutation{RiderID: &cmd.RiderID}
	if s.estimator != nil {
		if eta, dist, err := s.estimator.Estimate(ctx, o.PickupAddress, o.DeliveryAddress); err == nil {
			d := dist
			t := fmt.Sprintf("%d mins", int(eta.Minutes()))
			mut.Distance = &d
			mut.EstimatedTime = &t
		}
	}

	if err := s.transition(ctx, o, ActionAccept, &cmd.RiderID, mut); err != nil {
		return err
	}
	s.notify(ctx, cmd.RiderID, "New Parcel Assignment",
		fmt.Sprintf("Order %s assigned from Central Hub", o.ID), "assignment")
	return nil
}

// MarkProgress performs the plain movement transitions. Gate actions (scan,
// verify, collect_payment, complete) have dedicated entry points and are
// rejected here so their checks cannot be bypassed.
func (s *Service) MarkProgress(ctx context.Context, cmd AdvanceCommand) error {
	switch cmd.Action {
	case ActionStartPickupLeg, ActionArrivePickup, ActionStartDeliveryLeg, ActionArriveDelivery:
	default:
		return ErrIllegalTransition
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	return s.transition(ctx, o, cmd.Action, &cmd.RiderID, Mutation{})
}

// ScanPackage advances arrived_pickup to picked_up when the scanned value
// matches the order barcode. Stored barcodes may be encrypted; the comparison
// uses the best-effort decrypted value.
func (s *Service) ScanPackage(ctx context.Context, cmd ScanCommand) error {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if _, err := Advance(o.Status, ActionScanPackage); err != nil {
		return err
	}

	expected := o.Barcode
	if barcode.LooksEncrypted(expected) {
		expected = barcode.Decrypt(expected, s.barcodeKey)
	}
	if cmd.Scanned == "" || (cmd.Scanned != expected && cmd.Scanned != o.Barcode) {
		return ErrVerificationFailed
	}

	if err := s.transition(ctx, o, ActionScanPackage, &cmd.RiderID, Mutation{}); err != nil {
		return err
	}
	s.notify(ctx, cmd.RiderID, "Package Picked Up",
		fmt.Sprintf("Package for order %s scanned at pickup", o.ID), "update")
	return nil
}

// VerifyDelivery advances arrived_delivery to verified via the OTP or QR gate.
// OTP comparison is exact string equality; there is no retry cap.
func (s *Service) VerifyDelivery(ctx context.Context, cmd VerifyCommand) error {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if _, err := Advance(o.Status, ActionVerify); err != nil {
		return err
	}

	switch cmd.Method {
	case VerifyOTP:
		if o.OTP == "" || cmd.OTP != o.OTP {
			return ErrVerificationFailed
		}
	case VerifyQR:
		if err := s.scans.AwaitScan(ctx, o.ID); err != nil {
			return err
		}
	default:
		return ErrBadRequest
	}

	return s.transition(ctx, o, ActionVerify, &cmd.RiderID, Mutation{})
}

// CollectPayment advances verified to payment_collected. The payment module
// calls this after its processor reports success.
func (s *Service) CollectPayment(ctx context.Context, cmd CollectPaymentCommand) error {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	paid := PaymentPaid
	mut := Mutation{PaymentMethod: &cmd.Method, PaymentStatus: &paid}
	return s.transition(ctx, o, ActionCollectPayment, &cmd.RiderID, mut)
}

// Complete closes out a delivery. A proof-of-delivery photo is required; GPS
// is optional.
func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	if cmd.PhotoURL == "" {
		return ErrProofRequired
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	mut := Mutation{PODPhotoURL: &cmd.PhotoURL, PODLocation: cmd.Location}
	if err := s.transition(ctx, o, ActionComplete, &cmd.RiderID, mut); err != nil {
		return err
	}
	s.notify(ctx, cmd.RiderID, "Delivery Completed",
		fmt.Sprintf("Order %s has been successfully delivered", o.ID), "update")
	return nil
}

func (s *Service) notify(ctx context.Context, riderID types.ID, title, message, typ string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Emit(ctx, riderID, title, message, typ)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListForRider(ctx context.Context, riderID types.ID) ([]*Order, error) {
	return s.store.ListByRider(ctx, riderID)
}

func (s *Service) ListPending(ctx context.Context) ([]*Order, error) {
	return s.store.ListPending(ctx)
}

func (s *Service) Events(ctx context.Context, orderID types.ID) ([]Event, error) {
	return s.store.ListEvents(ctx, orderID)
}

// transition applies the single validated state change: table check, CAS
// update, audit event.
func (s *Service) transition(ctx context.Context, o *Order, action Action, actor *types.ID, mut Mutation) error {
	next, err := Advance(o.Status, action)
	if err != nil {
		return err
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, next, o.StatusVersion, mut)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   next,
		Action:     action,
		ActorID:    actor,
		CreatedAt:  time.Now(),
	})
	return nil
}
