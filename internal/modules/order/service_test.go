// README: Order service tests (full flow, gates, seeded scenarios).
package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"speedyrider/internal/barcode"
	"speedyrider/internal/types"
)

type recordedNotification struct {
	Title, Message, Type string
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (n *stubNotifier) Emit(_ context.Context, _ types.ID, title, message, typ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, recordedNotification{title, message, typ})
	return nil
}

const testBarcodeKey = "delivery-rider-barcode-key-2025"

func newTestService(t *testing.T) (*Service, *MemStore, *stubNotifier) {
	t.Helper()
	store := NewMemStore()
	notifier := &stubNotifier{}
	svc := NewService(store, notifier, nil, SimScanConfirmer{Delay: time.Millisecond}, testBarcodeKey)
	if err := SeedDemo(context.Background(), store, "RIDER-001"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc, store, notifier
}

func assertStatus(t *testing.T, svc *Service, id types.ID, want Status) {
	t.Helper()
	o, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if o.Status != want {
		t.Fatalf("expected status %s, got %s", want, o.Status)
	}
}

func TestDeliveryFlowHappyPath(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-2024-002")

	if err := svc.Accept(ctx, AcceptCommand{OrderID: id, RiderID: rider}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	assertStatus(t, svc, id, StatusAccepted)

	for _, a := range []Action{ActionStartPickupLeg, ActionArrivePickup} {
		if err := svc.MarkProgress(ctx, AdvanceCommand{OrderID: id, RiderID: rider, Action: a}); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	assertStatus(t, svc, id, StatusArrivedPickup)

	if err := svc.ScanPackage(ctx, ScanCommand{OrderID: id, RiderID: rider, Scanned: "BAR987654321"}); err != nil {
		t.Fatalf("scan: %v", err)
	}
	assertStatus(t, svc, id, StatusPickedUp)

	for _, a := range []Action{ActionStartDeliveryLeg, ActionArriveDelivery} {
		if err := svc.MarkProgress(ctx, AdvanceCommand{OrderID: id, RiderID: rider, Action: a}); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}
	assertStatus(t, svc, id, StatusArrivedDelivery)

	if err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: id, RiderID: rider, Method: VerifyOTP, OTP: "7391"}); err != nil {
		t.Fatalf("verify: %v", err)
	}
	assertStatus(t, svc, id, StatusVerified)

	if err := svc.CollectPayment(ctx, CollectPaymentCommand{OrderID: id, RiderID: rider, Method: "wallet"}); err != nil {
		t.Fatalf("collect payment: %v", err)
	}
	assertStatus(t, svc, id, StatusPaymentCollected)

	if err := svc.Complete(ctx, CompleteCommand{OrderID: id, RiderID: rider, PhotoURL: "file:///pod/ORD-2024-002.jpg"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	assertStatus(t, svc, id, StatusCompleted)

	o, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if o.PaymentMethod == nil || *o.PaymentMethod != "wallet" {
		t.Errorf("payment method not recorded: %v", o.PaymentMethod)
	}
	if o.PaymentStatus != PaymentPaid {
		t.Errorf("payment status = %s, want paid", o.PaymentStatus)
	}
	if o.CompletedAt == nil {
		t.Error("completed_at not set")
	}
}

// Completed is terminal: nothing advances past it.
func TestCompletedIsTerminal(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	done := types.ID("ORD-DONE")
	if err := store.Create(ctx, &Order{ID: done, RiderID: &rider, Status: StatusCompleted, PaymentStatus: PaymentPaid}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Accept(ctx, AcceptCommand{OrderID: done, RiderID: rider}); err != ErrIllegalTransition {
		t.Errorf("accept on completed: expected ErrIllegalTransition, got %v", err)
	}
	if err := svc.Complete(ctx, CompleteCommand{OrderID: done, RiderID: rider, PhotoURL: "p.jpg"}); err != ErrIllegalTransition {
		t.Errorf("complete on completed: expected ErrIllegalTransition, got %v", err)
	}
	if err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: done, RiderID: rider, Method: VerifyOTP, OTP: "0000"}); err != ErrIllegalTransition {
		t.Errorf("verify on completed: expected ErrIllegalTransition, got %v", err)
	}
}

func TestIllegalActionsRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-2024-001") // seeded as accepted

	// The only legal action from accepted is start_pickup_leg.
	if err := svc.ScanPackage(ctx, ScanCommand{OrderID: id, RiderID: rider, Scanned: "BAR123456789"}); err != ErrIllegalTransition {
		t.Errorf("scan from accepted: expected ErrIllegalTransition, got %v", err)
	}
	if err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: id, RiderID: rider, Method: VerifyOTP, OTP: "4582"}); err != ErrIllegalTransition {
		t.Errorf("verify from accepted: expected ErrIllegalTransition, got %v", err)
	}
	if err := svc.MarkProgress(ctx, AdvanceCommand{OrderID: id, RiderID: rider, Action: ActionArriveDelivery}); err != ErrIllegalTransition {
		t.Errorf("arrive_delivery from accepted: expected ErrIllegalTransition, got %v", err)
	}
	// Gate actions cannot be smuggled through the movement endpoint.
	if err := svc.MarkProgress(ctx, AdvanceCommand{OrderID: id, RiderID: rider, Action: ActionCollectPayment}); err != ErrIllegalTransition {
		t.Errorf("collect_payment via MarkProgress: expected ErrIllegalTransition, got %v", err)
	}
	assertStatus(t, svc, id, StatusAccepted)
}

func TestScanMismatchIsRecoverable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-2024-001")

	for _, a := range []Action{ActionStartPickupLeg, ActionArrivePickup} {
		if err := svc.MarkProgress(ctx, AdvanceCommand{OrderID: id, RiderID: rider, Action: a}); err != nil {
			t.Fatalf("%s: %v", a, err)
		}
	}

	if err := svc.ScanPackage(ctx, ScanCommand{OrderID: id, RiderID: rider, Scanned: "WRONG"}); err != ErrVerificationFailed {
		t.Fatalf("wrong barcode: expected ErrVerificationFailed, got %v", err)
	}
	assertStatus(t, svc, id, StatusArrivedPickup)

	// A correct rescan succeeds.
	if err := svc.ScanPackage(ctx, ScanCommand{OrderID: id, RiderID: rider, Scanned: "BAR123456789"}); err != nil {
		t.Fatalf("rescan: %v", err)
	}
	assertStatus(t, svc, id, StatusPickedUp)
}

// An encrypted stored barcode still matches its plaintext scan.
func TestScanAgainstEncryptedBarcode(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")

	ct, err := barcode.Encrypt("BAR555000111", testBarcodeKey)
	if err != nil {
		t.Fatal(err)
	}
	id := types.ID("ORD-ENC")
	if err := store.Create(ctx, &Order{ID: id, RiderID: &rider, Status: StatusArrivedPickup, Barcode: ct, PaymentStatus: PaymentUnpaid}); err != nil {
		t.Fatal(err)
	}

	if err := svc.ScanPackage(ctx, ScanCommand{OrderID: id, RiderID: rider, Scanned: "BAR555000111"}); err != nil {
		t.Fatalf("scan against encrypted barcode: %v", err)
	}
	assertStatus(t, svc, id, StatusPickedUp)
}

// OTP "4582" entered digit-by-digit and submitted on the 4th digit.
func TestVerifyOTPScenario(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-OTP")
	if err := store.Create(ctx, &Order{ID: id, RiderID: &rider, Status: StatusArrivedDelivery, OTP: "4582", PaymentStatus: PaymentUnpaid}); err != nil {
		t.Fatal(err)
	}

	var entered string
	for _, d := range "4582" {
		entered += string(d)
	}
	if err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: id, RiderID: rider, Method: VerifyOTP, OTP: entered}); err != nil {
		t.Fatalf("verify: %v", err)
	}
	assertStatus(t, svc, id, StatusVerified)
}

func TestVerifyOTPExactMatchOnly(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"4582", true},
		{"4581", false},
		{" 4582", false}, // no trimming
		{"4582 ", false},
		{"", false},
	}
	for _, tc := range cases {
		svc, store, _ := newTestService(t)
		ctx := context.Background()
		rider := types.ID("RIDER-001")
		id := types.ID("ORD-OTP")
		if err := store.Create(ctx, &Order{ID: id, RiderID: &rider, Status: StatusArrivedDelivery, OTP: "4582", PaymentStatus: PaymentUnpaid}); err != nil {
			t.Fatal(err)
		}
		err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: id, RiderID: rider, Method: VerifyOTP, OTP: tc.input})
		if tc.want && err != nil {
			t.Errorf("otp %q: unexpected error %v", tc.input, err)
		}
		if !tc.want && err != ErrVerificationFailed {
			t.Errorf("otp %q: expected ErrVerificationFailed, got %v", tc.input, err)
		}
	}
}

func TestVerifyQRPath(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-QR")
	if err := store.Create(ctx, &Order{ID: id, RiderID: &rider, Status: StatusArrivedDelivery, PaymentStatus: PaymentUnpaid}); err != nil {
		t.Fatal(err)
	}
	if err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: id, RiderID: rider, Method: VerifyQR}); err != nil {
		t.Fatalf("qr verify: %v", err)
	}
	assertStatus(t, svc, id, StatusVerified)
}

// A cancelled request must not verify after the fact.
func TestVerifyQRCancelled(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store, &stubNotifier{}, nil, SimScanConfirmer{Delay: time.Second}, testBarcodeKey)
	ctx, cancel := context.WithCancel(context.Background())
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-QR-CANCEL")
	if err := store.Create(context.Background(), &Order{ID: id, RiderID: &rider, Status: StatusArrivedDelivery, PaymentStatus: PaymentUnpaid}); err != nil {
		t.Fatal(err)
	}

	cancel()
	if err := svc.VerifyDelivery(ctx, VerifyCommand{OrderID: id, RiderID: rider, Method: VerifyQR}); err == nil {
		t.Fatal("expected error for cancelled qr verification")
	}
	assertStatus(t, svc, id, StatusArrivedDelivery)
}

func TestCompleteRequiresProofPhoto(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	rider := types.ID("RIDER-001")
	id := types.ID("ORD-POD")
	if err := store.Create(ctx, &Order{ID: id, RiderID: &rider, Status: StatusPaymentCollected, PaymentStatus: PaymentPaid}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Complete(ctx, CompleteCommand{OrderID: id, RiderID: rider}); err != ErrProofRequired {
		t.Fatalf("expected ErrProofRequired, got %v", err)
	}
	assertStatus(t, svc, id, StatusPaymentCollected)

	loc := &types.Point{Lat: 14.5995, Lng: 120.9842}
	if err := svc.Complete(ctx, CompleteCommand{OrderID: id, RiderID: rider, PhotoURL: "file:///pod/ORD-POD.jpg", Location: loc}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	o, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if o.PODPhotoURL == nil || o.PODLocation == nil {
		t.Error("proof of delivery fields not recorded")
	}
}

// Accepting pending ORD-2024-003 emits an assignment notification in the same
// operation.
func TestAcceptEmitsAssignmentNotification(t *testing.T) {
	svc, _, notifier := newTestService(t)
	ctx := context.Background()

	if err := svc.Accept(ctx, AcceptCommand{OrderID: "ORD-2024-003", RiderID: "RIDER-001"}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	assertStatus(t, svc, "ORD-2024-003", StatusAccepted)

	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Type != "assignment" {
		t.Errorf("notification type = %s, want assignment", n.Type)
	}
}

func TestConcurrentAcceptSameOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		rider := types.ID("RIDER-00" + string(rune('1'+i)))
		wg.Add(1)
		go func(r types.ID) {
			defer wg.Done()
			errs <- svc.Accept(ctx, AcceptCommand{OrderID: "ORD-2024-004", RiderID: r})
		}(rider)
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if err != ErrConflict && err != ErrIllegalTransition {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 successful accept, got %d", success)
	}
	o, err := svc.Get(ctx, "ORD-2024-004")
	if err != nil {
		t.Fatal(err)
	}
	if o.RiderID == nil || *o.RiderID == "" {
		t.Fatal("expected rider_id to be set")
	}
}

func TestEventsRecordFlow(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Accept(ctx, AcceptCommand{OrderID: "ORD-2024-003", RiderID: "RIDER-001"}); err != nil {
		t.Fatal(err)
	}
	events, err := svc.Events(ctx, "ORD-2024-003")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.FromStatus != StatusPending || e.ToStatus != StatusAccepted || e.Action != ActionAccept {
		t.Errorf("unexpected event: %+v", e)
	}
}
