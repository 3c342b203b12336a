// README: QRPH payload tests.
package barcode

import "testing"

func TestPackageQRRoundTrip(t *testing.T) {
	qr, err := BuildPackageQR("ORD-2024-001", "HUB-MNL-001")
	if err != nil {
		t.Fatal(err)
	}
	if !IsValidQR(qr) {
		t.Fatalf("IsValidQR false for built payload %q", qr)
	}

	p, err := ParseQR(qr, PurposePackage)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.OrderID != "ORD-2024-001" || p.HubID != "HUB-MNL-001" {
		t.Errorf("unexpected payload: %+v", p)
	}
	if p.Purpose != PurposePackage {
		t.Errorf("purpose = %s", p.Purpose)
	}
	if p.Timestamp != staticTimestamp {
		t.Errorf("timestamp = %d", p.Timestamp)
	}
}

func TestPaymentQRRoundTrip(t *testing.T) {
	qr, err := BuildPaymentQR("ORD-2024-001", 1999700, "RIDER-001")
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParseQR(qr, PurposePayment)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Amount != 1999700 || p.Currency != "PHP" || p.RiderID != "RIDER-001" {
		t.Errorf("unexpected payload: %+v", p)
	}
	if p.Reference == "" {
		t.Error("expected payment reference to be set")
	}
}

func TestParseQRRejectsWrongPurpose(t *testing.T) {
	qr, err := BuildPackageQR("ORD-2024-001", "HUB-MNL-001")
	if err != nil {
		t.Fatal(err)
	}
	// The payment key cannot open a package payload.
	if _, err := ParseQR(qr, PurposePayment); err == nil {
		t.Error("expected error parsing package QR as payment")
	}
}

func TestParseQRRejectsGarbage(t *testing.T) {
	if _, err := ParseQR("BAR123456789", PurposePackage); err == nil {
		t.Error("expected error for non-QR input")
	}
}
