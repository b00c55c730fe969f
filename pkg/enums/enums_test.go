package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("enroute")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusEnroute {
		t.Fatalf("unexpected status: %s", status)
	}

	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	t.Parallel()

	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled are terminal")
	}
	if OrderStatusShipped.IsTerminal() {
		t.Fatal("shipped is not terminal")
	}
}

func TestPaymentMethodGates(t *testing.T) {
	t.Parallel()

	if !PaymentMethodCOD.IsCOD() {
		t.Fatal("COD must report IsCOD")
	}
	if PaymentMethodCOD.RequiresProof() {
		t.Fatal("COD never requires payment proof")
	}
	for _, method := range []PaymentMethod{PaymentMethodJazzCash, PaymentMethodEasyPaisa, PaymentMethodBankTransfer, PaymentMethodUSDT} {
		if method.IsCOD() {
			t.Fatalf("%s should not be COD", method)
		}
		if !method.RequiresProof() {
			t.Fatalf("%s should require payment proof", method)
		}
	}
	if PaymentMethod("Barter").RequiresProof() {
		t.Fatal("unknown method should not require proof")
	}
}

func TestParsePaymentStatus(t *testing.T) {
	t.Parallel()

	status, err := ParsePaymentStatus("refunded")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != PaymentStatusRefunded {
		t.Fatalf("unexpected status: %s", status)
	}
	if _, err := ParsePaymentStatus("settled"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
