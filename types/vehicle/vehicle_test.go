package vehicle

import "testing"

func TestTransactionCreditDebitExclusivity(t *testing.T) {
	tests := []struct {
		name    string
		credit  float64
		debit   float64
		wantKey string
	}{
		{"credit only", 500, 0, ""},
		{"debit only", 0, 300, ""},
		{"both zero", 0, 0, "amount"},
		{"both set", 500, 300, "amount"},
		{"negative credit", -10, 0, "credit_amount"},
		{"negative debit", 0, -10, "debit_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := TransactionCreateRequest{
				TransactionDate: "2024-03-01",
				CreditAmount:    tt.credit,
				DebitAmount:     tt.debit,
			}
			issues := req.Validate()

			if tt.wantKey == "" {
				if len(issues) != 0 {
					t.Fatalf("unexpected issues: %v", issues)
				}
				return
			}
			if _, ok := issues[tt.wantKey]; !ok {
				t.Fatalf("missing %q issue, got %v", tt.wantKey, issues)
			}
		})
	}
}

func TestVehicleNumberNormalized(t *testing.T) {
	req := VehicleCreateRequest{VehicleNumber: "  khi 1234 ", OwnerName: " Gul Khan "}
	if issues := req.Validate(); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if req.VehicleNumber != "KHI 1234" {
		t.Fatalf("vehicle number = %q, want KHI 1234", req.VehicleNumber)
	}
	if req.OwnerName != "Gul Khan" {
		t.Fatalf("owner name = %q, want trimmed", req.OwnerName)
	}
}

func TestTripFareMustBePositive(t *testing.T) {
	req := TripCreateRequest{TripDate: "2024-03-01", FareAmount: 0}
	if _, ok := req.Validate()["fare_amount"]; !ok {
		t.Fatalf("zero fare accepted")
	}

	req = TripCreateRequest{TripDate: "2024-03-01", FareAmount: 15000}
	if issues := req.Validate(); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestTripSettleAmount(t *testing.T) {
	req := TripSettleRequest{ReceivedAmount: 0}
	if _, ok := req.Validate()["received_amount"]; !ok {
		t.Fatalf("zero received amount accepted")
	}
}
