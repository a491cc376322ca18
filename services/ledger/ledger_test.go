package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	vehicleModel "transport-office/models/vehicle"
)

func txn(id uint, day int, credit, debit float64) vehicleModel.VehicleTransaction {
	return vehicleModel.VehicleTransaction{
		ID:              id,
		VehicleID:       1,
		TransactionDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Description:     "txn",
		CreditAmount:    decimal.NewFromFloat(credit),
		DebitAmount:     decimal.NewFromFloat(debit),
	}
}

func TestBuildRunningBalance(t *testing.T) {
	rows, final := Build([]vehicleModel.VehicleTransaction{
		txn(1, 1, 100, 0),
		txn(2, 2, 0, 30),
		txn(3, 3, 50, 0),
	})

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	wantBalances := []string{"100", "70", "120"}
	for i, want := range wantBalances {
		if got := rows[i].Balance.String(); got != want {
			t.Fatalf("row %d balance = %s, want %s", i, got, want)
		}
	}

	if final.String() != "120" {
		t.Fatalf("final balance = %s, want 120", final.String())
	}
	if rows[0].TransactionDate != "2024-03-01" {
		t.Fatalf("transaction date = %q, want 2024-03-01", rows[0].TransactionDate)
	}
}

func TestBuildEmptyLedger(t *testing.T) {
	rows, final := Build(nil)
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
	if !final.IsZero() {
		t.Fatalf("final balance = %s, want 0", final.String())
	}
}

func TestBuildBalanceCanGoNegative(t *testing.T) {
	rows, final := Build([]vehicleModel.VehicleTransaction{
		txn(1, 1, 0, 250),
		txn(2, 2, 100, 0),
	})

	if rows[0].Balance.String() != "-250" {
		t.Fatalf("row 0 balance = %s, want -250", rows[0].Balance.String())
	}
	if final.String() != "-150" {
		t.Fatalf("final balance = %s, want -150", final.String())
	}
}

func TestSummarizeNoTrips(t *testing.T) {
	got := Summarize(decimal.Zero, nil)

	if got.FarePaymentStatus != FareNoTrips {
		t.Fatalf("fare status = %q, want %q", got.FarePaymentStatus, FareNoTrips)
	}
	if got.TripToSettleID != nil {
		t.Fatalf("trip to settle = %v, want nil", *got.TripToSettleID)
	}
	if got.CurrentBalance.String() != "0" {
		t.Fatalf("current balance = %s, want 0", got.CurrentBalance.String())
	}
}

func TestSummarizeUnpaidLatestTrip(t *testing.T) {
	trip := vehicleModel.TripLog{ID: 42, VehicleID: 1, FareIsPaid: false}
	got := Summarize(decimal.NewFromFloat(120.456), &trip)

	if got.FarePaymentStatus != FareUnpaid {
		t.Fatalf("fare status = %q, want %q", got.FarePaymentStatus, FareUnpaid)
	}
	if got.TripToSettleID == nil || *got.TripToSettleID != 42 {
		t.Fatalf("trip to settle = %v, want 42", got.TripToSettleID)
	}
	if got.CurrentBalance.String() != "120.46" {
		t.Fatalf("current balance = %s, want 120.46", got.CurrentBalance.String())
	}
}

func TestSummarizePaidLatestTrip(t *testing.T) {
	trip := vehicleModel.TripLog{ID: 42, VehicleID: 1, FareIsPaid: true}
	got := Summarize(decimal.NewFromInt(500), &trip)

	if got.FarePaymentStatus != FarePaid {
		t.Fatalf("fare status = %q, want %q", got.FarePaymentStatus, FarePaid)
	}
	if got.TripToSettleID != nil {
		t.Fatalf("trip to settle = %v, want nil for a settled trip", *got.TripToSettleID)
	}
}
