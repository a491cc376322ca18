package docs

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	cityModel "transport-office/models/city"
	partyModel "transport-office/models/party"
	shipmentModel "transport-office/models/shipment"
	vehicleModel "transport-office/models/vehicle"
	"transport-office/services/ledger"
)

func sampleShipment() *shipmentModel.Shipment {
	return &shipmentModel.Shipment{
		ID:          5,
		BilityNo:    "TRO-1001",
		BilityDate:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		SenderParty: partyModel.Party{Name: "Haji Traders"},
		WalkInReceiver: "Karim & Sons",
		FromCity:    cityModel.City{Name: "KARACHI"},
		ToCity:      cityModel.City{Name: "LAHORE"},
		FreightCharge: decimal.NewFromInt(15000),
		LabourCharge:  decimal.NewFromInt(800),
		OtherCharge:   decimal.NewFromInt(200),
		Remarks:       "Handle with care",
		GoodsDetails: []shipmentModel.GoodsDetail{
			{ItemName: "Cement Bags", Quantity: 100, Weight: decimal.NewFromInt(5000), Rate: decimal.NewFromInt(150), Amount: decimal.NewFromInt(15000)},
		},
	}
}

func TestGenerateBiltyPDF(t *testing.T) {
	svc := &DocsService{
		ShipmentLoader: func(id uint) (*shipmentModel.Shipment, error) {
			if id != 5 {
				t.Fatalf("loader called with id %d, want 5", id)
			}
			return sampleShipment(), nil
		},
	}

	pdfBytes, filename, err := svc.GenerateBiltyPDF(5)
	if err != nil {
		t.Fatalf("GenerateBiltyPDF error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatalf("empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if filename != "BILTY_TRO-1001.pdf" {
		t.Fatalf("filename = %q, want BILTY_TRO-1001.pdf", filename)
	}
}

func TestGenerateBiltyPDFLoaderError(t *testing.T) {
	svc := &DocsService{
		ShipmentLoader: func(uint) (*shipmentModel.Shipment, error) {
			return nil, fmt.Errorf("boom")
		},
	}

	if _, _, err := svc.GenerateBiltyPDF(5); err == nil {
		t.Fatalf("expected loader error to propagate")
	}
}

func TestGenerateStatementPDF(t *testing.T) {
	tripID := uint(9)
	svc := &DocsService{
		StatementLoader: func(id uint) (*ledger.Statement, error) {
			return &ledger.Statement{
				Vehicle: vehicleModel.Vehicle{VehicleNumber: "KHI 1234", OwnerName: "Gul Khan"},
				Ledger: []ledger.Row{
					{TransactionID: 1, TransactionDate: "2024-03-01", Description: "Advance", Credit: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100)},
					{TransactionID: 2, TransactionDate: "2024-03-02", Description: "Diesel", Debit: decimal.NewFromInt(30), Balance: decimal.NewFromInt(70)},
				},
				Summary: ledger.Summary{
					CurrentBalance:    decimal.NewFromInt(70),
					FarePaymentStatus: ledger.FareUnpaid,
					TripToSettleID:    &tripID,
				},
			}, nil
		},
	}

	pdfBytes, filename, err := svc.GenerateStatementPDF(1)
	if err != nil {
		t.Fatalf("GenerateStatementPDF error: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
	if filename != "STATEMENT_KHI_1234.pdf" {
		t.Fatalf("filename = %q, want STATEMENT_KHI_1234.pdf", filename)
	}
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "Rs 0.00"},
		{decimal.NewFromInt(999), "Rs 999.00"},
		{decimal.NewFromInt(1000), "Rs 1,000.00"},
		{decimal.NewFromFloat(1234567.5), "Rs 1,234,567.50"},
		{decimal.NewFromInt(-4500), "Rs -4,500.00"},
	}

	for _, tt := range tests {
		if got := formatRupees(tt.in); got != tt.want {
			t.Fatalf("formatRupees(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeFilenamePart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"KHI 1234", "KHI_1234"},
		{"A/B:C", "A_B_C"},
		{"  ", "NA"},
		{"", "NA"},
	}

	for _, tt := range tests {
		if got := safeFilenamePart(tt.in); got != tt.want {
			t.Fatalf("safeFilenamePart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
