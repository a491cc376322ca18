package reportfilter

import (
	"testing"
	"time"
)

func TestDateRangeBounds(t *testing.T) {
	start, end := DateRange("2024-01-01", "2024-01-31")

	if start == nil || end == nil {
		t.Fatalf("expected both bounds, got start=%v end=%v", start, end)
	}

	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", start, wantStart)
	}

	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Fatalf("end = %v, want a bound on 2024-01-31", end)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("end = %v, want end of day", end)
	}
}

func TestDateRangeMissingAndInvalidSides(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantStart bool
		wantEnd   bool
	}{
		{"both absent", "", "", false, false},
		{"only start", "2024-06-15", "", true, false},
		{"only end", "", "2024-06-15", false, true},
		{"invalid start ignored", "15/06/2024", "2024-06-15", false, true},
		{"invalid end ignored", "2024-06-15", "junk", true, false},
		{"whitespace only", "   ", "\t", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DateRange(tt.startDate, tt.endDate)
			if (start != nil) != tt.wantStart {
				t.Fatalf("start bound present = %v, want %v", start != nil, tt.wantStart)
			}
			if (end != nil) != tt.wantEnd {
				t.Fatalf("end bound present = %v, want %v", end != nil, tt.wantEnd)
			}
		})
	}
}

func TestPositiveID(t *testing.T) {
	tests := []struct {
		raw    string
		wantID uint
		wantOK bool
	}{
		{"7", 7, true},
		{" 12 ", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"3.5", 0, false},
	}

	for _, tt := range tests {
		id, ok := PositiveID(tt.raw)
		if id != tt.wantID || ok != tt.wantOK {
			t.Fatalf("PositiveID(%q) = (%d, %v), want (%d, %v)", tt.raw, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		remarks string
		want    string
	}{
		{"PAYMENT: PAID", "PAID"},
		{"payment: unpaid by receiver", "UNPAID"},
		{"Freight due. PAYMENT:PARTIAL rest on delivery", "PARTIAL"},
		{"no marker at all", "PENDING"},
		{"", "PENDING"},
		{"PAYMENT:", "PENDING"},
		{"PAYMENT:   ", "PENDING"},
	}

	for _, tt := range tests {
		if got := PaymentStatus(tt.remarks); got != tt.want {
			t.Fatalf("PaymentStatus(%q) = %q, want %q", tt.remarks, got, tt.want)
		}
	}
}
