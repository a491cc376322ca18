package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-05-10")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("10/05/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatalf("expected error for empty value")
	}

	// Leading/trailing whitespace is tolerated.
	if _, err := ParseDate(" 2024-05-10 "); err != nil {
		t.Fatalf("whitespace-trimmed date rejected: %v", err)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-05-10 14:30:00")
	if err != nil {
		t.Fatalf("ParseDateTime error: %v", err)
	}
	want := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDateTime = %v, want %v", got, want)
	}

	if _, err := ParseDateTime("2024-05-10T14:30:00Z"); err == nil {
		t.Fatalf("expected error for RFC3339 input")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	ts := time.Date(2024, 12, 3, 8, 5, 9, 0, time.UTC)

	if got := FormatDate(ts); got != "2024-12-03" {
		t.Fatalf("FormatDate = %q, want 2024-12-03", got)
	}
	if got := FormatDateTime(ts); got != "2024-12-03 08:05:09" {
		t.Fatalf("FormatDateTime = %q, want 2024-12-03 08:05:09", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("duplicate key value violates unique constraint \"shipments_bility_no_key\""), true},
		{errors.New("ERROR: something (SQLSTATE 23505)"), true},
		{errors.New("UNIQUE constraint failed: users.username"), true},
		{errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		if got := IsUniqueViolation(tt.err); got != tt.want {
			t.Fatalf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
