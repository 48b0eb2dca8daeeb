package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDateAcceptsTimestampPrefix(t *testing.T) {
	d, err := ParseDate("2024-01-10T21:30:00.000Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Fatalf("got %s", d)
	}
	if _, err := ParseDate("10/01/2024"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	d := DateOf(time.Date(2024, 1, 10, 23, 59, 0, 0, loc))
	if !d.Equal(NewDate(2024, 1, 10)) {
		t.Fatalf("expected 2024-01-10, got %s", d)
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		From Date `json:"fromDate"`
		To   Date `json:"toDate"`
	}
	if err := json.Unmarshal([]byte(`{"fromDate":"2024-01-10","toDate":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.From.String() != "2024-01-10" || !payload.To.IsZero() {
		t.Fatalf("unexpected payload %+v", payload)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"fromDate":"2024-01-10","toDate":null}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan([]byte("2024-02-29")); err != nil || d.String() != "2024-02-29" {
		t.Fatalf("scan bytes: %v %s", err, d)
	}
	if err := d.Scan(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)); err != nil || d.String() != "2024-03-01" {
		t.Fatalf("scan time: %v %s", err, d)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Fatalf("scan nil: %v %s", err, d)
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange(MustParseDate("2024-01-10"), MustParseDate("2024-01-10"))
	if err != nil {
		t.Fatalf("single day range should be valid: %v", err)
	}
	if r.Days() != 1 {
		t.Fatalf("expected 1 day, got %d", r.Days())
	}

	_, err = NewDateRange(MustParseDate("2024-01-10"), MustParseDate("2024-01-09"))
	if !errors.Is(err, ErrInvalidRange) || !IsValidation(err) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	_, err = NewDateRange(Date{}, MustParseDate("2024-01-09"))
	if !IsValidation(err) {
		t.Fatalf("expected validation error for missing fromDate, got %v", err)
	}
}

func TestDateRangeDays(t *testing.T) {
	r := DateRange{From: NewDate(2024, 2, 27), To: NewDate(2024, 3, 2)}
	if r.Days() != 5 {
		t.Fatalf("expected 5 days across leap day, got %d", r.Days())
	}
}
