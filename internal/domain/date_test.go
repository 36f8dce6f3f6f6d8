package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-06-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date.String() != "2024-06-30" {
		t.Fatalf("round trip mismatch: %q", date.String())
	}

	if _, err := ParseDate("30/06/2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatalf("expected error for impossible month")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	date := NewDate(2023, time.November, 5)

	raw, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"2023-11-05"` {
		t.Fatalf("unexpected wire form: %s", raw)
	}

	var decoded Date
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.String() != date.String() {
		t.Fatalf("round trip mismatch: %q != %q", decoded.String(), date.String())
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var date Date
	if err := json.Unmarshal([]byte("null"), &date); err != nil {
		t.Fatalf("unmarshal null failed: %v", err)
	}
	if !date.IsZero() {
		t.Fatalf("null should decode to the zero date")
	}
}

func TestDateAddDays(t *testing.T) {
	date := NewDate(2024, time.February, 28)
	if got := date.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("leap day expected, got %q", got)
	}
	if got := date.AddDays(-28).String(); got != "2024-01-31" {
		t.Fatalf("month rollback expected, got %q", got)
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	stamp := time.Date(2024, time.July, 4, 23, 59, 58, 0, time.UTC)
	date := DateOf(stamp)
	if date.String() != "2024-07-04" {
		t.Fatalf("unexpected date: %q", date.String())
	}
	if !date.Time().Equal(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("time component should be midnight UTC, got %v", date.Time())
	}
}
