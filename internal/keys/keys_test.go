package keys

import (
	"testing"
	"time"
)

func TestOrders_KeyFormat(t *testing.T) {
	got := Orders("2025-04-01")
	if got != "food_orders:2025-04-01" {
		t.Fatalf("Orders() = %q; want %q", got, "food_orders:2025-04-01")
	}
}

func TestMessageArchive_KeyFormat(t *testing.T) {
	cases := []struct {
		id   int64
		want string
	}{
		{1, "messages:user:1"},
		{123456789, "messages:user:123456789"},
		{-7, "messages:user:-7"}, // Telegram IDs are positive, but the mapping must stay total
	}
	for _, tc := range cases {
		if got := MessageArchive(tc.id); got != tc.want {
			t.Fatalf("MessageArchive(%d) = %q; want %q", tc.id, got, tc.want)
		}
	}
}

func TestDateString_LocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// 23:30 local on March 3rd must not roll over to the 4th.
	at := time.Date(2025, 3, 3, 23, 30, 0, 0, loc)
	if got := DateString(at); got != "2025-03-03" {
		t.Fatalf("DateString() = %q; want %q", got, "2025-03-03")
	}
}

func TestDateString_ZeroPadded(t *testing.T) {
	at := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	if got := DateString(at); got != "2025-01-05" {
		t.Fatalf("DateString() = %q; want zero-padded %q", got, "2025-01-05")
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2025-01-05", "1999-12-31"}
	for _, s := range valid {
		if !ValidDate(s) {
			t.Fatalf("ValidDate(%q) = false; want true", s)
		}
	}
	invalid := []string{"", "2025-1-5", "2025-13-01", "05-01-2025", "today", "2025-01-05T10:00"}
	for _, s := range invalid {
		if ValidDate(s) {
			t.Fatalf("ValidDate(%q) = true; want false", s)
		}
	}
}
