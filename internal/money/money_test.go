package money

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{99, "$0.99"},
		{100, "$1.00"},
		{1234, "$12.34"},
		{1250, "$12.50"},
		{500, "$5.00"},
		{100000, "$1,000.00"},
		{123456789, "$1,234,567.89"},
		{-50, "-$0.50"},
		{-1234, "-$12.34"},
		{-100000, "-$1,000.00"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestToCents(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{12.34, 1234},
		{0.1, 10},
		{19.99, 1999},
		{10.005, 1001}, // rounds half up
		{-0.5, -50},
	}
	for _, tc := range cases {
		if got := ToCents(tc.amount); got != tc.want {
			t.Errorf("ToCents(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

// Every cents value produced by our own writers must format and parse back
// to the same value.
func TestFormatCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 9, 10, 99, 100, 101, 999, 1000, 123456, 99999999} {
		s := FormatCents(cents)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if got := ToCents(f); got != cents {
			t.Errorf("round trip %d -> %q -> %d", cents, FormatCents(cents), got)
		}
	}
}
