package util

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "zero", amount: "0", expected: "$0.00"},
		{name: "whole dollars", amount: "10", expected: "$10.00"},
		{name: "rounds half away from zero", amount: "0.105", expected: "$0.11"},
		{name: "thousands", amount: "1234.5", expected: "$1,234.50"},
		{name: "millions", amount: "1000000", expected: "$1,000,000.00"},
		{name: "negative", amount: "-3", expected: "-$3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatMoney(decimal.RequireFromString(tt.amount)); got != tt.expected {
				t.Fatalf("FormatMoney(%s) = %s, want %s", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "under one minute", duration: 45 * time.Second, expected: "45s"},
		{name: "rounded second to minute", duration: 59*time.Second + 500*time.Millisecond, expected: "1m0s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 30*time.Second, expected: "2m30s"},
		{name: "hours and minutes", duration: time.Hour + 30*time.Minute, expected: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDuration(tt.duration); got != tt.expected {
				t.Fatalf("FormatDuration(%s) = %s, want %s", tt.duration, got, tt.expected)
			}
		})
	}
}
