package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDemoHistory(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	history := DemoHistory(now)

	if len(history) != 2 {
		t.Fatalf("DemoHistory() returned %d entries, want 2", len(history))
	}

	first := history[0]
	if first.Type != TransactionTypeDeposit {
		t.Errorf("first entry type = %v, want %v", first.Type, TransactionTypeDeposit)
	}
	if !first.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("first entry amount = %v, want 1000", first.Amount)
	}
	if !first.Date.Equal(now) {
		t.Errorf("first entry date = %v, want %v", first.Date, now)
	}

	second := history[1]
	if second.Type != TransactionTypeWithdrawal {
		t.Errorf("second entry type = %v, want %v", second.Type, TransactionTypeWithdrawal)
	}
	if !second.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("second entry amount = %v, want 500", second.Amount)
	}
	if !second.Date.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("second entry date = %v, want one day before %v", second.Date, now)
	}
}
