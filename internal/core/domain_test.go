package core

import (
	"testing"
	"time"
)

func TestParseIntentLabel(t *testing.T) {
	cases := []struct {
		in   string
		want IntentLabel
		ok   bool
	}{
		{"despesa", LabelExpense, true},
		{"pergunta", LabelQuestion, true},
		{"outro", LabelOther, true},
		{"banana", LabelOther, false},
		{"", LabelOther, false},
	}
	for _, tc := range cases {
		got, ok := ParseIntentLabel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseIntentLabel(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	now := time.Now()
	good := ExpenseRecord{Amount: Money{Cents: 5000}, Category: "mercado", CreatedAt: now}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amounts pass: plausibility is not this system's call.
	zeroAmount := ExpenseRecord{Amount: Money{}, Category: "mercado", CreatedAt: now}
	if err := zeroAmount.Validate(); err != nil {
		t.Fatalf("zero amount should be accepted, got %v", err)
	}

	if err := (ExpenseRecord{Amount: Money{Cents: 1}, Category: "  ", CreatedAt: now}).Validate(); err == nil {
		t.Fatal("expected error for blank category")
	}
	if err := (ExpenseRecord{Amount: Money{Cents: 1}, Category: "x"}).Validate(); err == nil {
		t.Fatal("expected error for zero timestamp")
	}
}
