package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusAvailable, StatusPending, true},
		{StatusAvailable, StatusSold, false},
		{StatusAvailable, StatusTaken, false},
		{StatusAvailable, StatusAvailable, false},
		{StatusPending, StatusAvailable, true},
		{StatusPending, StatusSold, true},
		{StatusPending, StatusTaken, true},
		{StatusPending, StatusPending, false},
		{StatusSold, StatusAvailable, false},
		{StatusSold, StatusPending, false},
		{StatusTaken, StatusAvailable, false},
		{StatusTaken, StatusSold, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s → %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusSold, StatusTaken} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusAvailable, StatusPending} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestClosedStatusFor(t *testing.T) {
	if got := ClosedStatusFor(TypeSale); got != StatusSold {
		t.Errorf("sale closes as %q, want sold", got)
	}
	if got := ClosedStatusFor(TypeDonation); got != StatusTaken {
		t.Errorf("donation closes as %q, want taken", got)
	}
}

func TestEnumValidity(t *testing.T) {
	if ListingType("rental").Valid() {
		t.Error("unknown type accepted")
	}
	if Condition("broken").Valid() {
		t.Error("unknown condition accepted")
	}
	if Status("archived").Valid() {
		t.Error("unknown status accepted")
	}
}
