package models

import "testing"

func TestTransactionTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusRejected, true},
		{StatusApproved, StatusPending, false},
		{StatusCompleted, StatusRejected, false},
		{StatusCompleted, StatusApproved, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s → %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransactionTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusRejected} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusApproved} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestParticipant(t *testing.T) {
	tx := &Transaction{BuyerID: "b", SellerID: "s"}
	if !tx.Participant("b") || !tx.Participant("s") {
		t.Error("buyer and seller are participants")
	}
	if tx.Participant("x") || tx.Participant("") {
		t.Error("strangers are not participants")
	}
}
