package models

import (
	"testing"
	"time"
)

func TestDebtStateMachine(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	d := &Debt{Amount: 1000}
	if d.State() != DebtUnpaid || !d.Unsettled() {
		t.Fatalf("fresh debt: state=%s unsettled=%v", d.State(), d.Unsettled())
	}

	d.MarkPaid()
	if d.State() != DebtMarkedPaid {
		t.Fatalf("after mark: state=%s", d.State())
	}
	if !d.Unsettled() {
		t.Fatal("marked-but-unconfirmed debt must still count as open")
	}
	if d.PaidAt != nil {
		t.Fatal("mark-as-paid must not stamp a timestamp")
	}

	d.Confirm(now)
	if d.State() != DebtConfirmed || d.Unsettled() {
		t.Fatalf("after confirm: state=%s unsettled=%v", d.State(), d.Unsettled())
	}
	if d.PaidAt == nil || !d.PaidAt.Equal(now) {
		t.Fatalf("paid_at = %v, want %v", d.PaidAt, now)
	}
}

func TestDebtConfirmIdempotent(t *testing.T) {
	first := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	d := &Debt{Amount: 500}
	d.Confirm(first)
	d.Confirm(later)
	if !d.PaidAt.Equal(first) {
		t.Fatalf("re-confirming moved paid_at to %v, want %v", d.PaidAt, first)
	}
}

func TestDebtDisputeReopens(t *testing.T) {
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	d := &Debt{Amount: 500}
	d.MarkPaid()
	d.Dispute(now)

	if d.State() != DebtUnpaid {
		t.Fatalf("after dispute: state=%s", d.State())
	}
	if !d.Unsettled() {
		t.Fatal("disputed debt must count as open")
	}
	// The dispute time is stamped even though the flag is cleared; the
	// OR-semantics of Unsettled keeps the debt open regardless.
	if d.PaidAt == nil {
		t.Fatal("dispute must stamp the timestamp")
	}
}

func TestUserHandle(t *testing.T) {
	name := "poker_shark"
	withUsername := &User{Fullname: "Alice Adams", Username: &name}
	if got := withUsername.Handle(); got != "@poker_shark" {
		t.Errorf("got %q", got)
	}
	plain := &User{Fullname: "Bob Brown"}
	if got := plain.Handle(); got != "Bob Brown" {
		t.Errorf("got %q", got)
	}
}
