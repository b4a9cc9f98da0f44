package models

import (
	"time"

	"gorm.io/gorm"
)

// DebtState is the derived payment state of a debt. Only IsPaid and PaidAt
// are persisted; the state is a view over the two flags.
type DebtState string

const (
	DebtUnpaid     DebtState = "UNPAID"
	DebtMarkedPaid DebtState = "MARKED_PAID"
	DebtConfirmed  DebtState = "CONFIRMED"
)

// Debt is one directional transfer obligation produced by a settlement run.
// The amount is fixed at creation; a roster change deletes the whole debt set
// of the game and re-runs the solver instead of patching amounts.
type Debt struct {
	gorm.Model

	GameID     uint  `gorm:"index" json:"game_id"`
	CreditorID int64 `gorm:"index" json:"creditor_id"`
	DebtorID   int64 `gorm:"index" json:"debtor_id"`

	// Always positive: the solver never emits zero transfers.
	Amount int64 `json:"amount"`

	IsPaid bool       `gorm:"default:false" json:"is_paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`

	// NoticeRef is the external message reference returned by the
	// notification channel, used to edit or delete the notice later.
	NoticeRef *string `gorm:"size:128" json:"notice_ref,omitempty"`

	// RefID groups all debts created by one solver run.
	RefID string `gorm:"size:64;index" json:"ref_id"`
}

// MarkPaid records the debtor's claim that payment was sent. It sets the flag
// without a timestamp: the debt stays open until the creditor confirms.
func (d *Debt) MarkPaid() {
	d.IsPaid = true
}

// Confirm records the creditor's confirmation of receipt and stamps the
// payment time. Confirming an already-confirmed debt is a no-op.
func (d *Debt) Confirm(now time.Time) {
	if d.IsPaid && d.PaidAt != nil {
		return
	}
	d.IsPaid = true
	d.PaidAt = &now
}

// Dispute records the creditor rejecting a mark-as-paid claim. The flag is
// cleared but the dispute time is stamped, matching the historical behavior
// downstream queries rely on: either condition alone keeps the debt open.
func (d *Debt) Dispute(now time.Time) {
	d.IsPaid = false
	d.PaidAt = &now
}

// Unsettled reports whether the debt still counts as open. Both flags gate
// independently: a marked-but-unconfirmed debt has IsPaid set and no
// timestamp, a disputed one has a timestamp and no flag.
func (d *Debt) Unsettled() bool {
	return !d.IsPaid || d.PaidAt == nil
}

// State is the derived payment state.
func (d *Debt) State() DebtState {
	switch {
	case d.IsPaid && d.PaidAt != nil:
		return DebtConfirmed
	case d.IsPaid:
		return DebtMarkedPaid
	default:
		return DebtUnpaid
	}
}
