package model

import "time"

// PaymentID uniquely identifies a ledger entry
type PaymentID string

// PaymentKind is the billing cadence the payment was made against
type PaymentKind string

const (
	PaymentKindAnnual    PaymentKind = "annual"
	PaymentKindMonthly   PaymentKind = "monthly"
	PaymentKindQuarterly PaymentKind = "quarterly"
)

// ValidPaymentKind reports whether k is a cadence the processor can deliver
func ValidPaymentKind(k PaymentKind) bool {
	switch k {
	case PaymentKindAnnual, PaymentKindMonthly, PaymentKindQuarterly:
		return true
	}
	return false
}

// Payment is one immutable ledger entry appended by the payment processor's
// webhook. Amount and Kind never change once recorded; Status may be updated
// in place by a later webhook delivery (e.g. pending -> paid).
type Payment struct {
	ID       PaymentID
	PlayerID PlayerID

	// Amount is kept exactly as the processor reported it, as a decimal
	// string. Parsing happens at read time so a malformed delivery is
	// representable and can be excluded from aggregation instead of being
	// silently rewritten.
	Amount string

	Kind PaymentKind

	// Status is the raw processor string. Classification as paid/non-paid
	// goes through billing.IsPaidStatus everywhere.
	Status string

	CreatedAt time.Time
	UpdatedAt time.Time
}
