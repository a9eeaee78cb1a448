package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one synthesized display row per paid payment. Derived at
// read time, never persisted.
type InvoiceLine struct {
	PaymentID PaymentID
	Period    string // billing period label, e.g. "Jan 2026"
	Kind      PaymentKind
	UnitPrice decimal.Decimal
	// Quantity is 12 for annual payments (twelve monthly-equivalent units),
	// otherwise 1.
	Quantity int
	// AmountPaid is the amount actually recorded, which may differ from
	// Quantity x UnitPrice. Partial payments are legitimate and shown as paid.
	AmountPaid decimal.Decimal
	PaidAt     time.Time
}

// BalanceSummary is the aggregate figure set for one guardian across all of
// that guardian's players.
type BalanceSummary struct {
	TotalPaid decimal.Decimal
	TotalDue  decimal.Decimal
	Remaining decimal.Decimal
	// ExcludedEntries counts ledger rows dropped from aggregation because
	// their amount was negative or unparseable. Non-zero means the figures
	// are partial and the UI should warn.
	ExcludedEntries int
}
