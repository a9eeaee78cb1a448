package model

import "github.com/shopspring/decimal"

// FeeSchedule carries the three fee figures invoice lines are priced with.
// The three numbers are deliberately sourced differently (annual from static
// config, monthly from a built-in constant, quarterly from a remote lookup);
// this struct is the one seam the engine sees so it stays agnostic to where
// each number came from.
type FeeSchedule struct {
	Annual    decimal.Decimal
	Monthly   decimal.Decimal
	Quarterly decimal.Decimal
}

// UnitPrice returns the fee matching a payment kind. Unknown kinds price at
// zero rather than erroring; the engine is a read-side reporting function and
// always renders something.
func (f FeeSchedule) UnitPrice(kind PaymentKind) decimal.Decimal {
	switch kind {
	case PaymentKindAnnual:
		return f.Annual
	case PaymentKindMonthly:
		return f.Monthly
	case PaymentKindQuarterly:
		return f.Quarterly
	}
	return decimal.Zero
}
