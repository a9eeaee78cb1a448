package billing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
)

// annualUnits is how many monthly-equivalent units one annual payment covers
const annualUnits = 12

// IsPaidStatus normalizes the payment processor's status string. A payment
// counts as paid when the status equals "paid" or "succeeded", or contains
// "paid" anywhere, case-insensitively. Every paid/non-paid classification in
// the engine goes through this one function so the two read paths can never
// drift apart.
func IsPaidStatus(raw string) bool {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "paid" || status == "succeeded" {
		return true
	}
	return strings.Contains(status, "paid")
}

// parseAmount turns a payment's recorded amount into a decimal. Negative and
// unparseable amounts are corrupt ledger entries; the caller excludes them
// from aggregation instead of failing the whole computation.
func parseAmount(p *model.Payment) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: payment %s: %v", model.ErrCorruptLedgerEntry, p.ID, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: payment %s: negative amount %s", model.ErrCorruptLedgerEntry, p.ID, p.Amount)
	}
	return amount, nil
}

// billable reports whether a player accrues a payment obligation. Only
// players in or past approved status do; pending, held and rejected
// registrations owe nothing yet.
func billable(p *model.Player) bool {
	return p.Status == model.PlayerStatusApproved || p.Status == model.PlayerStatusActive
}

// ComputeBalance aggregates a guardian's figures across all of that
// guardian's players. It never persists anything; the balance is always
// recomputed from the ledger snapshot it is handed.
//
// Remaining is clamped at zero: overpayment is absorbed silently, there is no
// credit tracking here.
func ComputeBalance(players []*model.Player, payments []*model.Payment, annualFeePerChild decimal.Decimal) model.BalanceSummary {
	totalPaid := decimal.Zero
	excluded := 0

	for _, payment := range payments {
		if !IsPaidStatus(payment.Status) {
			continue
		}
		amount, err := parseAmount(payment)
		if err != nil {
			excluded++
			continue
		}
		totalPaid = totalPaid.Add(amount)
	}

	children := 0
	for _, player := range players {
		if billable(player) {
			children++
		}
	}
	// The floor of 1 is a business rule: a guardian record with no billable
	// children still carries one annual obligation.
	if children < 1 {
		children = 1
	}

	totalDue := annualFeePerChild.Mul(decimal.NewFromInt(int64(children)))

	remaining := totalDue.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return model.BalanceSummary{
		TotalPaid:       totalPaid,
		TotalDue:        totalDue,
		Remaining:       remaining,
		ExcludedEntries: excluded,
	}
}

// DeriveInvoiceLines synthesizes one display row per paid payment. The
// amount column is the amount actually recorded, which may legitimately
// differ from quantity x unit price for partial payments. Lines come back
// sorted by payment date, newest first. The input slice is never mutated and
// repeated calls yield identical output.
func DeriveInvoiceLines(payments []*model.Payment, fees model.FeeSchedule) ([]model.InvoiceLine, int) {
	sorted := make([]*model.Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	lines := make([]model.InvoiceLine, 0, len(sorted))
	excluded := 0

	for _, payment := range sorted {
		if !IsPaidStatus(payment.Status) {
			continue
		}
		amount, err := parseAmount(payment)
		if err != nil {
			excluded++
			continue
		}

		quantity := 1
		if payment.Kind == model.PaymentKindAnnual {
			quantity = annualUnits
		}

		lines = append(lines, model.InvoiceLine{
			PaymentID:  payment.ID,
			Period:     payment.CreatedAt.Format("Jan 2006"),
			Kind:       payment.Kind,
			UnitPrice:  fees.UnitPrice(payment.Kind),
			Quantity:   quantity,
			AmountPaid: amount,
			PaidAt:     payment.CreatedAt,
		})
	}

	return lines, excluded
}
