package billing

import (
	"context"
	"log/slog"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/pricing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// Service is the read-side reconciliation entry point. It fetches a fresh
// snapshot of a guardian's players and payments on every call and hands them
// to the pure aggregation functions; no balance is ever persisted, so the
// figures cannot drift from the ledger.
type Service struct {
	storage storage.Storage
	pricing pricing.Provider
	logger  *slog.Logger
}

// New creates a new billing service
func New(storage storage.Storage, pricing pricing.Provider, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		pricing: pricing,
		logger:  logger,
	}
}

// GuardianBalance recomputes the guardian's aggregate figures from the
// current ledger snapshot
func (s *Service) GuardianBalance(ctx context.Context, guardianID model.GuardianID) (model.BalanceSummary, error) {
	if _, err := s.storage.GetGuardian(ctx, guardianID); err != nil {
		return model.BalanceSummary{}, err
	}

	players, err := s.storage.GetPlayersByGuardian(ctx, guardianID)
	if err != nil {
		return model.BalanceSummary{}, err
	}

	payments, err := s.storage.GetPaymentsByGuardian(ctx, guardianID)
	if err != nil {
		return model.BalanceSummary{}, err
	}

	fees := s.pricing.Fees(ctx)
	summary := ComputeBalance(players, payments, fees.Annual)

	if summary.ExcludedEntries > 0 {
		s.logger.Warn("corrupt ledger entries excluded from balance",
			slog.String("guardian_id", string(guardianID)),
			slog.Int("excluded", summary.ExcludedEntries),
		)
	}

	return summary, nil
}

// GuardianInvoice derives the invoice line set for a guardian's full payment
// history
func (s *Service) GuardianInvoice(ctx context.Context, guardianID model.GuardianID) ([]model.InvoiceLine, error) {
	if _, err := s.storage.GetGuardian(ctx, guardianID); err != nil {
		return nil, err
	}

	payments, err := s.storage.GetPaymentsByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}

	fees := s.pricing.Fees(ctx)
	lines, excluded := DeriveInvoiceLines(payments, fees)

	if excluded > 0 {
		s.logger.Warn("corrupt ledger entries excluded from invoice",
			slog.String("guardian_id", string(guardianID)),
			slog.Int("excluded", excluded),
		)
	}

	return lines, nil
}
