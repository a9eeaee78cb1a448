package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/clock"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/billing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// Activator is the slice of the registration controller the ledger needs:
// the system-initiated activation on first confirmed payment.
type Activator interface {
	ConfirmPayment(ctx context.Context, ev model.PaymentConfirmed) error
}

// Service consumes payment-processor webhook deliveries. It is the only
// writer of the payment ledger; the rest of the core only reads. Amount and
// kind are recorded exactly as delivered and never touched again; a later
// delivery for the same payment may only move the status.
type Service struct {
	storage   storage.Storage
	activator Activator
	clock     clock.Clock
	logger    *slog.Logger
}

// New creates a new ledger service
func New(storage storage.Storage, activator Activator, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		activator: activator,
		clock:     clock,
		logger:    logger,
	}
}

// WebhookEvent is one payment-processor delivery. PaymentID is the
// processor's identifier for the payment; deliveries sharing it address the
// same ledger entry.
type WebhookEvent struct {
	PaymentID  string
	PlayerID   model.PlayerID
	GuardianID model.GuardianID // optional cross-check against the player's guardian
	Amount     string
	Kind       model.PaymentKind
	Status     string
}

// RecordPayment appends or updates one ledger entry and, when the delivery
// confirms the player's first payment, raises the activation event. The
// state write and the activation are deliberately sequential: the ledger
// entry lands even when activation is not applicable.
func (s *Service) RecordPayment(ctx context.Context, ev WebhookEvent) (*model.Payment, error) {
	player, err := s.storage.GetPlayer(ctx, ev.PlayerID)
	if err != nil {
		return nil, err
	}

	if ev.GuardianID != "" && ev.GuardianID != player.GuardianID {
		s.logger.Warn("webhook guardian does not match player's guardian",
			slog.String("player_id", string(ev.PlayerID)),
			slog.String("webhook_guardian", string(ev.GuardianID)),
		)
		return nil, model.ErrGuardianNotFound
	}

	if !model.ValidPaymentKind(ev.Kind) {
		return nil, model.ErrInvalidPaymentKind
	}

	payment, err := s.upsert(ctx, ev)
	if err != nil {
		return nil, err
	}

	if billing.IsPaidStatus(payment.Status) {
		s.maybeActivate(ctx, player, payment)
	}

	return payment, nil
}

// upsert writes the ledger entry. A known payment ID only moves status; an
// unknown one appends a fresh entry.
func (s *Service) upsert(ctx context.Context, ev WebhookEvent) (*model.Payment, error) {
	id := model.PaymentID(ev.PaymentID)
	if id == "" {
		id = model.PaymentID(uuid.NewString())
	}

	existing, err := s.storage.GetPayment(ctx, id)
	if err != nil && !errors.Is(err, model.ErrPaymentNotFound) {
		return nil, err
	}

	if existing != nil {
		now := s.clock.Now()
		if err := s.storage.UpdatePaymentStatus(ctx, id, ev.Status, now); err != nil {
			return nil, err
		}
		existing.Status = ev.Status
		existing.UpdatedAt = now
		s.logger.Info("payment status updated",
			slog.String("payment_id", string(id)),
			slog.String("status", ev.Status),
		)
		return existing, nil
	}

	now := s.clock.Now()
	payment := &model.Payment{
		ID:        id,
		PlayerID:  ev.PlayerID,
		Amount:    ev.Amount,
		Kind:      ev.Kind,
		Status:    ev.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.AppendPayment(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		slog.String("payment_id", string(id)),
		slog.String("player_id", string(ev.PlayerID)),
		slog.String("kind", string(ev.Kind)),
		slog.String("status", ev.Status),
	)

	return payment, nil
}

// maybeActivate raises PaymentConfirmed for an approved player. A payment
// landing for a player who is not approved yet is kept in the ledger but
// cannot activate anyone; dashboards pick it up once the player is approved.
func (s *Service) maybeActivate(ctx context.Context, player *model.Player, payment *model.Payment) {
	switch player.Status {
	case model.PlayerStatusApproved, model.PlayerStatusActive:
		ev := model.PaymentConfirmed{
			PlayerID:   player.ID,
			PaymentID:  payment.ID,
			ObservedAt: s.clock.Now(),
		}
		if err := s.activator.ConfirmPayment(ctx, ev); err != nil {
			s.logger.Error("activation on confirmed payment failed",
				slog.String("player_id", string(player.ID)),
				slog.String("payment_id", string(payment.ID)),
				slog.String("error", err.Error()),
			)
		}
	default:
		s.logger.Warn("paid payment recorded for non-approved player",
			slog.String("player_id", string(player.ID)),
			slog.String("status", string(player.Status)),
			slog.String("payment_id", string(payment.ID)),
		)
	}
}
