package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/clock"
	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/random"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/notification"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// maxTransitionRetries bounds the read-validate-write loop when the
// conditional write loses to a concurrent transition
const maxTransitionRetries = 3

const playerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Controller owns a player's status and the side effects of every
// transition. All writes go through a compare-and-set cycle against the
// stored record: two admins racing to approve and reject the same pending
// player cannot both win, and only the winner's notification fires.
type Controller struct {
	storage    storage.Storage
	dispatcher notification.Dispatcher
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
}

// NewController creates a new registration Controller
func NewController(
	storage storage.Storage,
	dispatcher notification.Dispatcher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		dispatcher: dispatcher,
		clock:      clock,
		random:     random,
		logger:     logger,
	}
}

// RegisterInput carries a registration submission
type RegisterInput struct {
	DisplayName string
	DateOfBirth time.Time
	Grade       string
	Gender      string
	GuardianID  model.GuardianID
}

// Register creates a new player in pending status
func (c *Controller) Register(ctx context.Context, in RegisterInput) (*model.Player, error) {
	if _, err := c.storage.GetGuardian(ctx, in.GuardianID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID("pl_" + c.random.String(12, playerIDAlphabet)),
		DisplayName: in.DisplayName,
		DateOfBirth: in.DateOfBirth,
		Grade:       in.Grade,
		Gender:      in.Gender,
		GuardianID:  in.GuardianID,
		Status:      model.PlayerStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	c.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("guardian_id", string(player.GuardianID)),
	)

	return player, nil
}

// GetPlayer retrieves a player by ID
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.storage.GetPlayer(ctx, id)
}

// Approve moves a pending player to approved and assigns the team. The
// emitted notification carries the payment reference the guardian pays
// against.
func (c *Controller) Approve(ctx context.Context, playerID model.PlayerID, teamID model.TeamID) (*model.Player, error) {
	exists, err := c.storage.TeamExists(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUnknownTeam
	}

	player, err := c.transition(ctx, playerID, model.PlayerStatusApproved, func(p *model.Player) {
		p.TeamID = teamID
		p.StatusReason = ""
	})
	if err != nil {
		return nil, err
	}

	c.dispatcher.Enqueue(model.Notification{
		Event:      model.NotificationApproved,
		PlayerID:   player.ID,
		GuardianID: player.GuardianID,
		PaymentRef: paymentRef(player.ID),
		EmittedAt:  c.clock.Now(),
	})

	return player, nil
}

// Hold moves a pending player to on_hold with a required reason
func (c *Controller) Hold(ctx context.Context, playerID model.PlayerID, reason string) (*model.Player, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, model.ErrMissingReason
	}

	player, err := c.transition(ctx, playerID, model.PlayerStatusOnHold, func(p *model.Player) {
		p.StatusReason = reason
	})
	if err != nil {
		return nil, err
	}

	c.dispatcher.Enqueue(model.Notification{
		Event:      model.NotificationOnHold,
		PlayerID:   player.ID,
		GuardianID: player.GuardianID,
		Reason:     reason,
		EmittedAt:  c.clock.Now(),
	})

	return player, nil
}

// Reject declines a pending registration with a required reason. Rejected is
// terminal.
func (c *Controller) Reject(ctx context.Context, playerID model.PlayerID, reason string) (*model.Player, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, model.ErrMissingReason
	}

	player, err := c.transition(ctx, playerID, model.PlayerStatusRejected, func(p *model.Player) {
		p.StatusReason = reason
	})
	if err != nil {
		return nil, err
	}

	c.dispatcher.Enqueue(model.Notification{
		Event:      model.NotificationRejected,
		PlayerID:   player.ID,
		GuardianID: player.GuardianID,
		Reason:     reason,
		EmittedAt:  c.clock.Now(),
	})

	return player, nil
}

// Revert moves an on_hold player back to pending
func (c *Controller) Revert(ctx context.Context, playerID model.PlayerID) (*model.Player, error) {
	player, err := c.transition(ctx, playerID, model.PlayerStatusPending, func(p *model.Player) {
		p.StatusReason = ""
	})
	if err != nil {
		return nil, err
	}

	c.dispatcher.Enqueue(model.Notification{
		Event:      model.NotificationStatusChanged,
		PlayerID:   player.ID,
		GuardianID: player.GuardianID,
		EmittedAt:  c.clock.Now(),
	})

	return player, nil
}

// ConfirmPayment is the system-initiated approved -> active transition,
// driven by the ledger's PaymentConfirmed event, never by an operator. A
// repeat event for an already-active player is a no-op so webhook
// redeliveries stay harmless.
func (c *Controller) ConfirmPayment(ctx context.Context, ev model.PaymentConfirmed) error {
	current, err := c.storage.GetPlayer(ctx, ev.PlayerID)
	if err != nil {
		return err
	}
	if current.Status == model.PlayerStatusActive {
		return nil
	}

	player, err := c.transition(ctx, ev.PlayerID, model.PlayerStatusActive, nil)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTransition) {
			// Concurrent activation already landed
			refreshed, getErr := c.storage.GetPlayer(ctx, ev.PlayerID)
			if getErr == nil && refreshed.Status == model.PlayerStatusActive {
				return nil
			}
		}
		return err
	}

	c.logger.Info("player activated on first confirmed payment",
		slog.String("player_id", string(player.ID)),
		slog.String("payment_id", string(ev.PaymentID)),
	)

	c.dispatcher.Enqueue(model.Notification{
		Event:      model.NotificationActive,
		PlayerID:   player.ID,
		GuardianID: player.GuardianID,
		EmittedAt:  c.clock.Now(),
	})

	return nil
}

// transition runs the read-validate-write cycle under optimistic
// concurrency. mutate is applied to the freshly read record after the
// transition is validated against the table; validation repeats on every
// retry so a competitor's win is seen as the new current state, not as a
// stale conflict.
func (c *Controller) transition(
	ctx context.Context,
	playerID model.PlayerID,
	to model.PlayerStatus,
	mutate func(*model.Player),
) (*model.Player, error) {
	for attempt := 0; attempt < maxTransitionRetries; attempt++ {
		player, err := c.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}

		if !CanTransition(player.Status, to) {
			return nil, fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, player.Status, to)
		}

		from := player.Status
		player.Status = to
		if mutate != nil {
			mutate(player)
		}
		player.UpdatedAt = c.clock.Now()

		err = c.storage.UpdatePlayer(ctx, player, player.Version)
		if errors.Is(err, model.ErrVersionConflict) {
			c.logger.Info("transition lost conditional write, retrying",
				slog.String("player_id", string(playerID)),
				slog.String("to", string(to)),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		c.logger.Info("player status changed",
			slog.String("player_id", string(playerID)),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
		)
		return player, nil
	}

	return nil, model.ErrConcurrentModification
}

// paymentRef builds the checkout reference handed to the guardian when a
// player is approved
func paymentRef(id model.PlayerID) string {
	return "checkout/" + string(id)
}

// Interface for dependency injection
type ControllerInterface interface {
	Register(ctx context.Context, in RegisterInput) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	Approve(ctx context.Context, playerID model.PlayerID, teamID model.TeamID) (*model.Player, error)
	Hold(ctx context.Context, playerID model.PlayerID, reason string) (*model.Player, error)
	Reject(ctx context.Context, playerID model.PlayerID, reason string) (*model.Player, error)
	Revert(ctx context.Context, playerID model.PlayerID) (*model.Player, error)
	ConfirmPayment(ctx context.Context, ev model.PaymentConfirmed) error
}

var _ ControllerInterface = (*Controller)(nil)
