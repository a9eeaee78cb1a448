package registration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Phronesis2025/wcs-basketball-go/internal/dependencies/mocks"
	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage/memory"
	"github.com/Phronesis2025/wcs-basketball-go/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	dispatcher *mocks.RecordingDispatcher
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.dispatcher = mocks.NewRecordingDispatcher()
	s.controller = NewController(s.storage, s.dispatcher, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGuardian(s.ctx, &model.Guardian{ID: "gu_1", Email: "parent@example.com"}))
	s.Require().NoError(s.storage.SaveTeam(s.ctx, &model.Team{ID: "tm_1", Name: "Thunder", Season: "2026"}))
}

// seedPlayer writes a player directly in the given status
func (s *ControllerSuite) seedPlayer(id model.PlayerID, status model.PlayerStatus) {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:         id,
		GuardianID: "gu_1",
		Status:     status,
		CreatedAt:  s.clock.Now(),
		UpdatedAt:  s.clock.Now(),
	}))
}

func (s *ControllerSuite) register() *model.Player {
	s.random.QueueString("abc123def456")
	player, err := s.controller.Register(s.ctx, RegisterInput{
		DisplayName: "Jordan Mills",
		DateOfBirth: time.Date(2014, 6, 12, 0, 0, 0, 0, time.UTC),
		Grade:       "6",
		Gender:      "F",
		GuardianID:  "gu_1",
	})
	s.Require().NoError(err)
	return player
}

// Register tests

func (s *ControllerSuite) TestRegisterCreatesPendingPlayer() {
	player := s.register()

	s.Equal(model.PlayerID("pl_abc123def456"), player.ID)
	s.Equal(model.PlayerStatusPending, player.Status)
	s.Empty(player.StatusReason)
	s.False(player.HasTeam())
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *ControllerSuite) TestRegisterFailsForUnknownGuardian() {
	_, err := s.controller.Register(s.ctx, RegisterInput{
		DisplayName: "Jordan Mills",
		GuardianID:  "gu_missing",
	})
	s.ErrorIs(err, model.ErrGuardianNotFound)
}

func (s *ControllerSuite) TestRegisterEmitsNoNotification() {
	s.register()
	s.Empty(s.dispatcher.Events())
}

// Approve tests

func (s *ControllerSuite) TestApproveAssignsTeamAndNotifies() {
	player := s.register()

	approved, err := s.controller.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)

	s.Equal(model.PlayerStatusApproved, approved.Status)
	s.Equal(model.TeamID("tm_1"), approved.TeamID)

	last := s.dispatcher.Last()
	s.Require().NotNil(last)
	s.Equal(model.NotificationApproved, last.Event)
	s.Equal(player.ID, last.PlayerID)
	s.Equal(model.GuardianID("gu_1"), last.GuardianID)
	s.Equal("checkout/"+string(player.ID), last.PaymentRef)
}

func (s *ControllerSuite) TestApproveFailsForUnknownTeam() {
	player := s.register()

	_, err := s.controller.Approve(s.ctx, player.ID, "tm_missing")
	s.ErrorIs(err, model.ErrUnknownTeam)

	// Status is untouched and nothing was emitted
	stored, getErr := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(getErr)
	s.Equal(model.PlayerStatusPending, stored.Status)
	s.Empty(s.dispatcher.Events())
}

func (s *ControllerSuite) TestApproveFailsForUnknownPlayer() {
	_, err := s.controller.Approve(s.ctx, "pl_missing", "tm_1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Hold tests

func (s *ControllerSuite) TestHoldRecordsReasonAndNotifies() {
	player := s.register()

	held, err := s.controller.Hold(s.ctx, player.ID, "missing birth certificate")
	s.Require().NoError(err)

	s.Equal(model.PlayerStatusOnHold, held.Status)
	s.Equal("missing birth certificate", held.StatusReason)

	last := s.dispatcher.Last()
	s.Require().NotNil(last)
	s.Equal(model.NotificationOnHold, last.Event)
	s.Equal("missing birth certificate", last.Reason)
}

func (s *ControllerSuite) TestHoldRequiresReason() {
	player := s.register()

	_, err := s.controller.Hold(s.ctx, player.ID, "")
	s.ErrorIs(err, model.ErrMissingReason)

	_, err = s.controller.Hold(s.ctx, player.ID, "   ")
	s.ErrorIs(err, model.ErrMissingReason)

	// Player stays pending and no event fires
	stored, getErr := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(getErr)
	s.Equal(model.PlayerStatusPending, stored.Status)
	s.Empty(s.dispatcher.Events())
}

func (s *ControllerSuite) TestHoldTrimsReason() {
	player := s.register()

	held, err := s.controller.Hold(s.ctx, player.ID, "  needs documents  ")
	s.Require().NoError(err)
	s.Equal("needs documents", held.StatusReason)
}

// Reject tests

func (s *ControllerSuite) TestRejectRecordsReasonAndNotifies() {
	player := s.register()

	rejected, err := s.controller.Reject(s.ctx, player.ID, "age limit exceeded")
	s.Require().NoError(err)

	s.Equal(model.PlayerStatusRejected, rejected.Status)
	s.Equal("age limit exceeded", rejected.StatusReason)

	last := s.dispatcher.Last()
	s.Require().NotNil(last)
	s.Equal(model.NotificationRejected, last.Event)
	s.Equal("age limit exceeded", last.Reason)
}

func (s *ControllerSuite) TestRejectRequiresReason() {
	player := s.register()

	_, err := s.controller.Reject(s.ctx, player.ID, " ")
	s.ErrorIs(err, model.ErrMissingReason)
}

func (s *ControllerSuite) TestRejectedIsTerminal() {
	player := s.register()
	_, err := s.controller.Reject(s.ctx, player.ID, "duplicate registration")
	s.Require().NoError(err)

	_, err = s.controller.Approve(s.ctx, player.ID, "tm_1")
	s.ErrorIs(err, model.ErrInvalidTransition)

	_, err = s.controller.Revert(s.ctx, player.ID)
	s.ErrorIs(err, model.ErrInvalidTransition)
}

// Revert tests

func (s *ControllerSuite) TestRevertReturnsHeldPlayerToPending() {
	player := s.register()
	_, err := s.controller.Hold(s.ctx, player.ID, "awaiting paperwork")
	s.Require().NoError(err)

	reverted, err := s.controller.Revert(s.ctx, player.ID)
	s.Require().NoError(err)

	s.Equal(model.PlayerStatusPending, reverted.Status)
	s.Empty(reverted.StatusReason)

	last := s.dispatcher.Last()
	s.Require().NotNil(last)
	s.Equal(model.NotificationStatusChanged, last.Event)
}

func (s *ControllerSuite) TestRevertFailsFromPending() {
	player := s.register()

	_, err := s.controller.Revert(s.ctx, player.ID)
	s.ErrorIs(err, model.ErrInvalidTransition)
}

// ConfirmPayment tests

func (s *ControllerSuite) TestConfirmPaymentActivatesApprovedPlayer() {
	player := s.register()
	_, err := s.controller.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)

	err = s.controller.ConfirmPayment(s.ctx, model.PaymentConfirmed{
		PlayerID:   player.ID,
		PaymentID:  "pay_1",
		ObservedAt: s.clock.Now(),
	})
	s.Require().NoError(err)

	stored, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusActive, stored.Status)

	last := s.dispatcher.Last()
	s.Require().NotNil(last)
	s.Equal(model.NotificationActive, last.Event)
}

func (s *ControllerSuite) TestConfirmPaymentIsIdempotentForActivePlayer() {
	player := s.register()
	_, err := s.controller.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)

	ev := model.PaymentConfirmed{PlayerID: player.ID, PaymentID: "pay_1"}
	s.Require().NoError(s.controller.ConfirmPayment(s.ctx, ev))

	before := len(s.dispatcher.Events())
	s.Require().NoError(s.controller.ConfirmPayment(s.ctx, ev))
	s.Equal(before, len(s.dispatcher.Events()), "redelivery must not emit another event")
}

func (s *ControllerSuite) TestConfirmPaymentFailsForPendingPlayer() {
	player := s.register()

	err := s.controller.ConfirmPayment(s.ctx, model.PaymentConfirmed{PlayerID: player.ID, PaymentID: "pay_1"})
	s.ErrorIs(err, model.ErrInvalidTransition)
}

// Transition table tests

func (s *ControllerSuite) TestEveryDisallowedTransitionFails() {
	// Drive each disallowed (from, to) pair through the operator entry
	// points and through ConfirmPayment, and check nothing moves
	type attempt func(id model.PlayerID) error

	attempts := map[model.PlayerStatus]attempt{
		model.PlayerStatusApproved: func(id model.PlayerID) error {
			_, err := s.controller.Approve(s.ctx, id, "tm_1")
			return err
		},
		model.PlayerStatusOnHold: func(id model.PlayerID) error {
			_, err := s.controller.Hold(s.ctx, id, "some reason")
			return err
		},
		model.PlayerStatusRejected: func(id model.PlayerID) error {
			_, err := s.controller.Reject(s.ctx, id, "some reason")
			return err
		},
		model.PlayerStatusPending: func(id model.PlayerID) error {
			_, err := s.controller.Revert(s.ctx, id)
			return err
		},
		model.PlayerStatusActive: func(id model.PlayerID) error {
			return s.controller.ConfirmPayment(s.ctx, model.PaymentConfirmed{PlayerID: id, PaymentID: "pay_x"})
		},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			if CanTransition(from, to) {
				continue
			}
			if from == model.PlayerStatusActive && to == model.PlayerStatusActive {
				// ConfirmPayment treats active -> active as an idempotent no-op
				continue
			}

			id := model.PlayerID("pl_" + string(from) + "_" + string(to))
			s.seedPlayer(id, from)

			err := attempts[to](id)
			s.ErrorIs(err, model.ErrInvalidTransition, "%s -> %s must be invalid", from, to)

			stored, getErr := s.storage.GetPlayer(s.ctx, id)
			s.Require().NoError(getErr)
			s.Equal(from, stored.Status, "%s -> %s must leave status untouched", from, to)
		}
	}
}

// Concurrency tests

func (s *ControllerSuite) TestConcurrentTransitionOnlyOneWins() {
	player := s.register()

	// First operator approves
	_, err := s.controller.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)

	// Second operator, racing on the same pending player, loses on
	// re-validation: the machine sees approved, not a stale conflict
	_, err = s.controller.Reject(s.ctx, player.ID, "incomplete forms")
	s.ErrorIs(err, model.ErrInvalidTransition)

	// Exactly one notification fired
	events := s.dispatcher.Events()
	s.Require().Len(events, 1)
	s.Equal(model.NotificationApproved, events[0].Event)
}

func (s *ControllerSuite) TestTransitionRetriesExhaustedReportsConcurrentModification() {
	player := s.register()

	// Storage that always loses the conditional write
	conflicting := &conflictingStorage{Storage: s.storage}
	controller := NewController(conflicting, s.dispatcher, s.clock, s.random, testutil.NopLogger())

	_, err := controller.Approve(s.ctx, player.ID, "tm_1")
	s.ErrorIs(err, model.ErrConcurrentModification)
	s.Equal(maxTransitionRetries, conflicting.updateCalls)
}

// conflictingStorage fails every conditional player write with a version
// conflict, simulating a competitor that always wins the race
type conflictingStorage struct {
	*memory.Storage
	updateCalls int
}

func (c *conflictingStorage) UpdatePlayer(ctx context.Context, player *model.Player, expectedVersion int64) error {
	c.updateCalls++
	return model.ErrVersionConflict
}
