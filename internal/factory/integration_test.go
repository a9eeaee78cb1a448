package factory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/ledger"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/registration"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()

	s.Require().NoError(s.app.Storage.SaveGuardian(s.ctx, &model.Guardian{
		ID:        "gu_1",
		Email:     "parent@example.com",
		CreatedAt: s.app.MockClock.Now(),
	}))
	s.Require().NoError(s.app.Storage.SaveTeam(s.ctx, &model.Team{
		ID:     "tm_1",
		Name:   "Thunder",
		Season: "2026",
	}))
}

// Test: full registration lifecycle from submission to activation
func (s *IntegrationSuite) TestRegistrationLifecycle() {
	// Step 1: Guardian submits a registration
	s.app.MockRandom.QueueString("abc123def456")
	player, err := s.app.RegistrationController.Register(s.ctx, registration.RegisterInput{
		DisplayName: "Jordan Mills",
		DateOfBirth: time.Date(2014, 6, 12, 0, 0, 0, 0, time.UTC),
		Grade:       "6",
		GuardianID:  "gu_1",
	})
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusPending, player.Status)

	// Step 2: Staff approves and assigns a team
	approved, err := s.app.RegistrationController.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusApproved, approved.Status)
	s.Equal(model.TeamID("tm_1"), approved.TeamID)

	last := s.app.MockDispatcher.Last()
	s.Require().NotNil(last)
	s.Equal(model.NotificationApproved, last.Event)
	s.NotEmpty(last.PaymentRef)

	// Step 3: The payment processor delivers a paid webhook
	payment, err := s.app.LedgerService.RecordPayment(s.ctx, ledger.WebhookEvent{
		PaymentID: "pay_1",
		PlayerID:  player.ID,
		Amount:    "360",
		Kind:      model.PaymentKindAnnual,
		Status:    "paid",
	})
	s.Require().NoError(err)
	s.Equal("360", payment.Amount)

	// Step 4: The first confirmed payment activated the player
	stored, err := s.app.Storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusActive, stored.Status)
	s.Equal(model.NotificationActive, s.app.MockDispatcher.Last().Event)

	// Step 5: Billing reflects the payment against the annual fee
	summary, err := s.app.BillingService.GuardianBalance(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.True(summary.TotalDue.Equal(decimal.NewFromInt(360)))
	s.True(summary.TotalPaid.Equal(decimal.NewFromInt(360)))
	s.True(summary.Remaining.IsZero())

	// Step 6: The invoice carries one twelve-unit annual line
	lines, err := s.app.BillingService.GuardianInvoice(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal(12, lines[0].Quantity)
}

// Test: hold and revert round trip keeps the player reviewable
func (s *IntegrationSuite) TestHoldRevertRoundTrip() {
	s.app.MockRandom.QueueString("holdplayer01")
	player, err := s.app.RegistrationController.Register(s.ctx, registration.RegisterInput{
		DisplayName: "Sam Reyes",
		GuardianID:  "gu_1",
	})
	s.Require().NoError(err)

	held, err := s.app.RegistrationController.Hold(s.ctx, player.ID, "missing waiver")
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusOnHold, held.Status)

	reverted, err := s.app.RegistrationController.Revert(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusPending, reverted.Status)
	s.Empty(reverted.StatusReason)

	// The player can now be approved normally
	approved, err := s.app.RegistrationController.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusApproved, approved.Status)
}

// Test: webhook redelivery after activation stays harmless
func (s *IntegrationSuite) TestWebhookRedeliveryIsIdempotent() {
	s.app.MockRandom.QueueString("redelivery01")
	player, err := s.app.RegistrationController.Register(s.ctx, registration.RegisterInput{
		DisplayName: "Alex Kim",
		GuardianID:  "gu_1",
	})
	s.Require().NoError(err)
	_, err = s.app.RegistrationController.Approve(s.ctx, player.ID, "tm_1")
	s.Require().NoError(err)

	ev := ledger.WebhookEvent{
		PaymentID: "pay_1",
		PlayerID:  player.ID,
		Amount:    "360",
		Kind:      model.PaymentKindAnnual,
		Status:    "paid",
	}
	_, err = s.app.LedgerService.RecordPayment(s.ctx, ev)
	s.Require().NoError(err)

	eventsBefore := len(s.app.MockDispatcher.Events())

	_, err = s.app.LedgerService.RecordPayment(s.ctx, ev)
	s.Require().NoError(err)

	stored, err := s.app.Storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusActive, stored.Status)
	s.Equal(eventsBefore, len(s.app.MockDispatcher.Events()))

	// Still a single ledger entry
	payments, err := s.app.Storage.GetPaymentsByGuardian(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Len(payments, 1)
}

// Test: factory wiring with the default memory backend
func (s *IntegrationSuite) TestProductionFactoryDefaults() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.Storage)
	s.NotNil(app.RegistrationController)
	s.NotNil(app.BillingService)
	s.NotNil(app.LedgerService)
	s.NotNil(app.NotificationQueue)
}

func (s *IntegrationSuite) TestFactoryRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)
}

func (s *IntegrationSuite) TestFactoryRequiresRedisConfigForRedis() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}
