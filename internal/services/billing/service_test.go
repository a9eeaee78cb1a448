package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/services/pricing"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage/memory"
	"github.com/Phronesis2025/wcs-basketball-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	provider := pricing.Static{Schedule: model.FeeSchedule{
		Annual:    decimal.NewFromInt(360),
		Monthly:   decimal.NewFromInt(35),
		Quarterly: decimal.NewFromInt(100),
	}}
	s.service = New(s.storage, provider, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedGuardian(id model.GuardianID) {
	err := s.storage.SaveGuardian(s.ctx, &model.Guardian{ID: id, Email: "parent@example.com"})
	s.Require().NoError(err)
}

func (s *ServiceSuite) seedPlayer(id model.PlayerID, guardianID model.GuardianID, status model.PlayerStatus) {
	err := s.storage.SavePlayer(s.ctx, &model.Player{
		ID:         id,
		GuardianID: guardianID,
		Status:     status,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) seedPayment(id model.PaymentID, playerID model.PlayerID, amount, status string, kind model.PaymentKind, at time.Time) {
	err := s.storage.AppendPayment(s.ctx, &model.Payment{
		ID:        id,
		PlayerID:  playerID,
		Amount:    amount,
		Kind:      kind,
		Status:    status,
		CreatedAt: at,
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestGuardianBalanceFailsForUnknownGuardian() {
	_, err := s.service.GuardianBalance(s.ctx, "gu_missing")
	s.ErrorIs(err, model.ErrGuardianNotFound)
}

func (s *ServiceSuite) TestGuardianBalanceAggregatesAcrossPlayers() {
	s.seedGuardian("gu_1")
	s.seedPlayer("pl_1", "gu_1", model.PlayerStatusApproved)
	s.seedPlayer("pl_2", "gu_1", model.PlayerStatusActive)
	s.seedPayment("pay_1", "pl_1", "300", "paid", model.PaymentKindAnnual, time.Now())
	s.seedPayment("pay_2", "pl_2", "35", "paid", model.PaymentKindMonthly, time.Now())

	summary, err := s.service.GuardianBalance(s.ctx, "gu_1")
	s.Require().NoError(err)

	s.True(summary.TotalDue.Equal(decimal.NewFromInt(720)), "due %s", summary.TotalDue)
	s.True(summary.TotalPaid.Equal(decimal.NewFromInt(335)), "paid %s", summary.TotalPaid)
	s.True(summary.Remaining.Equal(decimal.NewFromInt(385)), "remaining %s", summary.Remaining)
}

func (s *ServiceSuite) TestGuardianBalanceIgnoresOtherGuardiansPayments() {
	s.seedGuardian("gu_1")
	s.seedGuardian("gu_2")
	s.seedPlayer("pl_1", "gu_1", model.PlayerStatusApproved)
	s.seedPlayer("pl_2", "gu_2", model.PlayerStatusApproved)
	s.seedPayment("pay_1", "pl_1", "100", "paid", model.PaymentKindMonthly, time.Now())
	s.seedPayment("pay_2", "pl_2", "999", "paid", model.PaymentKindAnnual, time.Now())

	summary, err := s.service.GuardianBalance(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.True(summary.TotalPaid.Equal(decimal.NewFromInt(100)))
}

func (s *ServiceSuite) TestGuardianBalanceSurfacesExcludedEntries() {
	s.seedGuardian("gu_1")
	s.seedPlayer("pl_1", "gu_1", model.PlayerStatusApproved)
	s.seedPayment("pay_1", "pl_1", "garbage", "paid", model.PaymentKindMonthly, time.Now())

	summary, err := s.service.GuardianBalance(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Equal(1, summary.ExcludedEntries)
	s.True(summary.TotalPaid.IsZero())
}

func (s *ServiceSuite) TestGuardianInvoiceFailsForUnknownGuardian() {
	_, err := s.service.GuardianInvoice(s.ctx, "gu_missing")
	s.ErrorIs(err, model.ErrGuardianNotFound)
}

func (s *ServiceSuite) TestGuardianInvoiceDerivesLinesNewestFirst() {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s.seedGuardian("gu_1")
	s.seedPlayer("pl_1", "gu_1", model.PlayerStatusActive)
	s.seedPayment("pay_old", "pl_1", "35", "paid", model.PaymentKindMonthly, base)
	s.seedPayment("pay_new", "pl_1", "360", "paid", model.PaymentKindAnnual, base.AddDate(0, 1, 0))

	lines, err := s.service.GuardianInvoice(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Require().Len(lines, 2)
	s.Equal(model.PaymentID("pay_new"), lines[0].PaymentID)
	s.Equal("Feb 2026", lines[0].Period)
	s.Equal(12, lines[0].Quantity)
	s.Equal(model.PaymentID("pay_old"), lines[1].PaymentID)
	s.Equal(1, lines[1].Quantity)
}

func (s *ServiceSuite) TestGuardianInvoiceEmptyLedgerYieldsNoLines() {
	s.seedGuardian("gu_1")
	lines, err := s.service.GuardianInvoice(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Empty(lines)
}
