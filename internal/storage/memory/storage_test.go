package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:         "pl_1",
		GuardianID: "gu_1",
		Status:     model.PlayerStatusPending,
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "pl_1")
	s.Require().NoError(err)
	s.Equal(player.ID, got.ID)
	s.Equal(model.PlayerStatusPending, got.Status)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "pl_missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerReturnsCopy() {
	player := &model.Player{ID: "pl_1", Status: model.PlayerStatusPending}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "pl_1")
	s.Require().NoError(err)
	got.Status = model.PlayerStatusRejected

	again, err := s.storage.GetPlayer(s.ctx, "pl_1")
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusPending, again.Status)
}

func (s *StorageSuite) TestGetPlayersByGuardian() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "pl_1", GuardianID: "gu_1"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "pl_2", GuardianID: "gu_1"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "pl_3", GuardianID: "gu_2"}))

	players, err := s.storage.GetPlayersByGuardian(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestUpdatePlayerBumpsVersion() {
	player := &model.Player{ID: "pl_1", Status: model.PlayerStatusPending}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	player.Status = model.PlayerStatusApproved
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, player, 0))
	s.Equal(int64(1), player.Version)

	got, err := s.storage.GetPlayer(s.ctx, "pl_1")
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusApproved, got.Status)
	s.Equal(int64(1), got.Version)
}

func (s *StorageSuite) TestUpdatePlayerStaleVersionConflicts() {
	player := &model.Player{ID: "pl_1", Status: model.PlayerStatusPending}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	first := *player
	first.Status = model.PlayerStatusApproved
	s.Require().NoError(s.storage.UpdatePlayer(s.ctx, &first, 0))

	// Second writer still holds version 0
	second := *player
	second.Status = model.PlayerStatusRejected
	err := s.storage.UpdatePlayer(s.ctx, &second, 0)
	s.ErrorIs(err, model.ErrVersionConflict)

	got, err := s.storage.GetPlayer(s.ctx, "pl_1")
	s.Require().NoError(err)
	s.Equal(model.PlayerStatusApproved, got.Status)
}

func (s *StorageSuite) TestUpdatePlayerNotFound() {
	err := s.storage.UpdatePlayer(s.ctx, &model.Player{ID: "pl_missing"}, 0)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Guardian tests

func (s *StorageSuite) TestSaveAndGetGuardian() {
	s.Require().NoError(s.storage.SaveGuardian(s.ctx, &model.Guardian{ID: "gu_1", Email: "p@example.com"}))

	got, err := s.storage.GetGuardian(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Equal("p@example.com", got.Email)
}

func (s *StorageSuite) TestGetGuardianNotFound() {
	_, err := s.storage.GetGuardian(s.ctx, "gu_missing")
	s.ErrorIs(err, model.ErrGuardianNotFound)
}

// Team tests

func (s *StorageSuite) TestSaveGetListTeams() {
	s.Require().NoError(s.storage.SaveTeam(s.ctx, &model.Team{ID: "tm_1", Name: "Thunder"}))
	s.Require().NoError(s.storage.SaveTeam(s.ctx, &model.Team{ID: "tm_2", Name: "Lightning"}))

	got, err := s.storage.GetTeam(s.ctx, "tm_1")
	s.Require().NoError(err)
	s.Equal("Thunder", got.Name)

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 2)
}

func (s *StorageSuite) TestTeamExists() {
	s.Require().NoError(s.storage.SaveTeam(s.ctx, &model.Team{ID: "tm_1"}))

	exists, err := s.storage.TeamExists(s.ctx, "tm_1")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.TeamExists(s.ctx, "tm_missing")
	s.Require().NoError(err)
	s.False(exists)
}

// Payment tests

func (s *StorageSuite) TestAppendAndGetPayment() {
	payment := &model.Payment{
		ID:       "pay_1",
		PlayerID: "pl_1",
		Amount:   "360",
		Kind:     model.PaymentKindAnnual,
		Status:   "paid",
	}
	s.Require().NoError(s.storage.AppendPayment(s.ctx, payment))

	got, err := s.storage.GetPayment(s.ctx, "pay_1")
	s.Require().NoError(err)
	s.Equal("360", got.Amount)
}

func (s *StorageSuite) TestAppendPaymentRejectsAmountChange() {
	payment := &model.Payment{ID: "pay_1", Amount: "360", Kind: model.PaymentKindAnnual}
	s.Require().NoError(s.storage.AppendPayment(s.ctx, payment))

	changed := &model.Payment{ID: "pay_1", Amount: "100", Kind: model.PaymentKindAnnual}
	err := s.storage.AppendPayment(s.ctx, changed)
	s.ErrorIs(err, model.ErrImmutablePayment)
}

func (s *StorageSuite) TestAppendPaymentRejectsKindChange() {
	payment := &model.Payment{ID: "pay_1", Amount: "360", Kind: model.PaymentKindAnnual}
	s.Require().NoError(s.storage.AppendPayment(s.ctx, payment))

	changed := &model.Payment{ID: "pay_1", Amount: "360", Kind: model.PaymentKindMonthly}
	err := s.storage.AppendPayment(s.ctx, changed)
	s.ErrorIs(err, model.ErrImmutablePayment)
}

func (s *StorageSuite) TestUpdatePaymentStatus() {
	payment := &model.Payment{ID: "pay_1", Amount: "35", Kind: model.PaymentKindMonthly, Status: "pending"}
	s.Require().NoError(s.storage.AppendPayment(s.ctx, payment))

	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.UpdatePaymentStatus(s.ctx, "pay_1", "paid", at))

	got, err := s.storage.GetPayment(s.ctx, "pay_1")
	s.Require().NoError(err)
	s.Equal("paid", got.Status)
	s.Equal("35", got.Amount)
	s.Equal(at, got.UpdatedAt)
}

func (s *StorageSuite) TestUpdatePaymentStatusNotFound() {
	err := s.storage.UpdatePaymentStatus(s.ctx, "pay_missing", "paid", time.Now())
	s.ErrorIs(err, model.ErrPaymentNotFound)
}

func (s *StorageSuite) TestGetPaymentsByGuardianCrossesPlayers() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "pl_1", GuardianID: "gu_1"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "pl_2", GuardianID: "gu_1"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "pl_other", GuardianID: "gu_2"}))

	now := time.Now()
	s.Require().NoError(s.storage.AppendPayment(s.ctx, &model.Payment{ID: "pay_1", PlayerID: "pl_1", Amount: "35", Kind: model.PaymentKindMonthly, CreatedAt: now}))
	s.Require().NoError(s.storage.AppendPayment(s.ctx, &model.Payment{ID: "pay_2", PlayerID: "pl_2", Amount: "35", Kind: model.PaymentKindMonthly, CreatedAt: now}))
	s.Require().NoError(s.storage.AppendPayment(s.ctx, &model.Payment{ID: "pay_3", PlayerID: "pl_other", Amount: "35", Kind: model.PaymentKindMonthly, CreatedAt: now}))

	payments, err := s.storage.GetPaymentsByGuardian(s.ctx, "gu_1")
	s.Require().NoError(err)
	s.Len(payments, 2)
}

// Staff tests

func (s *StorageSuite) TestSaveAndGetStaffAccount() {
	s.Require().NoError(s.storage.SaveStaffAccount(s.ctx, &model.StaffAccount{
		ID:       "st_1",
		Username: "admin",
	}))

	got, err := s.storage.GetStaffAccountByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(model.StaffID("st_1"), got.ID)
}

func (s *StorageSuite) TestGetStaffAccountNotFound() {
	_, err := s.storage.GetStaffAccountByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrStaffNotFound)
}
