package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	guardians     map[model.GuardianID]*model.Guardian
	teams         map[model.TeamID]*model.Team
	payments      map[model.PaymentID]*model.Payment
	staffAccounts map[string]*model.StaffAccount // keyed by username
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		guardians:     make(map[model.GuardianID]*model.Guardian),
		teams:         make(map[model.TeamID]*model.Team),
		payments:      make(map[model.PaymentID]*model.Payment),
		staffAccounts: make(map[string]*model.StaffAccount),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *player
	s.players[player.ID] = &cp
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) GetPlayersByGuardian(ctx context.Context, guardianID model.GuardianID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for _, player := range s.players {
		if player.GuardianID == guardianID {
			cp := *player
			players = append(players, &cp)
		}
	}
	return players, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.players[player.ID]
	if !ok {
		return model.ErrPlayerNotFound
	}
	if current.Version != expectedVersion {
		return model.ErrVersionConflict
	}
	cp := *player
	cp.Version = expectedVersion + 1
	s.players[player.ID] = &cp
	player.Version = cp.Version
	return nil
}

// Guardian operations

func (s *Storage) SaveGuardian(ctx context.Context, guardian *model.Guardian) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *guardian
	s.guardians[guardian.ID] = &cp
	return nil
}

func (s *Storage) GetGuardian(ctx context.Context, id model.GuardianID) (*model.Guardian, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guardian, ok := s.guardians[id]
	if !ok {
		return nil, model.ErrGuardianNotFound
	}
	cp := *guardian
	return &cp, nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *team
	s.teams[team.ID] = &cp
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	cp := *team
	return &cp, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*model.Team, 0, len(s.teams))
	for _, team := range s.teams {
		cp := *team
		teams = append(teams, &cp)
	}
	return teams, nil
}

func (s *Storage) TeamExists(ctx context.Context, id model.TeamID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.teams[id]
	return ok, nil
}

// Payment ledger operations

func (s *Storage) AppendPayment(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.payments[payment.ID]; ok {
		// Amount and kind are immutable once recorded
		if existing.Amount != payment.Amount || existing.Kind != payment.Kind {
			return model.ErrImmutablePayment
		}
	}
	cp := *payment
	s.payments[payment.ID] = &cp
	return nil
}

func (s *Storage) GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[id]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	cp := *payment
	return &cp, nil
}

func (s *Storage) GetPaymentsByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []*model.Payment
	for _, payment := range s.payments {
		if payment.PlayerID == playerID {
			cp := *payment
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}

func (s *Storage) GetPaymentsByGuardian(ctx context.Context, guardianID model.GuardianID) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := make(map[model.PlayerID]bool)
	for _, player := range s.players {
		if player.GuardianID == guardianID {
			owned[player.ID] = true
		}
	}
	var payments []*model.Payment
	for _, payment := range s.payments {
		if owned[payment.PlayerID] {
			cp := *payment
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}

func (s *Storage) UpdatePaymentStatus(ctx context.Context, id model.PaymentID, status string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[id]
	if !ok {
		return model.ErrPaymentNotFound
	}
	payment.Status = status
	payment.UpdatedAt = updatedAt
	return nil
}

// Staff account operations

func (s *Storage) SaveStaffAccount(ctx context.Context, account *model.StaffAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *account
	s.staffAccounts[account.Username] = &cp
	return nil
}

func (s *Storage) GetStaffAccountByUsername(ctx context.Context, username string) (*model.StaffAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.staffAccounts[username]
	if !ok {
		return nil, model.ErrStaffNotFound
	}
	cp := *account
	return &cp, nil
}
