package storage

import (
	"context"
	"time"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayersByGuardian(ctx context.Context, guardianID model.GuardianID) ([]*model.Player, error)
	// UpdatePlayer writes the player conditioned on the stored version still
	// being expectedVersion. Returns model.ErrVersionConflict when a
	// concurrent write won; the caller owns the retry policy.
	UpdatePlayer(ctx context.Context, player *model.Player, expectedVersion int64) error

	// Guardian operations
	SaveGuardian(ctx context.Context, guardian *model.Guardian) error
	GetGuardian(ctx context.Context, id model.GuardianID) (*model.Guardian, error)

	// Team operations
	SaveTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	TeamExists(ctx context.Context, id model.TeamID) (bool, error)

	// Payment ledger operations. Payments are append-only; only the status
	// field may change after the initial write.
	AppendPayment(ctx context.Context, payment *model.Payment) error
	GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error)
	GetPaymentsByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Payment, error)
	GetPaymentsByGuardian(ctx context.Context, guardianID model.GuardianID) ([]*model.Payment, error)
	// UpdatePaymentStatus moves the status of an existing ledger entry and
	// stamps UpdatedAt; amount and kind are left untouched.
	UpdatePaymentStatus(ctx context.Context, id model.PaymentID, status string, updatedAt time.Time) error

	// Staff account operations
	SaveStaffAccount(ctx context.Context, account *model.StaffAccount) error
	GetStaffAccountByUsername(ctx context.Context, username string) (*model.StaffAccount, error)
}
