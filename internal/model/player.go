package model

import "time"

// PlayerID uniquely identifies a registered player across the system
type PlayerID string

// PlayerStatus represents where a player sits in the registration lifecycle
type PlayerStatus string

const (
	// PlayerStatusPending is the initial status after a registration is submitted
	PlayerStatusPending PlayerStatus = "pending"
	// PlayerStatusApproved means an admin approved the registration and assigned a team
	PlayerStatusApproved PlayerStatus = "approved"
	// PlayerStatusOnHold means the registration needs follow-up before approval
	PlayerStatusOnHold PlayerStatus = "on_hold"
	// PlayerStatusRejected is terminal; the registration was declined
	PlayerStatusRejected PlayerStatus = "rejected"
	// PlayerStatusActive is terminal for the registration machine; the first
	// confirmed payment has landed and further changes belong to roster
	// management
	PlayerStatusActive PlayerStatus = "active"
)

// Player represents one registered child
type Player struct {
	ID          PlayerID
	DisplayName string
	DateOfBirth time.Time
	Grade       string
	Gender      string
	GuardianID  GuardianID
	TeamID      TeamID // empty until assigned at approval

	Status PlayerStatus
	// StatusReason holds the free-text reason that accompanied a hold or
	// rejection. Empty for every other status.
	StatusReason string

	// Version is bumped on every write and is the compare token for
	// conditional status updates. Two admins racing on the same player
	// cannot both win the write.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasTeam reports whether the player has been assigned to a team
func (p *Player) HasTeam() bool {
	return p.TeamID != ""
}
