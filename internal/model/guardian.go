package model

import "time"

// GuardianID uniquely identifies a billing-responsible account
type GuardianID string

// Guardian represents the account responsible for one or more players.
// All of a guardian's players jointly determine the guardian's balance.
type Guardian struct {
	ID        GuardianID
	Email     string
	CreatedAt time.Time
}

// TeamID uniquely identifies a team
type TeamID string

// Team is a roster unit players are assigned to at approval
type Team struct {
	ID        TeamID
	Name      string
	Season    string
	CreatedAt time.Time
}
