package model

import "time"

// StaffID uniquely identifies a club staff account
type StaffID string

// StaffAccount is an operator identity. Registration transitions are
// requested by staff; guardians never drive the state machine directly.
type StaffAccount struct {
	ID           StaffID
	Username     string // login username (immutable)
	DisplayName  string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
