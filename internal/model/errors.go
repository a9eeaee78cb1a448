package model

import "errors"

// Common errors used across the application
var (
	// Registration errors
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrMissingReason          = errors.New("a non-empty reason is required")
	ErrUnknownTeam            = errors.New("team does not exist")
	ErrConcurrentModification = errors.New("player was modified concurrently")

	// Billing errors
	ErrCorruptLedgerEntry = errors.New("corrupt ledger entry")
	ErrImmutablePayment   = errors.New("payment amount and kind are immutable")
	ErrInvalidPaymentKind = errors.New("invalid payment kind")

	// Lookup errors
	ErrPlayerNotFound   = errors.New("player not found")
	ErrGuardianNotFound = errors.New("guardian not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrStaffNotFound    = errors.New("staff account not found")

	// Storage errors
	ErrVersionConflict = errors.New("stale player version")
)
