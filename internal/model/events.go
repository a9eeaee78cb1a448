package model

import "time"

// NotificationEvent identifies the kind of guardian-facing notification a
// registration transition emits
type NotificationEvent string

const (
	// NotificationApproved carries a payment reference so the guardian can pay
	NotificationApproved NotificationEvent = "approved"
	// NotificationOnHold carries the hold reason
	NotificationOnHold NotificationEvent = "on_hold"
	// NotificationRejected carries the rejection reason
	NotificationRejected NotificationEvent = "rejected"
	// NotificationActive confirms the first payment landed
	NotificationActive NotificationEvent = "active"
	// NotificationStatusChanged covers the hold -> pending revert
	NotificationStatusChanged NotificationEvent = "status_changed"
)

// Notification is the event record handed to the dispatcher. Templating and
// delivery belong to the dispatcher; the core only emits this.
type Notification struct {
	Event      NotificationEvent
	PlayerID   PlayerID
	GuardianID GuardianID
	// Reason is set for on_hold and rejected events
	Reason string
	// PaymentRef is set for approved events and points the guardian at the
	// checkout for this player
	PaymentRef string
	EmittedAt  time.Time
}

// PaymentConfirmed is the domain event raised by the ledger when the first
// paid payment is observed for a player. It is the only trigger for the
// system-initiated approved -> active transition; status is never inferred
// from payment existence.
type PaymentConfirmed struct {
	PlayerID   PlayerID
	PaymentID  PaymentID
	ObservedAt time.Time
}
