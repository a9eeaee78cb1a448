package registration

import "github.com/Phronesis2025/wcs-basketball-go/internal/model"

// validTransitions is the complete transition table. Anything not listed
// here fails with ErrInvalidTransition and leaves the player untouched.
//
// approved -> active is system-initiated only: it fires when the ledger
// observes the first confirmed payment, never from an operator request.
var validTransitions = map[model.PlayerStatus]map[model.PlayerStatus]bool{
	model.PlayerStatusPending: {
		model.PlayerStatusApproved: true,
		model.PlayerStatusOnHold:   true,
		model.PlayerStatusRejected: true,
	},
	model.PlayerStatusOnHold: {
		model.PlayerStatusPending: true,
	},
	model.PlayerStatusApproved: {
		model.PlayerStatusActive: true,
	},
}

// CanTransition reports whether the machine allows moving from one status to
// another
func CanTransition(from, to model.PlayerStatus) bool {
	return validTransitions[from][to]
}

// AllStatuses enumerates every status the machine knows about, for
// exhaustive checks
func AllStatuses() []model.PlayerStatus {
	return []model.PlayerStatus{
		model.PlayerStatusPending,
		model.PlayerStatusApproved,
		model.PlayerStatusOnHold,
		model.PlayerStatusRejected,
		model.PlayerStatusActive,
	}
}
