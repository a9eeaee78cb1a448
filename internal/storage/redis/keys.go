package redis

import (
	"fmt"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
)

// Key prefix for all club data
const keyPrefix = "wcsclub"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// guardianKey returns the Redis key for a Guardian
func guardianKey(id model.GuardianID) string {
	return fmt.Sprintf("%s:guardian:%s", keyPrefix, id)
}

// guardianPlayersIndexKey returns the Redis key for the SET of players
// belonging to a guardian
func guardianPlayersIndexKey(id model.GuardianID) string {
	return fmt.Sprintf("%s:idx:guardian_players:%s", keyPrefix, id)
}

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// teamsIndexKey returns the Redis key for the SET of all team keys
func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}

// paymentKey returns the Redis key for a Payment
func paymentKey(id model.PaymentID) string {
	return fmt.Sprintf("%s:payment:%s", keyPrefix, id)
}

// playerPaymentsIndexKey returns the Redis key for the SET of payments
// recorded against a player
func playerPaymentsIndexKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_payments:%s", keyPrefix, id)
}

// staffUsernameKey returns the Redis key for a staff account, keyed by
// username
func staffUsernameKey(username string) string {
	return fmt.Sprintf("%s:staff:%s", keyPrefix, username)
}
