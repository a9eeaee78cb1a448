package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Phronesis2025/wcs-basketball-go/internal/model"
	"github.com/Phronesis2025/wcs-basketball-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Pipeline the record write with the guardian index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, 0)
	pipe.SAdd(ctx, guardianPlayersIndexKey(player.GuardianID), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayersByGuardian(ctx context.Context, guardianID model.GuardianID) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, guardianPlayersIndexKey(guardianID)).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// UpdatePlayer performs a conditional write: the stored version must still be
// expectedVersion at commit time. WATCH makes the transaction abort if any
// other client touches the key between read and write.
func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player, expectedVersion int64) error {
	key := playerKey(player.ID)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrPlayerNotFound
			}
			return err
		}

		var current model.Player
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}

		if current.Version != expectedVersion {
			return model.ErrVersionConflict
		}

		next := *player
		next.Version = expectedVersion + 1
		updated, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		if err == nil {
			player.Version = next.Version
		}
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Another writer raced us between read and commit
		return model.ErrVersionConflict
	}
	return err
}

// Guardian operations

func (s *Storage) SaveGuardian(ctx context.Context, guardian *model.Guardian) error {
	data, err := json.Marshal(guardian)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, guardianKey(guardian.ID), data, 0).Err()
}

func (s *Storage) GetGuardian(ctx context.Context, id model.GuardianID) (*model.Guardian, error) {
	data, err := s.client.Get(ctx, guardianKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGuardianNotFound
		}
		return nil, err
	}

	var guardian model.Guardian
	if err := json.Unmarshal(data, &guardian); err != nil {
		return nil, err
	}
	return &guardian, nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, teamKey(team.ID), data, 0)
	pipe.SAdd(ctx, teamsIndexKey(), string(team.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	data, err := s.client.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	ids, err := s.client.SMembers(ctx, teamsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*model.Team{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = teamKey(model.TeamID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var team model.Team
		if err := json.Unmarshal([]byte(val.(string)), &team); err != nil {
			continue
		}
		teams = append(teams, &team)
	}

	return teams, nil
}

func (s *Storage) TeamExists(ctx context.Context, id model.TeamID) (bool, error) {
	exists, err := s.client.Exists(ctx, teamKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Payment ledger operations

func (s *Storage) AppendPayment(ctx context.Context, payment *model.Payment) error {
	existing, err := s.GetPayment(ctx, payment.ID)
	if err != nil && !errors.Is(err, model.ErrPaymentNotFound) {
		return err
	}
	if existing != nil {
		// Amount and kind are immutable once recorded
		if existing.Amount != payment.Amount || existing.Kind != payment.Kind {
			return model.ErrImmutablePayment
		}
	}

	data, err := json.Marshal(payment)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, paymentKey(payment.ID), data, 0)
	pipe.SAdd(ctx, playerPaymentsIndexKey(payment.PlayerID), string(payment.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	data, err := s.client.Get(ctx, paymentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPaymentNotFound
		}
		return nil, err
	}

	var payment model.Payment
	if err := json.Unmarshal(data, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *Storage) GetPaymentsByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Payment, error) {
	ids, err := s.client.SMembers(ctx, playerPaymentsIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = paymentKey(model.PaymentID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	payments := make([]*model.Payment, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var payment model.Payment
		if err := json.Unmarshal([]byte(val.(string)), &payment); err != nil {
			continue
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}

func (s *Storage) GetPaymentsByGuardian(ctx context.Context, guardianID model.GuardianID) ([]*model.Payment, error) {
	players, err := s.GetPlayersByGuardian(ctx, guardianID)
	if err != nil {
		return nil, err
	}

	var payments []*model.Payment
	for _, player := range players {
		playerPayments, err := s.GetPaymentsByPlayer(ctx, player.ID)
		if err != nil {
			return nil, err
		}
		payments = append(payments, playerPayments...)
	}

	return payments, nil
}

// statusUpdateRetries bounds how often a lost WATCH race is retried before
// the error is surfaced to the caller.
const statusUpdateRetries = 3

// UpdatePaymentStatus rewrites only the status and UpdatedAt of an existing
// entry. The read and the write run under WATCH so a racing redelivery
// cannot make us overwrite its update with stale amount or kind fields.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id model.PaymentID, status string, updatedAt time.Time) error {
	key := paymentKey(id)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrPaymentNotFound
			}
			return err
		}

		var payment model.Payment
		if err := json.Unmarshal(data, &payment); err != nil {
			return err
		}

		payment.Status = status
		payment.UpdatedAt = updatedAt
		updated, err := json.Marshal(&payment)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < statusUpdateRetries; i++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

// Staff account operations

func (s *Storage) SaveStaffAccount(ctx context.Context, account *model.StaffAccount) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, staffUsernameKey(account.Username), data, 0).Err()
}

func (s *Storage) GetStaffAccountByUsername(ctx context.Context, username string) (*model.StaffAccount, error) {
	data, err := s.client.Get(ctx, staffUsernameKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStaffNotFound
		}
		return nil, err
	}

	var account model.StaffAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
