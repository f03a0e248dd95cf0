package battles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	// Key patterns
	battleKeyPrefix = "battle:"
	battleIndexKey  = "battles:index"

	// DefaultTTL is how long an idle battle is kept
	DefaultTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TTL          time.Duration
	TimeProvider TimeProvider
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client       redis.UniversalClient
	ttl          time.Duration
	timeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed battle repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	repo := &redisRepository{
		client:       cfg.Client,
		ttl:          cfg.TTL,
		timeProvider: cfg.TimeProvider,
	}
	if repo.ttl == 0 {
		repo.ttl = DefaultTTL
	}
	if repo.timeProvider == nil {
		repo.timeProvider = RealTimeProvider{}
	}

	return repo
}

// BattleKey returns the Redis key holding a battle
func BattleKey(id string) string {
	return battleKeyPrefix + id
}

// Create stores a new battle, failing if the id is taken
func (r *redisRepository) Create(ctx context.Context, state *battle.State) error {
	if err := validate(state); err != nil {
		return err
	}

	now := r.timeProvider.Now()
	stamped := state.Clone()
	stamped.CreatedAt = now
	stamped.UpdatedAt = now

	data, err := json.Marshal(stamped)
	if err != nil {
		return fmt.Errorf("failed to serialize battle: %w", err)
	}

	pipe := r.client.TxPipeline()
	created := pipe.SetNX(ctx, BattleKey(state.ID), string(data), r.ttl)
	pipe.SAdd(ctx, battleIndexKey, state.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to create battle")
	}

	if !created.Val() {
		return dnderr.AlreadyExistsf("battle %s already exists", state.ID).WithMeta("session_id", state.ID)
	}

	state.CreatedAt = now
	state.UpdatedAt = now
	return nil
}

// Get retrieves a battle by ID and refreshes its TTL
func (r *redisRepository) Get(ctx context.Context, id string) (*battle.State, error) {
	key := BattleKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(id)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to get battle")
	}

	var state battle.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to deserialize battle %s: %w", id, err)
	}

	// Refresh TTL
	r.client.Expire(ctx, key, r.ttl)

	return &state, nil
}

// Update replaces an existing battle
func (r *redisRepository) Update(ctx context.Context, state *battle.State) error {
	if err := validate(state); err != nil {
		return err
	}

	stamped := state.Clone()
	stamped.UpdatedAt = r.timeProvider.Now()

	data, err := json.Marshal(stamped)
	if err != nil {
		return fmt.Errorf("failed to serialize battle: %w", err)
	}

	updated, err := r.client.SetXX(ctx, BattleKey(state.ID), string(data), r.ttl).Result()
	if err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to update battle")
	}
	if !updated {
		return notFound(state.ID)
	}

	state.UpdatedAt = stamped.UpdatedAt
	return nil
}

// Delete removes a battle and its index entry
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, BattleKey(id))
	pipe.SRem(ctx, battleIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to delete battle")
	}

	if deleted.Val() == 0 {
		return notFound(id)
	}
	return nil
}

// List fetches every indexed battle concurrently. Ids whose key has
// expired are pruned from the index.
func (r *redisRepository) List(ctx context.Context) ([]*battle.State, error) {
	ids, err := r.client.SMembers(ctx, battleIndexKey).Result()
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to list battles")
	}

	states := make([]*battle.State, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			state, err := r.Get(gctx, id)
			if err != nil {
				if dnderr.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("failed to get battle %s: %w", id, err)
			}
			states[i] = state
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*battle.State, 0, len(states))
	var stale []any
	for i, state := range states {
		if state == nil {
			stale = append(stale, ids[i])
			continue
		}
		out = append(out, state)
	}

	if len(stale) > 0 {
		if err := r.client.SRem(ctx, battleIndexKey, stale...).Err(); err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to prune battle index")
		}
	}

	sortByCreation(out)
	return out, nil
}
