package battles

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu           sync.RWMutex
	battles      map[string]*battle.State
	timeProvider TimeProvider
}

// InMemoryRepoConfig holds configuration for the in-memory repository
type InMemoryRepoConfig struct {
	TimeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory battle repository
func NewInMemoryRepository(cfg *InMemoryRepoConfig) Repository {
	repo := &inMemoryRepository{
		battles:      make(map[string]*battle.State),
		timeProvider: RealTimeProvider{},
	}
	if cfg != nil && cfg.TimeProvider != nil {
		repo.timeProvider = cfg.TimeProvider
	}
	return repo
}

// Create stores a new battle
func (r *inMemoryRepository) Create(ctx context.Context, state *battle.State) error {
	if err := validate(state); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[state.ID]; exists {
		return dnderr.AlreadyExistsf("battle %s already exists", state.ID).WithMeta("session_id", state.ID)
	}

	now := r.timeProvider.Now()
	state.CreatedAt = now
	state.UpdatedAt = now
	r.battles[state.ID] = state.Clone()

	return nil
}

// Get retrieves a battle by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*battle.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.battles[id]
	if !exists {
		return nil, notFound(id)
	}

	return state.Clone(), nil
}

// Update replaces an existing battle
func (r *inMemoryRepository) Update(ctx context.Context, state *battle.State) error {
	if err := validate(state); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[state.ID]; !exists {
		return notFound(state.ID)
	}

	state.UpdatedAt = r.timeProvider.Now()
	r.battles[state.ID] = state.Clone()

	return nil
}

// Delete removes a battle
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[id]; !exists {
		return notFound(id)
	}

	delete(r.battles, id)
	return nil
}

// List retrieves all battles
func (r *inMemoryRepository) List(ctx context.Context) ([]*battle.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*battle.State, 0, len(r.battles))
	for _, state := range r.battles {
		out = append(out, state.Clone())
	}
	sortByCreation(out)

	return out, nil
}

func validate(state *battle.State) error {
	if state == nil {
		return dnderr.InvalidArgument("battle cannot be nil")
	}
	if state.ID == "" {
		return dnderr.InvalidArgument("battle ID cannot be empty")
	}
	return nil
}

func notFound(id string) error {
	return dnderr.NotFoundf("battle not found: %s", id).WithMeta("session_id", id)
}

func sortByCreation(states []*battle.State) {
	sort.SliceStable(states, func(i, j int) bool {
		if states[i].CreatedAt.Equal(states[j].CreatedAt) {
			return states[i].ID < states[j].ID
		}
		return states[i].CreatedAt.Before(states[j].CreatedAt)
	})
}
