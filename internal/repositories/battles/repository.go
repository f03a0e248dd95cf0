package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=mockbattles -source=repository.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
)

// Repository defines the interface for battle session storage.
// Implementations store copies; callers never share state with the store.
type Repository interface {
	// Create stores a new battle and stamps its timestamps
	Create(ctx context.Context, state *battle.State) error

	// Get retrieves a battle by session ID
	Get(ctx context.Context, id string) (*battle.State, error)

	// Update replaces an existing battle and stamps UpdatedAt
	Update(ctx context.Context, state *battle.State) error

	// Delete removes a battle
	Delete(ctx context.Context, id string) error

	// List retrieves every stored battle ordered by creation time
	List(ctx context.Context) ([]*battle.State, error)
}

// TimeProvider supplies timestamps so tests can pin them
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reports the wall clock in UTC
type RealTimeProvider struct{}

// Now implements TimeProvider
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
