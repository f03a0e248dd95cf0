package services

import (
	"context"
	"testing"

	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_Defaults(t *testing.T) {
	provider := NewProvider(&ProviderConfig{EnemyPolicy: battle.CyclePolicy{}})
	require.NotNil(t, provider.BattleService)
	require.NotNil(t, provider.Bus)

	ctx := context.Background()
	_, err := provider.BattleService.ApplyPlayerAction(ctx, "default", battle.ActionShieldBlock)
	require.NoError(t, err)

	state, err := provider.BattleService.ApplyEnemyTurn(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, battle.SidePlayer, state.Turn)
	assert.Equal(t, 97, state.Player.HP, "cycle opens with an attack; the shield absorbs 2 of 5")

	outcomes, err := provider.BattleService.History(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
