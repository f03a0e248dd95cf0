package battleapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/KirkDiggler/spell-duel/internal/clients/battleapi"
	mockdice "github.com/KirkDiggler/spell-duel/internal/dice/mock"
	"github.com/KirkDiggler/spell-duel/internal/domain/battle"
	dnderr "github.com/KirkDiggler/spell-duel/internal/errors"
	"github.com/KirkDiggler/spell-duel/internal/handlers/api"
	"github.com/KirkDiggler/spell-duel/internal/repositories/battles"
	battleService "github.com/KirkDiggler/spell-duel/internal/services/battle"
	"github.com/KirkDiggler/spell-duel/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*httptest.Server, *mockdice.ManualMockRoller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	roller := mockdice.NewManualMockRoller()
	svc := battleService.NewService(&battleService.ServiceConfig{
		Repository:    battles.NewInMemoryRepository(nil),
		Engine:        battle.NewEngine(&battle.EngineConfig{Roller: roller}),
		UUIDGenerator: uuid.NewSequenceGenerator("duel"),
	})
	server := httptest.NewServer(api.NewRouter(&api.RouterConfig{Service: svc}))
	t.Cleanup(server.Close)
	return server, roller
}

func TestClient_Duel(t *testing.T) {
	ctx := context.Background()
	server, roller := newServer(t)

	client, err := battleapi.New(&battleapi.Config{BaseURL: server.URL, SessionID: "cli"})
	require.NoError(t, err)

	snap, err := client.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "cli", snap.SessionID)
	assert.Equal(t, battle.SidePlayer, snap.Turn)

	roller.SetRolls([]int{50})
	snap, err = client.Cast(ctx, battle.ActionPunch)
	require.NoError(t, err)
	assert.Equal(t, 88, snap.Enemy.HP)

	_, err = client.Cast(ctx, battle.ActionHeal)
	require.Error(t, err)
	assert.True(t, dnderr.IsInvalidTurn(err))
	stale := battleapi.StateFromError(err)
	require.NotNil(t, stale)
	assert.Equal(t, battle.SideEnemy, stale.Turn)

	roller.SetRolls([]int{3})
	snap, err = client.EnemyTurn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Enemy braces for defense.", snap.Message)

	snap, err = client.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, snap.Enemy.HP)

	_, err = client.Cast(ctx, "fireball")
	assert.True(t, dnderr.IsUnknownAction(err))
	assert.Nil(t, battleapi.StateFromError(err))
}

func TestClient_Catalog(t *testing.T) {
	ctx := context.Background()
	server, _ := newServer(t)

	client, err := battleapi.New(&battleapi.Config{BaseURL: server.URL + "/"})
	require.NoError(t, err)

	actions, err := client.Actions(ctx)
	require.NoError(t, err)
	assert.Equal(t, battle.Catalog(), actions)

	outcomes, err := client.History(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestClient_Sessions(t *testing.T) {
	ctx := context.Background()
	server, _ := newServer(t)

	client, err := battleapi.New(&battleapi.Config{BaseURL: server.URL})
	require.NoError(t, err)

	created, err := client.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "duel-1", created.SessionID)

	require.NoError(t, client.DeleteSession(ctx, created.SessionID))
	assert.True(t, dnderr.IsNotFound(client.DeleteSession(ctx, created.SessionID)))
}

func TestNew_Validation(t *testing.T) {
	_, err := battleapi.New(nil)
	assert.Error(t, err)

	_, err = battleapi.New(&battleapi.Config{BaseURL: "localhost"})
	assert.Error(t, err)
}

func TestClient_Unreachable(t *testing.T) {
	client, err := battleapi.New(&battleapi.Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.State(context.Background())
	assert.Equal(t, dnderr.CodeUnavailable, dnderr.GetCode(err))
}
