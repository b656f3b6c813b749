package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zen/internal/model"
	"zen/internal/store"
)

func newConfigService() *ConfigService {
	return NewConfigService(store.NewMemory(), zap.NewNop())
}

func TestConfigListDefaultFirst(t *testing.T) {
	svc := newConfigService()
	ctx := context.Background()

	configs, apiErr := svc.List(ctx, "alice")
	require.Nil(t, apiErr)
	require.Len(t, configs, 1)
	assert.Equal(t, model.DefaultConfigID, configs[0].ID)
	assert.Equal(t, model.SystemOwner, configs[0].Owner)
	assert.Equal(t, 25, configs[0].FocusMinutes)

	_, apiErr = svc.Create(ctx, "alice", CreateConfigInput{Name: "Quick", FocusMinutes: 10})
	require.Nil(t, apiErr)
	_, apiErr = svc.Create(ctx, "alice", CreateConfigInput{Name: "Deep", FocusMinutes: 50})
	require.Nil(t, apiErr)

	configs, apiErr = svc.List(ctx, "alice")
	require.Nil(t, apiErr)
	require.Len(t, configs, 3)

	defaults := 0
	for _, cfg := range configs {
		if cfg.ID == model.DefaultConfigID {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
	assert.Equal(t, model.DefaultConfigID, configs[0].ID)
	assert.Equal(t, "Quick", configs[1].Name)
	assert.Equal(t, "Deep", configs[2].Name)
}

func TestConfigCreate(t *testing.T) {
	svc := newConfigService()
	ctx := context.Background()

	_, apiErr := svc.Create(ctx, "alice", CreateConfigInput{Name: "  "})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Missing name", apiErr.Message)

	cfg, apiErr := svc.Create(ctx, "alice", CreateConfigInput{
		Name:                 "Quick",
		FocusMinutes:         10,
		ShortBreakMinutes:    2,
		LongBreakMinutes:     8,
		SessionsPerLongBreak: 3,
	})
	require.Nil(t, apiErr)
	assert.True(t, strings.HasPrefix(cfg.ID, "alice-"), "id %q should carry the owner prefix", cfg.ID)
	assert.Equal(t, "alice", cfg.Owner)
	assert.Equal(t, 10, cfg.FocusMinutes)
}

func TestConfigUpdate(t *testing.T) {
	svc := newConfigService()
	ctx := context.Background()

	_, apiErr := svc.Update(ctx, "alice", model.DefaultConfigID, ConfigPatch{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	_, apiErr = svc.Update(ctx, "alice", "alice-123", ConfigPatch{})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	cfg, apiErr := svc.Create(ctx, "alice", CreateConfigInput{Name: "Quick", FocusMinutes: 10, ShortBreakMinutes: 2})
	require.Nil(t, apiErr)

	name := "Quicker"
	focus := 12
	updated, apiErr := svc.Update(ctx, "alice", cfg.ID, ConfigPatch{Name: &name, FocusMinutes: &focus})
	require.Nil(t, apiErr)
	assert.Equal(t, "Quicker", updated.Name)
	assert.Equal(t, 12, updated.FocusMinutes)
	// Untouched fields survive the merge.
	assert.Equal(t, 2, updated.ShortBreakMinutes)

	// Another user cannot reach it.
	_, apiErr = svc.Update(ctx, "bob", cfg.ID, ConfigPatch{Name: &name})
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestConfigDelete(t *testing.T) {
	svc := newConfigService()
	ctx := context.Background()

	apiErr := svc.Delete(ctx, "alice", model.DefaultConfigID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	apiErr = svc.Delete(ctx, "alice", "alice-123")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	cfg, apiErr := svc.Create(ctx, "alice", CreateConfigInput{Name: "Quick"})
	require.Nil(t, apiErr)

	require.Nil(t, svc.Delete(ctx, "alice", cfg.ID))

	configs, apiErr := svc.List(ctx, "alice")
	require.Nil(t, apiErr)
	for _, listed := range configs {
		assert.NotEqual(t, cfg.ID, listed.ID)
	}
}
