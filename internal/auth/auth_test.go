package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/internal/store"
)

func TestRegisterAndLogin(t *testing.T) {
	gateway := NewGateway(store.NewMemory(), "test-secret", time.Hour)
	ctx := context.Background()

	apiErr := gateway.Register(ctx, "", "pw")
	require.NotNil(t, apiErr)
	assert.Equal(t, "Missing fields", apiErr.Message)

	require.Nil(t, gateway.Register(ctx, "alice", "pw"))

	apiErr = gateway.Register(ctx, "alice", "pw")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "User exists", apiErr.Message)

	token, apiErr := gateway.Login(ctx, "alice", "pw")
	require.Nil(t, apiErr)
	require.NotEmpty(t, token)

	username, apiErr := gateway.ParseToken(token)
	require.Nil(t, apiErr)
	assert.Equal(t, "alice", username)

	_, apiErr = gateway.Login(ctx, "alice", "wrong")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	_, apiErr = gateway.Login(ctx, "nobody", "pw")
	require.NotNil(t, apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestParseTokenRejectsExpiredAndForeign(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	expiring := NewGateway(st, "test-secret", -time.Minute)
	require.Nil(t, expiring.Register(ctx, "alice", "pw"))
	staleToken, apiErr := expiring.Login(ctx, "alice", "pw")
	require.Nil(t, apiErr)

	gateway := NewGateway(st, "test-secret", time.Hour)
	_, apiErr = gateway.ParseToken(staleToken)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	otherSecret := NewGateway(st, "other-secret", time.Hour)
	foreignToken, apiErr := otherSecret.Login(ctx, "alice", "pw")
	require.Nil(t, apiErr)

	_, apiErr = gateway.ParseToken(foreignToken)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Invalid token", apiErr.Message)

	_, apiErr = gateway.ParseToken("not-a-token")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
