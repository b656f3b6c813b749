package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"zen/internal/store"
)

func newSessionService() *SessionService {
	return NewSessionService(store.NewMemory(), zap.NewNop())
}

func TestSessionStart(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()

	session, apiErr := svc.Start(ctx, "alice", "")
	require.Nil(t, apiErr)
	assert.True(t, strings.HasPrefix(session.ID, "s-"))
	assert.Equal(t, "default", session.ConfigID)
	assert.NotNil(t, session.Distractions)
	assert.Empty(t, session.Distractions)
	assert.Empty(t, session.FocusInput)
	assert.Greater(t, session.StartedAt, int64(0))

	// A dangling config reference is accepted as-is.
	session, apiErr = svc.Start(ctx, "alice", "alice-never-existed")
	require.Nil(t, apiErr)
	assert.Equal(t, "alice-never-existed", session.ConfigID)
}

func TestSessionAppendDistraction(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()

	_, apiErr := svc.AppendDistraction(ctx, "alice", "s-404", "phone")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Session not found", apiErr.Message)

	session, apiErr := svc.Start(ctx, "alice", "default")
	require.Nil(t, apiErr)

	session, apiErr = svc.AppendDistraction(ctx, "alice", session.ID, "phone")
	require.Nil(t, apiErr)
	require.Len(t, session.Distractions, 1)
	assert.Equal(t, "phone", session.Distractions[0].Text)
	assert.Greater(t, session.Distractions[0].At, int64(0))

	session, apiErr = svc.AppendDistraction(ctx, "alice", session.ID, "doorbell")
	require.Nil(t, apiErr)
	require.Len(t, session.Distractions, 2)
	// Earlier entries keep their place and content.
	assert.Equal(t, "phone", session.Distractions[0].Text)
	assert.Equal(t, "doorbell", session.Distractions[1].Text)

	// Sessions are private to their owner.
	_, apiErr = svc.AppendDistraction(ctx, "bob", session.ID, "sneaky")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestSessionSetFocusInput(t *testing.T) {
	svc := newSessionService()
	ctx := context.Background()

	_, apiErr := svc.SetFocusInput(ctx, "alice", "s-404", "notes")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	session, apiErr := svc.Start(ctx, "alice", "default")
	require.Nil(t, apiErr)

	session, apiErr = svc.SetFocusInput(ctx, "alice", session.ID, "draft the report")
	require.Nil(t, apiErr)
	assert.Equal(t, "draft the report", session.FocusInput)

	// Overwrite, not merge.
	session, apiErr = svc.SetFocusInput(ctx, "alice", session.ID, "ship the report")
	require.Nil(t, apiErr)
	assert.Equal(t, "ship the report", session.FocusInput)
}
