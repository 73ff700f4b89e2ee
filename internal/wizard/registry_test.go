package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySessionLifecycle(t *testing.T) {
	env := newTestEnv()
	registry := NewRegistry(env.deps, 30*time.Minute, time.Minute)
	defer registry.Stop()

	sessionID, machine, err := registry.Create(context.Background(), "club-1", "court-1")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	require.NotNil(t, machine)
	assert.Equal(t, 1, registry.Len())

	got, err := registry.Get(sessionID)
	require.NoError(t, err)
	assert.Same(t, machine, got)

	_, err = registry.Get("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	registry.Delete(sessionID)
	_, err = registry.Get(sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistrySweepExpiresIdleSessions(t *testing.T) {
	env := newTestEnv()
	registry := NewRegistry(env.deps, 30*time.Minute, time.Minute)
	defer registry.Stop()

	idleID, _, err := registry.Create(context.Background(), "club-1", "court-1")
	require.NoError(t, err)
	activeID, _, err := registry.Create(context.Background(), "club-1", "court-2")
	require.NoError(t, err)

	// Time passes; only one session is touched
	env.now = env.now.Add(20 * time.Minute)
	_, err = registry.Get(activeID)
	require.NoError(t, err)

	env.now = env.now.Add(15 * time.Minute)
	registry.sweep()

	_, err = registry.Get(idleID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = registry.Get(activeID)
	assert.NoError(t, err)
}

func TestRegistryCreateFailsOnUnknownClub(t *testing.T) {
	env := newTestEnv()
	registry := NewRegistry(env.deps, 30*time.Minute, time.Minute)
	defer registry.Stop()

	_, _, err := registry.Create(context.Background(), "club-404", "court-1")
	assert.ErrorIs(t, err, ErrClubNotFound)
	assert.Equal(t, 0, registry.Len())
}
