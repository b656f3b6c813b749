package store_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/internal/db"
	"zen/internal/store"
)

func setupSQLite(t *testing.T) *store.SQLite {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	require.NoError(t, db.RunMigrations(database, migrationsDir))

	return store.NewSQLite(database)
}

func TestSQLiteRoundTrip(t *testing.T) {
	st := setupSQLite(t)
	ctx := context.Background()

	_, err := st.Get(ctx, "alice", "user")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Put(ctx, "alice", "user", []byte(`{"username":"alice"}`)))
	value, err := st.Get(ctx, "alice", "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, string(value))

	require.NoError(t, st.Put(ctx, "alice", "user", []byte(`{"username":"alice","v":2}`)))
	value, err = st.Get(ctx, "alice", "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice","v":2}`, string(value))

	require.NoError(t, st.Delete(ctx, "alice", "user"))
	assert.ErrorIs(t, st.Delete(ctx, "alice", "user"), store.ErrNotFound)
}

func TestSQLiteQueryPrefix(t *testing.T) {
	st := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, "alice", "config#alice-200", []byte(`"second"`)))
	require.NoError(t, st.Put(ctx, "alice", "config#alice-100", []byte(`"first"`)))
	require.NoError(t, st.Put(ctx, "alice", "session#s-100", []byte(`"session"`)))
	require.NoError(t, st.Put(ctx, "bob", "config#bob-100", []byte(`"other"`)))

	values, err := st.QueryPrefix(ctx, "alice", store.ConfigPrefix)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, `"first"`, string(values[0]))
	assert.Equal(t, `"second"`, string(values[1]))
}
