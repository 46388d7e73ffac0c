package audit_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lightninglabs/xmrswap/audit"
)

func TestSQLiteStoreAppendAndCount(t *testing.T) {
	dir := t.TempDir()
	store, err := audit.OpenSQLiteStore(filepath.Join(dir, "audit.db"))
	require.NoError(t, err)
	defer store.Close()

	env, err := audit.Seal(examplePayload(), nil)
	require.NoError(t, err)

	require.NoError(t, store.Append(env))
	require.NoError(t, store.Append(env))

	count, err := store.Count("swap-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = store.Count("unknown-swap")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
