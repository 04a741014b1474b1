package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	st, err := NewStorage("file:" + filepath.Join(dir, "lazaro.db") + "?cache=shared&mode=rwc")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestNewStorageRejectsEmptyURL(t *testing.T) {
	_, err := NewStorage("")
	assert.Error(t, err)
}

func TestTokenLifecycle(t *testing.T) {
	st := newTestStorage(t, t.TempDir())

	token, err := st.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, st.SaveToken("first"))
	require.NoError(t, st.SaveToken("second"))

	token, err = st.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	var rows int
	require.NoError(t, st.DB.QueryRow("SELECT COUNT(*) FROM auth_session").Scan(&rows))
	assert.Equal(t, 1, rows, "saving replaces the previous token")

	require.NoError(t, st.ClearToken())
	token, err = st.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, st.ClearToken())
}

func TestTokenSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := newTestStorage(t, dir)
	require.NoError(t, first.SaveToken("kept"))
	require.NoError(t, first.Close())

	second := newTestStorage(t, dir)
	token, err := second.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "kept", token)
}
