package file

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuvora-hq/crm-cli/internal/domain"
)

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".crm", "session.toml")
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), "tok-123"))

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestLoadMissingFileReportsTokenNotFound(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.toml"))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.toml"))

	assert.Error(t, store.Save(context.Background(), "  "))
}

func TestSaveRestrictsFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}

	path := filepath.Join(t.TempDir(), ".crm", "session.toml")
	store := NewStore(path)
	require.NoError(t, store.Save(context.Background(), "tok-123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())
}

func TestSaveOverwritesPreviousToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), "first"))
	require.NoError(t, store.Save(context.Background(), "second"))

	token, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

func TestDeleteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	store := NewStore(path)

	require.NoError(t, store.Save(context.Background(), "tok-123"))
	require.NoError(t, store.Delete(context.Background()))
	require.NoError(t, store.Delete(context.Background()))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestLoadIgnoresBlankToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = \"\"\n"), 0o600))

	_, err := NewStore(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}
