package session

import (
	"os"
	"path/filepath"
	"testing"

	"ipscope/internal/client/api"
	"ipscope/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *api.Session {
	return &api.Session{
		Token: "signed-token",
		User: entity.Profile{
			ID:    uuid.New(),
			Name:  "Admin",
			Email: "admin@example.com",
		},
	}
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Equal(t, Anonymous, store.State())
	assert.Nil(t, store.Load())

	saved := testSession()
	require.NoError(t, store.Save(saved))
	assert.Equal(t, Authenticated, store.State())

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.User, loaded.User)

	require.NoError(t, store.Clear())
	assert.Equal(t, Anonymous, store.State())
	assert.Nil(t, store.Load())
}

func TestStore_ClearWithoutSession(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.NoError(t, store.Clear())
}

func TestStore_RefusesEmptyToken(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.Error(t, store.Save(nil))
	assert.Error(t, store.Save(&api.Session{Token: ""}))
	assert.Equal(t, Anonymous, store.State())
}

func TestStore_CorruptFileIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0o600))

	store := NewStore(dir)
	assert.Nil(t, store.Load())
	assert.Equal(t, Anonymous, store.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
