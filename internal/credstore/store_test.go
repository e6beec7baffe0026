package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "credentials.json"), "test-passphrase")
	require.NoError(t, err)
	return store
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	user := json.RawMessage(`{"id":1,"email":"leader@naxum.com"}`)
	require.NoError(t, store.Save("tok-abc", user))

	token, loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
	assert.JSONEq(t, string(user), string(loaded))
	assert.Equal(t, "tok-abc", store.Token())
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, _, ok := store.Load()
	assert.False(t, ok)
	assert.Empty(t, store.Token())
}

func TestStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	store, err := New(path, "test-passphrase")
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-abc", json.RawMessage(`{"id":1}`)))

	// A new store over the same file sees the previous run's credentials.
	reopened, err := New(path, "test-passphrase")
	require.NoError(t, err)

	token, user, ok := reopened.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
	assert.JSONEq(t, `{"id":1}`, string(user))
}

func TestStore_EncryptedAtRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	store, err := New(path, "test-passphrase")
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-secret", json.RawMessage(`{"id":1}`)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok-secret")
}

func TestStore_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	store, err := New(path, "right")
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-abc", json.RawMessage(`{"id":1}`)))

	_, err = New(path, "wrong")
	require.Error(t, err)
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store, err := New(path, "test-passphrase")
	require.NoError(t, err)
	require.NoError(t, store.Save("tok-abc", json.RawMessage(`{"id":1}`)))

	require.NoError(t, store.Clear())

	_, _, ok := store.Load()
	assert.False(t, ok)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_ClearNotifiesSubscribers(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("tok-abc", json.RawMessage(`{"id":1}`)))

	cleared := 0
	store.OnClear(func() { cleared++ })

	require.NoError(t, store.Clear())
	assert.Equal(t, 1, cleared)

	// Clearing an empty store is a no-op and does not re-notify.
	require.NoError(t, store.Clear())
	assert.Equal(t, 1, cleared)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save("tok-abc", json.RawMessage(`{"id":1}`)))

	var tokenSeen string
	store.OnClear(func() { tokenSeen = store.Token() })

	require.NoError(t, store.Clear())
	assert.Empty(t, tokenSeen)
}

func TestStore_ConcurrentReadsSeeWholePair(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				token, user, ok := store.Load()
				if ok {
					// Both halves present or the read reports absent.
					assert.NotEmpty(t, token)
					assert.NotEmpty(t, user)
				}
			}
		}()
	}

	for j := 0; j < 50; j++ {
		require.NoError(t, store.Save("tok-abc", json.RawMessage(`{"id":1}`)))
		require.NoError(t, store.Clear())
	}
	wg.Wait()
}
