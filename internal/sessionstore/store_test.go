// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lensfolio/cli/internal/keychain"
	"lensfolio/cli/internal/session"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testSession() session.Session {
	return session.Session{SessionID: "abc", UserID: "123", CapturedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	plain, err := NewFileStore(afero.NewMemMapFs(), "/state/lensfolio/session.json", nil)
	require.NoError(t, err)
	sealed, err := NewFileStore(afero.NewMemMapFs(), "/state/lensfolio/session.bin", testKey)
	require.NoError(t, err)
	return map[string]Store{
		"memory":  NewMemoryStore(),
		"file":    plain,
		"sealed":  sealed,
		"keyring": NewKeyringStore(keychain.New(keyring.NewArrayKeyring(nil))),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := st.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, st.Save(ctx, session.Session{SessionID: "old", UserID: "1"}))
			require.NoError(t, st.Save(ctx, testSession()))

			got, ok, err := st.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, got.Equal(testSession()), "got %+v", got)
		})
	}
}

func TestClearIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Clear(ctx))
			require.NoError(t, st.Save(ctx, testSession()))
			require.NoError(t, st.Clear(ctx))
			require.NoError(t, st.Clear(ctx))

			_, ok, err := st.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := st.Save(ctx, session.Session{SessionID: "abc"})
			assert.ErrorIs(t, err, ErrInvalidSession)

			_, ok, err := st.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStoreCorruptRecord(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	st, err := NewFileStore(fs, "/s/session.json", nil)
	require.NoError(t, err)

	for _, data := range []string{"", "{not json", `{"version":1,"session_id":"abc"}`} {
		require.NoError(t, afero.WriteFile(fs, "/s/session.json", []byte(data), 0o600))
		_, ok, err := st.Load(ctx)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrCorrupt, "data %q", data)
		assert.False(t, errors.Is(err, ErrUnavailable))
	}
}

func TestFileStoreSealing(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	sealed, err := NewFileStore(fs, "/s/session", testKey)
	require.NoError(t, err)
	require.NoError(t, sealed.Save(ctx, testSession()))

	raw, err := afero.ReadFile(fs, "/s/session")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "abc")

	// Wrong key
	other, err := NewFileStore(fs, "/s/session", []byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)
	_, _, err = other.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	// Plain record read by a sealing store
	plain, err := NewFileStore(fs, "/s/plain", nil)
	require.NoError(t, err)
	require.NoError(t, plain.Save(ctx, testSession()))
	reader, err := NewFileStore(fs, "/s/plain", testKey)
	require.NoError(t, err)
	_, _, err = reader.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStoreMode(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	st, err := NewFileStore(fs, "/s/session.json", nil)
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, testSession()))

	info, err := fs.Stat("/s/session.json")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	entries, err := afero.ReadDir(fs, "/s")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStoreOnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(afero.NewOsFs(), filepath.Join(dir, "state", "session.json"), nil)
	require.NoError(t, err)

	want := session.Session{SessionID: "abc", UserID: "123", CapturedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(ctx, want))
	require.NoError(t, store.Save(ctx, want))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(want))

	entries, err := os.ReadDir(filepath.Join(dir, "state"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSyncDir(t *testing.T) {
	assert.NoError(t, syncDir(afero.NewOsFs(), t.TempDir()))
	// In-memory filesystems have nothing to flush, even for missing dirs.
	assert.NoError(t, syncDir(afero.NewMemMapFs(), "/does/not/exist"))
}

func TestFileStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/s/session.json", nil)
	require.NoError(t, err)

	err = st.Save(ctx, testSession())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsStorageError(err))

	_, ok, err := st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewFileStoreValidation(t *testing.T) {
	_, err := NewFileStore(afero.NewMemMapFs(), "", nil)
	assert.Error(t, err)
	_, err = NewFileStore(afero.NewMemMapFs(), "/x", []byte("short"))
	assert.Error(t, err)
}

func TestConcurrentSaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.Save(ctx, testSession()))

			var wg sync.WaitGroup
			errs := make(chan error, 400)
			for i := 0; i < 20; i++ {
				wg.Add(2)
				go func(i int) {
					defer wg.Done()
					for j := 0; j < 10; j++ {
						s := session.Session{SessionID: fmt.Sprintf("sid-%d-%d", i, j), UserID: "123", CapturedAt: time.Now()}
						if err := st.Save(ctx, s); err != nil {
							errs <- err
						}
					}
				}(i)
				go func() {
					defer wg.Done()
					for j := 0; j < 10; j++ {
						s, ok, err := st.Load(ctx)
						if err != nil {
							errs <- err
							continue
						}
						if !ok || !s.Valid() {
							errs <- errors.New("reader observed a missing or partial record")
						}
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Error(err)
			}
		})
	}
}

func TestParseSealKey(t *testing.T) {
	key, err := ParseSealKey("")
	require.NoError(t, err)
	assert.Nil(t, key)

	key, err = ParseSealKey("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	assert.Len(t, key, 32)

	_, err = ParseSealKey("zz")
	assert.Error(t, err)
	_, err = ParseSealKey("0001")
	assert.Error(t, err)
}
