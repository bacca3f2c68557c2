package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
)

var t0 = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func sample() *model.Keystore {
	return &model.Keystore{
		SchemaVersion:   keystore.CurrentSchemaVersion,
		UserID:          "user-1",
		DeviceID:        "dev-1",
		DeviceName:      "alpha (Linux)",
		Platform:        "linux",
		DeviceCreatedAt: t0,
		CurrentKeypair:  model.KeypairRecord{PublicKey: "pk-1", EncryptedPrivateKey: model.WrappedKey("wrapped"), RotatedAt: t0},
		Salt:            []byte("0123456789abcdef"),
		KDF:             keystore.DefaultKDF(),
		VaultSettings:   keystore.DefaultVaultSettings(),
		LastModified:    t0,
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func TestStore_CreateGet(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "default")
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, s.Create(ctx, "default", sample()))
	require.ErrorIs(t, s.Create(ctx, "default", sample()), errs.ErrAlreadyExists)

	got, err := s.Get(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "pk-1", got.CurrentKeypair.PublicKey)
	require.Equal(t, model.WrappedKey("wrapped"), got.CurrentKeypair.EncryptedPrivateKey)

	fi, err := os.Stat(s.Path("default"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	ks := sample()
	ks.UserID = ""
	err := s.Create(context.Background(), "default", ks)
	require.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = os.Stat(s.Path("default"))
	require.True(t, os.IsNotExist(err))
}

func TestStore_Update(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, "v", sample()))

	out, err := s.Update(ctx, "v", func(ks *model.Keystore) (*model.Keystore, error) {
		ks.DeviceName = "renamed"
		return ks, nil
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", out.DeviceName)

	got, err := s.Get(ctx, "v")
	require.NoError(t, err)
	require.Equal(t, "renamed", got.DeviceName)
}

func TestStore_UpdateAbortsOnError(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, "v", sample()))
	before, err := os.ReadFile(s.Path("v"))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Update(ctx, "v", func(ks *model.Keystore) (*model.Keystore, error) {
		ks.DeviceName = "never"
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Update(ctx, "v", func(ks *model.Keystore) (*model.Keystore, error) {
		ks.UserID = "someone-else"
		return ks, nil
	})
	require.ErrorIs(t, err, errs.ErrUserIDImmutable)
	require.Equal(t, errs.KindIntegrity, errs.KindOf(err))

	after, err := os.ReadFile(s.Path("v"))
	require.NoError(t, err)
	require.Equal(t, before, after)

	tmps, err := filepath.Glob(filepath.Join(s.dir, "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, tmps)
}

func TestStore_UpdateMissing(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	_, err := s.Update(context.Background(), "nope", func(ks *model.Keystore) (*model.Keystore, error) { return ks, nil })
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_RejectsUnsafeVaultID(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	for _, id := range []string{"", "../x", ".hidden", "a/b"} {
		_, err := s.Get(context.Background(), id)
		require.Error(t, err, id)
		require.Equal(t, errs.KindValidation, errs.KindOf(err), id)
	}
}

func TestStore_LegacyDocumentMigratesOnUpdate(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()

	legacy := `{"version":1,"user_id":"user-1","device_id":"dev-legacy",
	  "identity":{"public_key":"pk-1","key_container":{"kind":"split-v0","nonce":"AQI=","ciphertext":"AwQ="}},
	  "salt":"MDEyMzQ1Njc4OWFiY2RlZg==","created_at":"2025-01-01T00:00:00Z"}`
	require.NoError(t, os.WriteFile(s.Path("old"), []byte(legacy), 0o600))

	ks, err := s.Get(ctx, "old")
	require.NoError(t, err)
	require.Equal(t, keystore.CurrentSchemaVersion, ks.SchemaVersion)
	require.Equal(t, "dev-legacy", ks.DeviceID)

	_, err = s.Update(ctx, "old", func(ks *model.Keystore) (*model.Keystore, error) { return ks, nil })
	require.NoError(t, err)

	raw, err := os.ReadFile(s.Path("old"))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"schemaVersion": 2`)
}

func TestStore_GetPersistsMigration(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()

	// no device id: migration backfills a random one
	legacy := `{"version":1,"user_id":"user-1",
	  "identity":{"public_key":"pk-1","key_container":{"kind":"split-v0","nonce":"AQI=","ciphertext":"AwQ="}},
	  "salt":"MDEyMzQ1Njc4OWFiY2RlZg=="}`
	require.NoError(t, os.WriteFile(s.Path("old"), []byte(legacy), 0o600))

	first, err := s.Get(ctx, "old")
	require.NoError(t, err)
	require.NotEmpty(t, first.DeviceID)
	require.False(t, first.DeviceCreatedAt.IsZero())

	second, err := s.Get(ctx, "old")
	require.NoError(t, err)
	require.Equal(t, first.DeviceID, second.DeviceID)
	require.True(t, first.DeviceCreatedAt.Equal(second.DeviceCreatedAt))

	raw, err := os.ReadFile(s.Path("old"))
	require.NoError(t, err)
	require.Contains(t, string(raw), `"schemaVersion": 2`)
	require.Contains(t, string(raw), first.DeviceID)
}

func TestStore_ConcurrentUpdatesAreSerialised(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, "v", sample()))

	const n = 16
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(ctx, "v", func(ks *model.Keystore) (*model.Keystore, error) {
				ks.SyncHistory = append(ks.SyncHistory, model.SyncRecord{SyncID: fmt.Sprint(i)})
				return ks, nil
			})
			errCh <- err
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := s.Get(ctx, "v")
	require.NoError(t, err)
	require.Len(t, got.SyncHistory, n)
}
