package vault

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/limiter"
	"github.com/and161185/keyvault/internal/repository/filestore"
)

func TestUnlock_CreatesVaultOnFirstUse(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	ev := record(d.mgr)

	res := unlock(t, d.mgr, strongPassword, "user-1")
	require.True(t, res.Created)
	require.Empty(t, res.Warnings)
	require.Equal(t, Unlocked, d.mgr.State())
	require.True(t, res.Keypair.Valid())
	require.Equal(t, []Reason{ReasonUnlockStarted, ReasonUnlocked}, ev.reasons())

	ks := stored(t, d.store)
	require.Equal(t, "user-1", ks.UserID)
	require.Equal(t, res.Keypair.PublicKey(), ks.CurrentKeypair.PublicKey)
	require.Equal(t, "dev-alpha", ks.DeviceID)
	require.Equal(t, "alpha (Linux)", ks.DeviceName)
	require.Empty(t, ks.RotationHistory)
	require.Equal(t, testConfig().KDF.MemoryKB, ks.KDF.MemoryKB)

	// a fresh manager over the same store opens the existing keystore
	m2 := New(d.store, testVault, testConfig(), nil)
	t.Cleanup(m2.Close)
	res2 := unlock(t, m2, strongPassword, "")
	require.False(t, res2.Created)
	require.Equal(t, res.Keypair.PublicKey(), res2.Keypair.PublicKey())
}

func TestUnlock_GeneratesUserID(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	require.NotEmpty(t, stored(t, d.store).UserID)
}

func TestUnlock_WeakPasswordRejectedOnCreate(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	res := d.mgr.UnlockWithPassword(context.Background(), []byte("password"), "")
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, errs.ErrWeakPassword)
	require.True(t, errs.IsKind(res.Err, errs.KindValidation))
	require.Equal(t, Locked, d.mgr.State())

	_, err := d.store.Get(context.Background(), testVault)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUnlock_FairPasswordWarnsOnCreate(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	res := unlock(t, d.mgr, fairPassword, "")
	require.True(t, res.Created)
	require.NotEmpty(t, res.Warnings)
}

func TestUnlock_ExistingWeakPasswordOnlyWarns(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	seedKeystore(t, d.store, "hunter2", "user-1")

	res := unlock(t, d.mgr, "hunter2", "user-1")
	require.False(t, res.Created)
	require.Len(t, res.Warnings, 1)
	require.Contains(t, res.Warnings[0], "current policy")
}

func TestUnlock_WrongPasswordFailsSlowly(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	d.mgr.Lock(ReasonManual)
	ev := record(d.mgr)

	for i := 0; i < 3; i++ {
		res := d.mgr.UnlockWithPassword(context.Background(), []byte("Wrong-password-42"), "")
		require.False(t, res.Success)
		require.Nil(t, res.Keypair)
		require.ErrorIs(t, res.Err, errs.ErrWrongPasswordOrCorrupt)
		require.True(t, errs.IsKind(res.Err, errs.KindAuthentication))
		require.GreaterOrEqual(t, res.Elapsed, DefaultFailureDelayMin)
		require.Equal(t, Locked, d.mgr.State())
	}
	require.Equal(t, []Reason{
		ReasonUnlockStarted, ReasonUnlockFailed,
		ReasonUnlockStarted, ReasonUnlockFailed,
		ReasonUnlockStarted, ReasonUnlockFailed,
	}, ev.reasons())
}

func TestUnlock_CancelledContextStillDelays(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	d.mgr.Lock(ReasonManual)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := d.mgr.UnlockWithPassword(ctx, []byte("Wrong-password-42"), "")
	require.ErrorIs(t, res.Err, errs.ErrWrongPasswordOrCorrupt)
	require.GreaterOrEqual(t, res.Elapsed, DefaultFailureDelayMin)
}

func TestUnlock_UserMismatch(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "user-1")
	d.mgr.Lock(ReasonManual)

	res := d.mgr.UnlockWithPassword(context.Background(), []byte(strongPassword), "user-2")
	require.ErrorIs(t, res.Err, errs.ErrUserMismatch)
	require.True(t, errs.IsKind(res.Err, errs.KindIntegrity))
	require.Equal(t, Locked, d.mgr.State())
}

func TestUnlock_WhileUnlockedReturnsExistingHandle(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	first := unlock(t, d.mgr, strongPassword, "user-1")

	again := d.mgr.UnlockWithPassword(context.Background(), []byte("anything"), "")
	require.True(t, again.Success)
	require.Same(t, first.Keypair, again.Keypair)

	other := d.mgr.UnlockWithPassword(context.Background(), []byte(strongPassword), "user-2")
	require.ErrorIs(t, other.Err, errs.ErrUserMismatch)
	require.Equal(t, Unlocked, d.mgr.State())
}

func TestUnlock_SecondAttemptWhileUnlocking(t *testing.T) {
	t.Parallel()

	store, err := filestore.New(t.TempDir(), nopLogger())
	require.NoError(t, err)
	gate := newGatedRepo(store)
	m := New(gate, testVault, testConfig(), nopLogger())
	t.Cleanup(m.Close)

	done := make(chan UnlockResult, 1)
	go func() { done <- m.UnlockWithPassword(context.Background(), []byte(strongPassword), "") }()
	<-gate.entered
	require.Equal(t, Unlocking, m.State())

	res := m.UnlockWithPassword(context.Background(), []byte(strongPassword), "")
	require.ErrorIs(t, res.Err, errs.ErrUnlockInProgress)
	require.True(t, errs.IsKind(res.Err, errs.KindState))

	close(gate.release)
	first := <-done
	require.NoError(t, first.Err)
	require.Equal(t, Unlocked, m.State())
}

func TestUnlock_LockDuringUnlockingWins(t *testing.T) {
	t.Parallel()

	store, err := filestore.New(t.TempDir(), nopLogger())
	require.NoError(t, err)
	gate := newGatedRepo(store)
	m := New(gate, testVault, testConfig(), nopLogger())
	t.Cleanup(m.Close)

	done := make(chan UnlockResult, 1)
	go func() { done <- m.UnlockWithPassword(context.Background(), []byte(strongPassword), "") }()
	<-gate.entered

	require.True(t, m.Lock(ReasonScreenLock))
	close(gate.release)

	res := <-done
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, errs.ErrLocked)
	require.Equal(t, Locked, m.State())
	_, err = m.Keypair()
	require.ErrorIs(t, err, errs.ErrLocked)
}

func TestUnlock_RateLimited(t *testing.T) {
	t.Parallel()

	d := newTestManager(t, WithLimiter(limiter.NewMemory(time.Minute, 1, time.Minute)))
	unlock(t, d.mgr, strongPassword, "")
	d.mgr.Lock(ReasonManual)

	res := d.mgr.UnlockWithPassword(context.Background(), []byte("Wrong-password-42"), "")
	require.ErrorIs(t, res.Err, errs.ErrWrongPasswordOrCorrupt)

	res = d.mgr.UnlockWithPassword(context.Background(), []byte(strongPassword), "")
	require.ErrorIs(t, res.Err, errs.ErrRateLimited)
	require.True(t, errs.IsKind(res.Err, errs.KindAuthentication))
	require.GreaterOrEqual(t, res.Elapsed, DefaultFailureDelayMin)
	require.Equal(t, Locked, d.mgr.State())
}

func TestUnlock_OnlyPasswordGuessesAreRateLimited(t *testing.T) {
	t.Parallel()

	d := newTestManager(t, WithLimiter(limiter.NewMemory(time.Minute, 1, time.Minute)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := d.mgr.UnlockWithPassword(ctx, []byte("password"), "")
		require.ErrorIs(t, res.Err, errs.ErrWeakPassword)
	}
	unlock(t, d.mgr, strongPassword, "user-1")
	d.mgr.Lock(ReasonManual)

	for i := 0; i < 3; i++ {
		res := d.mgr.UnlockWithPassword(ctx, []byte(strongPassword), "user-2")
		require.ErrorIs(t, res.Err, errs.ErrUserMismatch)
	}
	unlock(t, d.mgr, strongPassword, "user-1")
}

func TestUnlock_NoSecretsInLogs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	store, err := filestore.New(t.TempDir(), zap.New(core))
	require.NoError(t, err)
	m := New(store, testVault, testConfig(), zap.New(core))
	t.Cleanup(m.Close)

	res := unlock(t, m, strongPassword, "")
	sig, err := m.Sign([]byte("payload"))
	require.NoError(t, err)
	m.Lock(ReasonManual)
	m.UnlockWithPassword(context.Background(), []byte("Wrong-password-42"), "")

	pub, err := base64.StdEncoding.DecodeString(res.Keypair.PublicKey())
	require.NoError(t, err)
	require.True(t, ed25519.Verify(pub, []byte("payload"), sig))

	ks := stored(t, store)
	secrets := []string{
		strongPassword,
		"Wrong-password-42",
		base64.StdEncoding.EncodeToString(ks.CurrentKeypair.EncryptedPrivateKey),
		base64.StdEncoding.EncodeToString(ks.Salt),
	}
	require.NotZero(t, logs.Len())
	for _, e := range logs.All() {
		line := e.Message + " " + fmt.Sprint(e.ContextMap())
		for _, s := range secrets {
			require.False(t, strings.Contains(line, s), "log entry %q leaks a secret", e.Message)
		}
	}
}
