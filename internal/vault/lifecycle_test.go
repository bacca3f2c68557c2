package vault

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

func TestLock_WipesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	res := unlock(t, d.mgr, strongPassword, "")
	ev := record(d.mgr)

	require.True(t, d.mgr.Lock(ReasonManual))
	require.False(t, d.mgr.Lock(ReasonManual))
	require.Equal(t, Locked, d.mgr.State())
	require.False(t, res.Keypair.Valid())

	_, err := res.Keypair.Sign([]byte("x"))
	require.ErrorIs(t, err, errs.ErrLocked)
	_, err = d.mgr.Sign([]byte("x"))
	require.ErrorIs(t, err, errs.ErrLocked)
	require.True(t, errs.IsKind(err, errs.KindState))
	_, err = d.mgr.PublicKey()
	require.ErrorIs(t, err, errs.ErrLocked)

	events := ev.all()
	require.Len(t, events, 1)
	require.Equal(t, EventStateChanged, events[0].Type)
	require.Equal(t, Unlocked, events[0].PreviousState)
	require.Equal(t, Locked, events[0].NewState)
	require.Equal(t, ReasonManual, events[0].Reason)
	require.Equal(t, t0, events[0].Timestamp)
}

func TestSign_VerifiesWithPublicKey(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")

	pk, err := d.mgr.PublicKey()
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(pk)
	require.NoError(t, err)

	sig, err := d.mgr.Sign([]byte("hello"))
	require.NoError(t, err)
	require.True(t, ed25519.Verify(raw, []byte("hello"), sig))
}

func TestIdleTimeout_LocksAndNotifies(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.IdleTimeout = 50 * time.Millisecond
	d := newDevice(t, "alpha", newClock(), cfg)
	unlock(t, d.mgr, strongPassword, "")
	ev := record(d.mgr)

	require.Eventually(t, func() bool { return d.mgr.State() == Locked }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(ev.all()) == 2 }, time.Second, 10*time.Millisecond)

	events := ev.all()
	require.Equal(t, EventStateChanged, events[0].Type)
	require.Equal(t, ReasonIdleTimeout, events[0].Reason)
	require.Equal(t, EventIdleTimeout, events[1].Type)
	require.Equal(t, Locked, events[1].NewState)

	s, err := d.mgr.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, ReasonIdleTimeout, s.LastLockReason)
}

func TestIdleTimeout_ActivityPostponesLock(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.IdleTimeout = 200 * time.Millisecond
	d := newDevice(t, "alpha", newClock(), cfg)
	unlock(t, d.mgr, strongPassword, "")

	for i := 0; i < 6; i++ {
		time.Sleep(50 * time.Millisecond)
		d.mgr.RecordActivity()
	}
	require.Equal(t, Unlocked, d.mgr.State())
	require.Eventually(t, func() bool { return d.mgr.State() == Locked }, 2*time.Second, 10*time.Millisecond)
}

func TestIdleTimeout_StoredSettingsWin(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	require.NoError(t, d.mgr.SetVaultSettings(context.Background(), model.VaultSettings{IdleTimeout: 50 * time.Millisecond}))
	d.mgr.Lock(ReasonManual)

	unlock(t, d.mgr, strongPassword, "")
	require.Eventually(t, func() bool { return d.mgr.State() == Locked }, 2*time.Second, 10*time.Millisecond)
}

func TestSecurityHooks_DefaultPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fire   func(*Manager) bool
		locks  bool
		reason Reason
	}{
		{name: "system sleep", fire: (*Manager).OnSystemSleep, locks: true, reason: ReasonSystemSleep},
		{name: "screen lock", fire: (*Manager).OnScreenLock, locks: true, reason: ReasonScreenLock},
		{name: "window blur", fire: (*Manager).OnWindowBlur},
		{name: "app minimize", fire: (*Manager).OnAppMinimize},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newTestManager(t)
			unlock(t, d.mgr, strongPassword, "")
			ev := record(d.mgr)

			require.Equal(t, tt.locks, tt.fire(d.mgr))
			if !tt.locks {
				require.Equal(t, Unlocked, d.mgr.State())
				require.Empty(t, ev.all())
				return
			}
			require.Equal(t, Locked, d.mgr.State())
			require.Equal(t, []Reason{tt.reason}, ev.reasons())
		})
	}
}

func TestSecurityHooks_CustomPolicy(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LockPolicy = LockPolicy{WindowBlur: true}
	d := newDevice(t, "alpha", newClock(), cfg)
	unlock(t, d.mgr, strongPassword, "")

	locked, err := d.mgr.HandleSecurityEvent(SecuritySystemSleep)
	require.NoError(t, err)
	require.False(t, locked)

	locked, err = d.mgr.HandleSecurityEvent(SecurityWindowBlur)
	require.NoError(t, err)
	require.True(t, locked)

	_, err = d.mgr.HandleSecurityEvent("lid_closed")
	require.True(t, errs.IsKind(err, errs.KindValidation))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	var n int
	unsubscribe := d.mgr.Subscribe(func(Event) { n++ })

	unlock(t, d.mgr, strongPassword, "")
	require.Equal(t, 2, n)

	unsubscribe()
	unsubscribe()
	d.mgr.Lock(ReasonManual)
	require.Equal(t, 2, n)
}

func TestStatus_Uninitialised(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	s, err := d.mgr.Status(context.Background())
	require.NoError(t, err)
	require.False(t, s.Initialized)
	require.Equal(t, Locked, s.State)
	require.Equal(t, testVault, s.VaultID)

	_, err = d.mgr.History(context.Background())
	require.ErrorIs(t, err, errs.ErrNotFound)
}
