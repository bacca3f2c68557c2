package vault

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

func verifies(t *testing.T, m *Manager, publicKey string) {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(publicKey)
	require.NoError(t, err)
	sig, err := m.Sign([]byte("msg"))
	require.NoError(t, err)
	require.True(t, ed25519.Verify(raw, []byte("msg"), sig))
}

func TestRotate(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	res := unlock(t, d.mgr, strongPassword, "")
	old := res.Keypair.PublicKey()
	d.clock.Advance(time.Hour)

	rec, err := d.mgr.Rotate(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, RotationManual, rec.Reason)
	require.Equal(t, old, rec.PreviousPublicKey)
	require.NotEqual(t, old, rec.NewPublicKey)
	require.Equal(t, "dev-alpha", rec.DeviceID)
	require.True(t, rec.Success)
	require.Equal(t, t0.Add(time.Hour), rec.Timestamp)

	require.False(t, res.Keypair.Valid())
	pk, err := d.mgr.PublicKey()
	require.NoError(t, err)
	require.Equal(t, rec.NewPublicKey, pk)
	verifies(t, d.mgr, pk)

	ks := stored(t, d.store)
	require.Equal(t, pk, ks.CurrentKeypair.PublicKey)
	require.Len(t, ks.PreviousKeypairs, 1)
	require.Equal(t, old, ks.PreviousKeypairs[0].PublicKey)
	require.Equal(t, []model.RotationRecord{rec}, ks.RotationHistory)

	// the rotated keystore still opens with the same password
	d.mgr.Lock(ReasonManual)
	res = unlock(t, d.mgr, strongPassword, "")
	require.Equal(t, pk, res.Keypair.PublicKey())
}

func TestRotate_TimestampsStrictlyIncrease(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")

	r1, err := d.mgr.Rotate(context.Background(), RotationScheduled)
	require.NoError(t, err)
	r2, err := d.mgr.Rotate(context.Background(), RotationScheduled)
	require.NoError(t, err)
	require.Equal(t, r1.Timestamp.Add(time.Millisecond), r2.Timestamp)
	require.Equal(t, r1.NewPublicKey, r2.PreviousPublicKey)
}

func TestRotate_KeepsTenPrevious(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	for i := 0; i < 12; i++ {
		d.clock.Advance(time.Minute)
		_, err := d.mgr.Rotate(context.Background(), "")
		require.NoError(t, err)
	}
	ks := stored(t, d.store)
	require.Len(t, ks.PreviousKeypairs, model.MaxPreviousKeypairs)
	require.Len(t, ks.RotationHistory, 12)
	require.Equal(t, ks.RotationHistory[11].PreviousPublicKey, ks.PreviousKeypairs[0].PublicKey)
}

func TestOps_RequireUnlocked(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	ctx := context.Background()

	_, err := d.mgr.Rotate(ctx, "")
	require.ErrorIs(t, err, errs.ErrLocked)
	require.ErrorIs(t, d.mgr.ChangePassword(ctx, []byte(strongPassword), []byte("An0ther-good-one!")), errs.ErrLocked)
	_, _, err = d.mgr.Export(ctx, []byte(exportPassword), []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrLocked)
	_, err = d.mgr.Import(ctx, &model.EncryptedExportFile{}, []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrLocked)
}

func TestOps_Busy(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")

	d.mgr.opMu.Lock()
	_, err := d.mgr.Rotate(context.Background(), "")
	require.ErrorIs(t, err, errs.ErrBusy)
	_, _, err = d.mgr.Export(context.Background(), []byte(exportPassword), []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrBusy)
	d.mgr.opMu.Unlock()

	_, err = d.mgr.Rotate(context.Background(), "")
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	const newPassword = "An0ther-good-one!"
	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	ctx := context.Background()
	before := stored(t, d.store)

	err := d.mgr.ChangePassword(ctx, []byte("Wrong-password-42"), []byte(newPassword))
	require.ErrorIs(t, err, errs.ErrWrongPasswordOrCorrupt)
	err = d.mgr.ChangePassword(ctx, []byte(strongPassword), []byte("short"))
	require.ErrorIs(t, err, errs.ErrWeakPassword)
	require.Equal(t, before.Salt, stored(t, d.store).Salt)

	require.NoError(t, d.mgr.ChangePassword(ctx, []byte(strongPassword), []byte(newPassword)))
	after := stored(t, d.store)
	require.NotEqual(t, before.Salt, after.Salt)
	require.Equal(t, before.CurrentKeypair.PublicKey, after.CurrentKeypair.PublicKey)

	// the swapped key wraps new material correctly
	_, err = d.mgr.Rotate(ctx, "")
	require.NoError(t, err)

	d.mgr.Lock(ReasonManual)
	res := d.mgr.UnlockWithPassword(ctx, []byte(strongPassword), "")
	require.ErrorIs(t, res.Err, errs.ErrWrongPasswordOrCorrupt)
	unlock(t, d.mgr, newPassword, "")
}

func exportFrom(t *testing.T, m *Manager) *model.EncryptedExportFile {
	t.Helper()
	f, p, err := m.Export(context.Background(), []byte(exportPassword), []byte(exportPassword))
	require.NoError(t, err)
	require.NotEmpty(t, p.Signature)
	return f
}

func TestExport_Validation(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")

	_, _, err := d.mgr.Export(context.Background(), []byte("export-pass"), []byte("export-pasS"))
	require.ErrorIs(t, err, errs.ErrPasswordMismatch)
	_, _, err = d.mgr.Export(context.Background(), []byte("short"), []byte("short"))
	require.ErrorIs(t, err, errs.ErrPasswordTooShort)
}

// TestSync_TwoDevices walks alpha and beta through a create, rotate, export and import cycle.
func TestSync_TwoDevices(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newClock()
	alpha := newDevice(t, "alpha", clock, testConfig())
	beta := newDevice(t, "beta", clock, testConfig())

	unlock(t, alpha.mgr, strongPassword, "user-1")
	pkA0, err := alpha.mgr.PublicKey()
	require.NoError(t, err)
	clock.Advance(time.Minute)
	r1, err := alpha.mgr.Rotate(ctx, "")
	require.NoError(t, err)
	pkA1 := r1.NewPublicKey

	clock.Advance(time.Minute)
	unlock(t, beta.mgr, strongPassword, "user-1")
	pkB0, err := beta.mgr.PublicKey()
	require.NoError(t, err)

	clock.Advance(time.Minute)
	res, err := beta.mgr.Import(ctx, exportFrom(t, alpha.mgr), []byte(exportPassword))
	require.NoError(t, err)
	require.False(t, res.KeyChanged)
	require.True(t, res.Stats.Conflicted)
	require.Equal(t, 1, res.Stats.RotationsAdded)

	bks := stored(t, beta.store)
	require.Equal(t, pkB0, bks.CurrentKeypair.PublicKey)
	require.Equal(t, []model.RotationRecord{r1}, bks.RotationHistory)
	require.Len(t, bks.SyncHistory, 1)
	require.Equal(t, "dev-alpha", bks.SyncHistory[0].SourceDeviceID)
	require.Equal(t, "dev-beta", bks.DeviceID)
	require.ElementsMatch(t, []string{pkA1, pkA0}, publicKeys(bks.PreviousKeypairs))

	clock.Advance(time.Minute)
	r2, err := beta.mgr.Rotate(ctx, "")
	require.NoError(t, err)
	pkB1 := r2.NewPublicKey

	clock.Advance(time.Minute)
	res, err = alpha.mgr.Import(ctx, exportFrom(t, beta.mgr), []byte(exportPassword))
	require.NoError(t, err)
	require.True(t, res.KeyChanged)
	require.Equal(t, pkB1, res.CurrentPublicKey)

	aks := stored(t, alpha.store)
	require.Equal(t, pkB1, aks.CurrentKeypair.PublicKey)
	require.Equal(t, []model.RotationRecord{r1, r2}, aks.RotationHistory)
	require.Contains(t, publicKeys(aks.PreviousKeypairs), pkA1)
	require.Contains(t, publicKeys(aks.PreviousKeypairs), pkB0)
	require.Equal(t, "dev-alpha", aks.DeviceID)
	require.Equal(t, "alpha (Linux)", aks.DeviceName)
	verifies(t, alpha.mgr, pkB1)

	// alpha's stored keys are wrapped under alpha's own password
	alpha.mgr.Lock(ReasonManual)
	got := unlock(t, alpha.mgr, strongPassword, "")
	require.Equal(t, pkB1, got.Keypair.PublicKey())
}

func publicKeys(in []model.KeypairRecord) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		out = append(out, k.PublicKey)
	}
	return out
}

func TestImport_UserMismatchLeavesKeystoreUnchanged(t *testing.T) {
	t.Parallel()

	clock := newClock()
	alpha := newDevice(t, "alpha", clock, testConfig())
	beta := newDevice(t, "beta", clock, testConfig())
	unlock(t, alpha.mgr, strongPassword, "user-1")
	unlock(t, beta.mgr, strongPassword, "user-2")

	before, err := os.ReadFile(alpha.store.Path(testVault))
	require.NoError(t, err)

	_, err = alpha.mgr.Import(context.Background(), exportFrom(t, beta.mgr), []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrUserMismatch)
	require.True(t, errs.IsKind(err, errs.KindIntegrity))

	after, err := os.ReadFile(alpha.store.Path(testVault))
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Equal(t, Unlocked, alpha.mgr.State())
}

func TestImport_TamperedFileNeverApplies(t *testing.T) {
	t.Parallel()

	clock := newClock()
	alpha := newDevice(t, "alpha", clock, testConfig())
	beta := newDevice(t, "beta", clock, testConfig())
	unlock(t, alpha.mgr, strongPassword, "user-1")
	unlock(t, beta.mgr, strongPassword, "user-1")
	f := exportFrom(t, alpha.mgr)

	before, err := os.ReadFile(beta.store.Path(testVault))
	require.NoError(t, err)

	ct, err := base64.StdEncoding.DecodeString(f.Ciphertext)
	require.NoError(t, err)
	ct[len(ct)/2] ^= 0x01
	tampered := *f
	tampered.Ciphertext = base64.StdEncoding.EncodeToString(ct)

	_, err = beta.mgr.Import(context.Background(), &tampered, []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrWrongPasswordOrCorrupt)
	_, err = beta.mgr.Import(context.Background(), f, []byte("not-the-password"))
	require.ErrorIs(t, err, errs.ErrWrongPasswordOrCorrupt)

	after, err := os.ReadFile(beta.store.Path(testVault))
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestImport_ReplayRejected(t *testing.T) {
	t.Parallel()

	clock := newClock()
	alpha := newDevice(t, "alpha", clock, testConfig())
	beta := newDevice(t, "beta", clock, testConfig())
	unlock(t, alpha.mgr, strongPassword, "user-1")
	unlock(t, beta.mgr, strongPassword, "user-1")
	f := exportFrom(t, alpha.mgr)

	_, err := beta.mgr.Import(context.Background(), f, []byte(exportPassword))
	require.NoError(t, err)
	_, err = beta.mgr.Import(context.Background(), f, []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrReplay)
	require.Len(t, stored(t, beta.store).SyncHistory, 1)
}

func TestImport_OwnExportIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	d.clock.Advance(time.Minute)
	_, err := d.mgr.Rotate(ctx, "")
	require.NoError(t, err)
	d.clock.Advance(time.Minute)
	_, err = d.mgr.Rotate(ctx, "")
	require.NoError(t, err)
	before := stored(t, d.store)

	d.clock.Advance(time.Minute)
	res, err := d.mgr.Import(ctx, exportFrom(t, d.mgr), []byte(exportPassword))
	require.NoError(t, err)
	require.Zero(t, res.Stats.RotationsAdded)
	require.Zero(t, res.Stats.ConflictsResolved)
	require.False(t, res.Stats.Conflicted)
	require.Zero(t, res.Stats.KeypairsMerged)
	require.False(t, res.KeyChanged)
	require.Equal(t, before.CurrentKeypair.PublicKey, res.CurrentPublicKey)

	after := stored(t, d.store)
	require.Equal(t, before.CurrentKeypair, after.CurrentKeypair)
	require.Equal(t, before.RotationHistory, after.RotationHistory)
	require.Equal(t, publicKeys(before.PreviousKeypairs), publicKeys(after.PreviousKeypairs))
	require.Len(t, after.SyncHistory, len(before.SyncHistory)+1)
	verifies(t, d.mgr, before.CurrentKeypair.PublicKey)
}

func TestImport_DowngradeRejected(t *testing.T) {
	t.Parallel()

	d := newTestManager(t)
	unlock(t, d.mgr, strongPassword, "")
	_, err := d.mgr.Rotate(context.Background(), "")
	require.NoError(t, err)
	old := exportFrom(t, d.mgr)

	d.clock.Advance(time.Minute)
	_, err = d.mgr.Rotate(context.Background(), "")
	require.NoError(t, err)

	_, err = d.mgr.Import(context.Background(), old, []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrDowngrade)
	require.Len(t, stored(t, d.store).RotationHistory, 2)
}

func TestImport_FutureExportRejected(t *testing.T) {
	t.Parallel()

	alpha := newDevice(t, "alpha", newClock(), testConfig())
	betaClock := newClock()
	beta := newDevice(t, "beta", betaClock, testConfig())
	unlock(t, alpha.mgr, strongPassword, "user-1")
	unlock(t, beta.mgr, strongPassword, "user-1")

	alpha.clock.Advance(time.Hour)
	_, err := beta.mgr.Import(context.Background(), exportFrom(t, alpha.mgr), []byte(exportPassword))
	require.ErrorIs(t, err, errs.ErrFutureExport)
}
