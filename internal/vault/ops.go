package vault

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/awnumar/memguard"
	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/crypto/clientcrypto"
	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/exportfile"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/merge"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/policy"
)

// Rotation reasons written by this package.
const (
	RotationManual    = "manual"
	RotationScheduled = "scheduled"
)

// Rotate replaces the current keypair with a fresh one and records the rotation.
func (m *Manager) Rotate(ctx context.Context, reason string) (model.RotationRecord, error) {
	const op = "rotate"
	if reason == "" {
		reason = RotationManual
	}
	gen, err := m.beginOp(op)
	if err != nil {
		return model.RotationRecord{}, err
	}
	defer m.endOp()

	kek, err := m.kekCopy(op)
	if err != nil {
		return model.RotationRecord{}, err
	}
	defer memguard.WipeBytes(kek)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return model.RotationRecord{}, err
	}
	wrapped, err := clientcrypto.WrapKey(kek, priv)
	if err != nil {
		memguard.WipeBytes(priv)
		return model.RotationRecord{}, err
	}
	id, err := keystore.NewID()
	if err != nil {
		memguard.WipeBytes(priv)
		return model.RotationRecord{}, err
	}
	pk := encodePublic(pub)

	var rec model.RotationRecord
	_, err = m.repo.Update(ctx, m.vaultID, func(ks *model.Keystore) (*model.Keystore, error) {
		now := m.now().UTC()
		ts := now
		if n := len(ks.RotationHistory); n > 0 {
			if last := ks.RotationHistory[n-1].Timestamp; !ts.After(last) {
				ts = last.Add(time.Millisecond)
			}
		}
		rec = model.RotationRecord{
			RotationID:        id,
			Timestamp:         ts,
			Reason:            reason,
			DeviceID:          ks.DeviceID,
			DeviceName:        ks.DeviceName,
			PreviousPublicKey: ks.CurrentKeypair.PublicKey,
			NewPublicKey:      pk,
			Success:           true,
		}
		prev := append([]model.KeypairRecord{keystore.DemoteKeypair(ks.CurrentKeypair, ts)}, ks.PreviousKeypairs...)
		ks.RotationHistory = append(ks.RotationHistory, rec)
		keystore.SortHistory(ks.RotationHistory)
		ks.CurrentKeypair = model.KeypairRecord{PublicKey: pk, EncryptedPrivateKey: wrapped, RotatedAt: ts}
		ks.PreviousKeypairs = keystore.NormalizePrevious(prev, pk, ks.RotationHistory)
		ks.LastModified = now
		return ks, nil
	})
	if err != nil {
		memguard.WipeBytes(priv)
		return model.RotationRecord{}, err
	}
	if err := m.swapHandle(gen, pk, priv); err != nil {
		return rec, err
	}
	m.log.Info("keypair rotated",
		zap.String("rotation", rec.RotationID),
		zap.String("reason", reason),
		zap.String("previous_public_key", rec.PreviousPublicKey),
		zap.String("public_key", pk))
	return rec, nil
}

// ChangePassword re-wraps every stored keypair under a key derived from newPassword
// with a fresh salt. The new password must satisfy the strength policy.
func (m *Manager) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	const op = "change password"
	gen, err := m.beginOp(op)
	if err != nil {
		return err
	}
	defer m.endOp()

	if check := policy.ValidatePassword(newPassword); !check.Valid {
		return errs.Validation(op, fmt.Errorf("%w: %s", errs.ErrWeakPassword, strings.Join(check.Errors, "; ")))
	}
	kek, err := m.kekCopy(op)
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(kek)

	ks, err := m.repo.Get(ctx, m.vaultID)
	if err != nil {
		return err
	}
	oldKEK := crypto.DeriveVaultKEK(oldPassword, ks.Salt, kdfParams(ks.KDF))
	ok := crypto.Equal(oldKEK, kek)
	memguard.WipeBytes(oldKEK)
	if !ok {
		if _, _, lerr := m.lim.Failure(ctx, m.vaultID); lerr != nil {
			m.log.Warn("limiter update failed", zap.Error(lerr))
		}
		m.failureDelay()
		return errs.Authentication(op, errs.ErrWrongPasswordOrCorrupt)
	}

	salt, err := crypto.RandBytes(crypto.SaltLen)
	if err != nil {
		return err
	}
	params := m.cfg.KDF.Resolved()
	newKEK := crypto.DeriveVaultKEK(newPassword, salt, params)

	_, err = m.repo.Update(ctx, m.vaultID, func(ks *model.Keystore) (*model.Keystore, error) {
		cur, err := rewrap(kek, newKEK, ks.CurrentKeypair)
		if err != nil {
			return nil, errs.Authentication(op, errs.ErrWrongPasswordOrCorrupt)
		}
		prev := make([]model.KeypairRecord, len(ks.PreviousKeypairs))
		for i, k := range ks.PreviousKeypairs {
			if prev[i], err = rewrap(kek, newKEK, k); err != nil {
				return nil, errs.Authentication(op, errs.ErrWrongPasswordOrCorrupt)
			}
		}
		ks.CurrentKeypair, ks.PreviousKeypairs = cur, prev
		ks.Salt = salt
		ks.KDF = model.KDFParams{Algorithm: keystore.KDFArgon2id, Time: params.Time, MemoryKB: params.MemoryKB, Threads: params.Threads}
		ks.LastModified = m.now().UTC()
		return ks, nil
	})
	if err != nil {
		memguard.WipeBytes(newKEK)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Unlocked || m.gen != gen {
		memguard.WipeBytes(newKEK)
		return nil
	}
	m.keyMu.Lock()
	if m.kek != nil {
		m.kek.Destroy()
	}
	m.kek = memguard.NewBufferFromBytes(newKEK)
	m.keyMu.Unlock()
	m.log.Info("vault password changed")
	return nil
}

func rewrap(from, to []byte, k model.KeypairRecord) (model.KeypairRecord, error) {
	plain, err := clientcrypto.UnwrapKey(from, k.EncryptedPrivateKey)
	if err != nil {
		return model.KeypairRecord{}, err
	}
	defer memguard.WipeBytes(plain)
	wrapped, err := clientcrypto.WrapKey(to, plain)
	if err != nil {
		return model.KeypairRecord{}, err
	}
	k.EncryptedPrivateKey = wrapped
	return k, nil
}

func (m *Manager) exportOptions() exportfile.Options {
	return exportfile.Options{
		Iterations:    m.cfg.ExportIterations,
		MaxFutureSkew: m.cfg.MaxFutureSkew,
		StaleAfter:    m.cfg.StaleAfter,
		Now:           m.now,
		Primitives:    m.prims,
		Log:           m.log,
	}
}

// Export seals the syncable part of the keystore under password.
func (m *Manager) Export(ctx context.Context, password, confirm []byte) (*model.EncryptedExportFile, *model.ExportPayload, error) {
	const op = "export"
	if _, err := m.beginOp(op); err != nil {
		return nil, nil, err
	}
	defer m.endOp()

	kek, err := m.kekCopy(op)
	if err != nil {
		return nil, nil, err
	}
	defer memguard.WipeBytes(kek)

	ks, err := m.repo.Get(ctx, m.vaultID)
	if err != nil {
		return nil, nil, err
	}
	unwrap := func(rec model.KeypairRecord) ([]byte, error) {
		plain, err := clientcrypto.UnwrapKey(kek, rec.EncryptedPrivateKey)
		if err != nil {
			return nil, errs.Authentication(op, errs.ErrWrongPasswordOrCorrupt)
		}
		return plain, nil
	}
	file, payload, err := exportfile.Seal(ks, unwrap, password, confirm, m.exportOptions())
	if err != nil {
		m.log.Warn("export failed", zap.String("class", errs.KindOf(err).String()), zap.Error(err))
		return nil, nil, err
	}
	return file, payload, nil
}

// ImportResult summarises an applied import.
type ImportResult struct {
	Stats            merge.Stats
	SourceDeviceID   string
	SourceDeviceName string
	ExportedAt       time.Time
	CurrentPublicKey string
	KeyChanged       bool
}

// Import authenticates file, checks it against the local keystore and merges it.
// Nothing is written unless every check passes.
func (m *Manager) Import(ctx context.Context, file *model.EncryptedExportFile, password []byte) (ImportResult, error) {
	const op = "import"
	gen, err := m.beginOp(op)
	if err != nil {
		return ImportResult{}, err
	}
	defer m.endOp()

	res, err := m.importLocked(ctx, gen, file, password)
	if err != nil {
		m.log.Warn("import rejected", zap.String("class", errs.KindOf(err).String()), zap.Error(err))
		return ImportResult{}, err
	}
	return res, nil
}

func (m *Manager) importLocked(ctx context.Context, gen uint64, file *model.EncryptedExportFile, password []byte) (ImportResult, error) {
	const op = "import"
	opts := m.exportOptions()
	opened, err := exportfile.Open(file, password, opts)
	if err != nil {
		return ImportResult{}, err
	}
	defer opened.Close()

	kek, err := m.kekCopy(op)
	if err != nil {
		return ImportResult{}, err
	}
	defer memguard.WipeBytes(kek)

	in := *opened.Payload
	if in.EncryptedCurrentKeypair, err = m.rewrapImported(opened, kek, in.EncryptedCurrentKeypair); err != nil {
		return ImportResult{}, err
	}
	prev := make([]model.KeypairRecord, len(in.EncryptedPreviousKeypairs))
	for i, k := range in.EncryptedPreviousKeypairs {
		if prev[i], err = m.rewrapImported(opened, kek, k); err != nil {
			return ImportResult{}, err
		}
	}
	in.EncryptedPreviousKeypairs = prev

	var (
		stats  merge.Stats
		before string
	)
	merged, err := m.repo.Update(ctx, m.vaultID, func(local *model.Keystore) (*model.Keystore, error) {
		if err := exportfile.Verify(local, &in, opts); err != nil {
			return nil, err
		}
		before = local.CurrentKeypair.PublicKey
		out, st := merge.Merge(local, &in, m.now().UTC())
		stats = st
		return out, nil
	})
	if errors.Is(err, errs.ErrNotFound) {
		return ImportResult{}, errs.Integrity(op, errs.ErrNoKeystore)
	}
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{
		Stats:            stats,
		SourceDeviceID:   in.SourceDeviceID,
		SourceDeviceName: in.SourceDeviceName,
		ExportedAt:       in.ExportedAt,
		CurrentPublicKey: merged.CurrentKeypair.PublicKey,
		KeyChanged:       merged.CurrentKeypair.PublicKey != before,
	}
	if res.KeyChanged {
		priv, err := clientcrypto.UnwrapKey(kek, merged.CurrentKeypair.EncryptedPrivateKey)
		if err != nil {
			return res, errs.Authentication(op, errs.ErrWrongPasswordOrCorrupt)
		}
		if err := m.swapHandle(gen, merged.CurrentKeypair.PublicKey, priv); err != nil {
			return res, err
		}
	}
	m.log.Info("import applied",
		zap.String("source_device", in.SourceDeviceName),
		zap.Int("rotations_added", stats.RotationsAdded),
		zap.Int("keypairs_merged", stats.KeypairsMerged),
		zap.Bool("conflicted", stats.Conflicted),
		zap.Bool("key_changed", res.KeyChanged))
	return res, nil
}

// rewrapImported moves an imported private key from the export wrap key to the local vault key.
func (m *Manager) rewrapImported(opened *exportfile.Opened, kek []byte, rec model.KeypairRecord) (model.KeypairRecord, error) {
	plain, err := opened.UnwrapKey(rec)
	if err != nil {
		return model.KeypairRecord{}, err
	}
	defer memguard.WipeBytes(plain)
	if !checkKeypair(rec.PublicKey, plain) {
		return model.KeypairRecord{}, errs.Authentication("import", errs.ErrChecksumMismatch)
	}
	wrapped, err := clientcrypto.WrapKey(kek, plain)
	if err != nil {
		return model.KeypairRecord{}, err
	}
	rec.EncryptedPrivateKey = wrapped
	return rec, nil
}

// SetVaultSettings persists the idle timeout and lock policy of this device.
func (m *Manager) SetVaultSettings(ctx context.Context, s model.VaultSettings) error {
	const op = "vault settings"
	if s.IdleTimeout <= 0 {
		return errs.Validation(op, fmt.Errorf("%w: idle timeout must be positive", errs.ErrUnsupportedFormat))
	}
	gen, err := m.beginOp(op)
	if err != nil {
		return err
	}
	defer m.endOp()

	_, err = m.repo.Update(ctx, m.vaultID, func(ks *model.Keystore) (*model.Keystore, error) {
		ks.VaultSettings = s
		ks.LastModified = m.now().UTC()
		return ks, nil
	})
	if err != nil {
		return err
	}
	m.mu.Lock()
	if m.gen == gen {
		m.settings = s
	}
	m.mu.Unlock()
	m.log.Info("vault settings updated", zap.Duration("idle_timeout", s.IdleTimeout))
	return nil
}

// Snapshot is the public view of a vault. It never carries key material.
type Snapshot struct {
	State            State
	VaultID          string
	Initialized      bool
	UserID           string
	DeviceID         string
	DeviceName       string
	Platform         string
	CurrentPublicKey string
	PreviousKeypairs int
	Rotations        int
	Syncs            int
	Settings         model.VaultSettings
	LastActivity     time.Time
	LastLockReason   Reason
	LastSyncedAt     time.Time
	LastModified     time.Time
}

// Status reports the lifecycle state together with the stored public metadata.
// A vault that was never created reports Initialized=false.
func (m *Manager) Status(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	s := Snapshot{
		State:          m.state,
		VaultID:        m.vaultID,
		LastActivity:   m.lastActivity,
		LastLockReason: m.lastLockReason,
	}
	m.mu.Unlock()

	ks, err := m.repo.Get(ctx, m.vaultID)
	if errors.Is(err, errs.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	s.Initialized = true
	s.UserID = ks.UserID
	s.DeviceID = ks.DeviceID
	s.DeviceName = ks.DeviceName
	s.Platform = ks.Platform
	s.CurrentPublicKey = ks.CurrentKeypair.PublicKey
	s.PreviousKeypairs = len(ks.PreviousKeypairs)
	s.Rotations = len(ks.RotationHistory)
	s.Syncs = len(ks.SyncHistory)
	s.Settings = ks.VaultSettings
	s.LastSyncedAt = ks.LastSyncedAt
	s.LastModified = ks.LastModified
	return s, nil
}

// History is the public audit trail of a vault.
type History struct {
	Rotations []model.RotationRecord
	Syncs     []model.SyncRecord
}

// History returns the rotation and sync history. It does not require an unlocked vault.
func (m *Manager) History(ctx context.Context) (History, error) {
	ks, err := m.repo.Get(ctx, m.vaultID)
	if err != nil {
		return History{}, err
	}
	return History{Rotations: ks.RotationHistory, Syncs: ks.SyncHistory}, nil
}
