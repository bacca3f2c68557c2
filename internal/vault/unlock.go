package vault

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/awnumar/memguard"
	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/crypto/clientcrypto"
	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/policy"
)

// UnlockResult is the outcome of UnlockWithPassword. Err never contains the password.
type UnlockResult struct {
	Success  bool
	Keypair  *KeypairHandle
	Created  bool
	Elapsed  time.Duration
	Err      error
	Warnings []string
}

type attempt struct {
	ks       *model.Keystore
	kek      []byte
	priv     []byte
	created  bool
	warnings []string
}

// UnlockWithPassword unlocks the vault, creating the keystore on first use.
// userID is optional; for an existing keystore it must match the stored one.
//
// A started attempt always runs to completion, including the randomised failure
// delay, even if ctx is cancelled.
func (m *Manager) UnlockWithPassword(ctx context.Context, password []byte, userID string) UnlockResult {
	const op = "unlock"
	start := time.Now()
	done := func(r UnlockResult) UnlockResult {
		r.Elapsed = time.Since(start)
		return r
	}

	m.mu.Lock()
	switch m.state {
	case Unlocked:
		h, uid := m.handle, m.userID
		m.mu.Unlock()
		if userID != "" && userID != uid {
			m.failureDelay()
			return done(UnlockResult{Err: errs.Integrity(op, errs.ErrUserMismatch)})
		}
		m.RecordActivity()
		return done(UnlockResult{Success: true, Keypair: h})
	case Unlocking:
		m.mu.Unlock()
		return done(UnlockResult{Err: errs.State(op, errs.ErrUnlockInProgress)})
	}
	if !m.opMu.TryLock() {
		m.mu.Unlock()
		return done(UnlockResult{Err: errs.State(op, errs.ErrBusy)})
	}
	gen := m.gen
	ev := m.transitionLocked(Unlocking, ReasonUnlockStarted)
	m.mu.Unlock()
	m.emit(ev)
	defer m.opMu.Unlock()

	ctx = context.WithoutCancel(ctx)
	a, err := m.attempt(ctx, password, userID)
	if err != nil {
		var warnings []string
		if a != nil {
			warnings = a.warnings
		}
		return done(m.fail(ctx, gen, err, warnings))
	}

	m.mu.Lock()
	if m.state != Unlocking || m.gen != gen {
		m.mu.Unlock()
		memguard.WipeBytes(a.kek)
		memguard.WipeBytes(a.priv)
		m.log.Info("unlock discarded: vault locked during attempt")
		return done(UnlockResult{Err: errs.State(op, errs.ErrLocked), Warnings: a.warnings})
	}
	m.keyMu.Lock()
	m.kek = memguard.NewBufferFromBytes(a.kek)
	m.keyMu.Unlock()
	m.handle = newHandle(a.ks.CurrentKeypair.PublicKey, a.priv)
	m.userID = a.ks.UserID
	m.settings = a.ks.VaultSettings
	m.lastActivity = m.now()
	m.startTimerLocked()
	ev = m.transitionLocked(Unlocked, ReasonUnlocked)
	h := m.handle
	m.mu.Unlock()
	m.emit(ev)

	if err := m.lim.Success(ctx, m.vaultID); err != nil {
		m.log.Warn("limiter reset failed", zap.Error(err))
	}
	m.log.Info("vault unlocked",
		zap.String("user", a.ks.UserID),
		zap.String("public_key", a.ks.CurrentKeypair.PublicKey),
		zap.Bool("created", a.created),
		zap.Duration("elapsed", time.Since(start)))
	return done(UnlockResult{Success: true, Keypair: h, Created: a.created, Warnings: a.warnings})
}

func (m *Manager) fail(ctx context.Context, gen uint64, err error, warnings []string) UnlockResult {
	// Only password guesses count: a rejected weak password on create or a
	// userId mismatch never verified a password.
	if countsAsGuess(err) {
		if _, _, lerr := m.lim.Failure(ctx, m.vaultID); lerr != nil {
			m.log.Warn("limiter update failed", zap.Error(lerr))
		}
	}
	m.failureDelay()

	var events []Event
	m.mu.Lock()
	if m.state == Unlocking && m.gen == gen {
		m.lastLockReason = ReasonUnlockFailed
		events = append(events, m.transitionLocked(Locked, ReasonUnlockFailed))
	}
	m.mu.Unlock()
	m.emit(events...)

	m.log.Warn("unlock failed", zap.String("class", errs.KindOf(err).String()), zap.Error(err))
	return UnlockResult{Err: err, Warnings: warnings}
}

func countsAsGuess(err error) bool {
	return errs.IsKind(err, errs.KindAuthentication) && !errors.Is(err, errs.ErrRateLimited)
}

// failureDelay sleeps a uniformly random duration in [FailureDelayMin, FailureDelayMax].
func (m *Manager) failureDelay() {
	d := m.cfg.FailureDelayMin
	if span := m.cfg.FailureDelayMax - m.cfg.FailureDelayMin; span > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(span)+1))
		if err != nil {
			d = m.cfg.FailureDelayMax
		} else {
			d += time.Duration(n.Int64())
		}
	}
	time.Sleep(d)
}

func (m *Manager) attempt(ctx context.Context, password []byte, userID string) (*attempt, error) {
	const op = "unlock"
	ok, retry, err := m.lim.Allow(ctx, m.vaultID)
	if err != nil {
		return nil, fmt.Errorf("%s: limiter: %w", op, err)
	}
	if !ok {
		return nil, errs.Authentication(op, fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, retry.Round(time.Second)))
	}

	ks, err := m.repo.Get(ctx, m.vaultID)
	if errors.Is(err, errs.ErrNotFound) {
		return m.create(ctx, password, userID)
	}
	if err != nil {
		return nil, err
	}

	a := &attempt{ks: ks}
	if check := policy.ValidatePassword(password); !check.Valid {
		a.warnings = append(a.warnings, "password does not meet the current policy: "+strings.Join(check.Errors, "; "))
	} else {
		a.warnings = append(a.warnings, check.Warnings...)
	}
	if userID != "" && userID != ks.UserID {
		return a, errs.Integrity(op, errs.ErrUserMismatch)
	}

	kek := crypto.DeriveVaultKEK(password, ks.Salt, kdfParams(ks.KDF))
	priv, err := clientcrypto.UnwrapKey(kek, ks.CurrentKeypair.EncryptedPrivateKey)
	if err != nil || !checkKeypair(ks.CurrentKeypair.PublicKey, priv) {
		memguard.WipeBytes(kek)
		memguard.WipeBytes(priv)
		return a, errs.Authentication(op, errs.ErrWrongPasswordOrCorrupt)
	}
	a.kek, a.priv = kek, priv
	return a, nil
}

func (m *Manager) create(ctx context.Context, password []byte, userID string) (*attempt, error) {
	const op = "create vault"
	check := policy.ValidatePassword(password)
	if !check.Valid {
		return &attempt{}, errs.Validation(op, fmt.Errorf("%w: %s", errs.ErrWeakPassword, strings.Join(check.Errors, "; ")))
	}
	if userID == "" {
		id, err := keystore.NewID()
		if err != nil {
			return nil, err
		}
		userID = id
	}
	salt, err := crypto.RandBytes(crypto.SaltLen)
	if err != nil {
		return nil, err
	}
	params := m.cfg.KDF.Resolved()
	kek := crypto.DeriveVaultKEK(password, salt, params)
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		memguard.WipeBytes(kek)
		return nil, err
	}
	wrapped, err := clientcrypto.WrapKey(kek, priv)
	if err != nil {
		memguard.WipeBytes(kek)
		memguard.WipeBytes(priv)
		return nil, err
	}

	now := m.now().UTC()
	ks := &model.Keystore{
		SchemaVersion:    keystore.CurrentSchemaVersion,
		UserID:           userID,
		CurrentKeypair:   model.KeypairRecord{PublicKey: encodePublic(pub), EncryptedPrivateKey: wrapped, RotatedAt: now},
		PreviousKeypairs: []model.KeypairRecord{},
		RotationHistory:  []model.RotationRecord{},
		SyncHistory:      []model.SyncRecord{},
		Salt:             salt,
		KDF: model.KDFParams{
			Algorithm: keystore.KDFArgon2id, Time: params.Time, MemoryKB: params.MemoryKB, Threads: params.Threads,
		},
		VaultSettings:   m.cfg.settings(),
		DeviceCreatedAt: now,
		LastModified:    now,
	}
	ks, _ = m.migrator.MigrateKeystore(ks)
	if err := m.repo.Create(ctx, m.vaultID, ks); err != nil {
		memguard.WipeBytes(kek)
		memguard.WipeBytes(priv)
		return nil, err
	}
	m.log.Info("vault created",
		zap.String("user", userID),
		zap.String("device", ks.DeviceName),
		zap.String("public_key", ks.CurrentKeypair.PublicKey))
	return &attempt{ks: ks, kek: kek, priv: priv, created: true, warnings: check.Warnings}, nil
}

func kdfParams(p model.KDFParams) crypto.KDFParams {
	return crypto.KDFParams{Time: p.Time, MemoryKB: p.MemoryKB, Threads: p.Threads}
}
