package keystore

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/model"
)

// DefaultIdleTimeout is the idle auto-lock delay when none is configured.
const DefaultIdleTimeout = 5 * time.Minute

// legacyRotationNS namespaces ids assigned to v1 rotations that had none, so every
// device migrating the same history derives the same ids.
var legacyRotationNS = uuid.Must(uuid.FromString("6f1c7d0e-52a4-4b53-9c1e-3b2f7f0c9a41"))

// Migrator upgrades stored keystores. Its fields are the environment it reads.
type Migrator struct {
	Hostname func() (string, error)
	Now      func() time.Time
	GOOS     string
	NewID    func() (string, error)
}

// DefaultMigrator reads the real host.
func DefaultMigrator() *Migrator {
	return &Migrator{Hostname: os.Hostname, Now: time.Now, GOOS: runtime.GOOS, NewID: NewID}
}

// NewID returns a random uuid string.
func NewID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// DefaultKDF returns the Argon2id parameters assumed for keystores that never recorded any.
func DefaultKDF() model.KDFParams {
	return model.KDFParams{
		Algorithm: KDFArgon2id,
		Time:      crypto.ArgonTime,
		MemoryKB:  crypto.ArgonMemory,
		Threads:   crypto.ArgonThreads,
	}
}

// DefaultVaultSettings locks on sleep and screen lock but not on blur or minimize.
func DefaultVaultSettings() model.VaultSettings {
	return model.VaultSettings{
		IdleTimeout:       DefaultIdleTimeout,
		LockOnSystemSleep: true,
		LockOnScreenLock:  true,
	}
}

// MigrateV1 converts a v1 keystore. Every v1 field is carried over or mapped.
func (m *Migrator) MigrateV1(l *LegacyKeystoreV1) (*model.Keystore, error) {
	current, err := legacyKeypair(l.Identity)
	if err != nil {
		return nil, err
	}
	previous := make([]model.KeypairRecord, 0, len(l.RetiredKeys))
	for _, k := range l.RetiredKeys {
		rec, err := legacyKeypair(k)
		if err != nil {
			return nil, err
		}
		previous = append(previous, rec)
	}

	history := make([]model.RotationRecord, 0, len(l.Rotations))
	seen := make(map[string]struct{}, len(l.Rotations))
	for _, r := range l.Rotations {
		rec := legacyRotation(r)
		if _, dup := seen[rec.RotationID]; dup {
			continue
		}
		seen[rec.RotationID] = struct{}{}
		history = append(history, rec)
	}
	SortHistory(history)

	ks := &model.Keystore{
		SchemaVersion:    CurrentSchemaVersion,
		UserID:           l.UserID,
		DeviceID:         l.DeviceID,
		DeviceCreatedAt:  l.CreatedAt,
		CurrentKeypair:   current,
		RotationHistory:  history,
		SyncHistory:      []model.SyncRecord{},
		Salt:             append([]byte(nil), l.Salt...),
		KDF:              DefaultKDF(),
		VaultSettings:    DefaultVaultSettings(),
		LastSyncedAt:     l.LastSyncedAt,
		LastModified:     l.UpdatedAt,
		PreviousKeypairs: nil,
	}
	ks.PreviousKeypairs = NormalizePrevious(previous, current.PublicKey, history)
	if s := l.VaultSettings; s != nil {
		if s.IdleTimeoutSeconds > 0 {
			ks.VaultSettings.IdleTimeout = time.Duration(s.IdleTimeoutSeconds) * time.Second
		}
		ks.VaultSettings.LockOnSystemSleep = s.LockOnSleep
		ks.VaultSettings.LockOnScreenLock = s.LockOnScreenLock
	}
	if b := l.Biometric; b != nil {
		ks.BiometricProfile = &model.BiometricProfile{Enabled: b.Enabled, Provider: b.Provider}
	}

	out, _ := m.MigrateKeystore(ks)
	return out, nil
}

// MigrateKeystore backfills device metadata on a current-version keystore.
// It is idempotent: a complete keystore comes back equal and changed is false.
func (m *Migrator) MigrateKeystore(in *model.Keystore) (out *model.Keystore, changed bool) {
	out = in.Clone()
	if out.DeviceID == "" {
		if id, err := m.NewID(); err == nil {
			out.DeviceID = id
			changed = true
		}
	}
	if out.Platform == "" {
		out.Platform = m.GOOS
		changed = true
	}
	if out.DeviceName == "" {
		out.DeviceName = DeviceName(m.Hostname, out.Platform)
		changed = true
	}
	if out.DeviceCreatedAt.IsZero() {
		out.DeviceCreatedAt = m.Now().UTC()
		changed = true
	}
	if out.KDF.Algorithm == "" {
		out.KDF = DefaultKDF()
		changed = true
	}
	if out.VaultSettings.IdleTimeout <= 0 {
		out.VaultSettings.IdleTimeout = DefaultIdleTimeout
		changed = true
	}
	return out, changed
}

func legacyKeypair(k LegacyKey) (model.KeypairRecord, error) {
	c, err := DecodeContainer(k.Container)
	if err != nil {
		return model.KeypairRecord{}, err
	}
	return model.KeypairRecord{
		PublicKey:           k.PublicKey,
		EncryptedPrivateKey: c.Wrapped(),
		RotatedAt:           k.RotatedAt,
	}, nil
}

func legacyRotation(r LegacyRotation) model.RotationRecord {
	id := r.ID
	if id == "" {
		name := fmt.Sprintf("%s|%s|%s|%s", r.From, r.To, r.At.UTC().Format(time.RFC3339Nano), r.Reason)
		id = uuid.NewV5(legacyRotationNS, name).String()
	}
	success := r.To != ""
	if r.OK != nil {
		success = *r.OK && r.To != ""
	}
	return model.RotationRecord{
		RotationID:        id,
		Timestamp:         r.At,
		Reason:            r.Reason,
		DeviceID:          r.DeviceID,
		DeviceName:        r.DeviceName,
		PreviousPublicKey: r.From,
		NewPublicKey:      r.To,
		Success:           success,
	}
}

// DeviceName derives a human-readable device name from the host name and platform.
func DeviceName(hostname func() (string, error), platform string) string {
	label := PlatformLabel(platform)
	if hostname != nil {
		if h, err := hostname(); err == nil {
			if h = strings.TrimSpace(h); h != "" {
				if i := strings.IndexByte(h, '.'); i > 0 {
					h = h[:i]
				}
				return fmt.Sprintf("%s (%s)", h, label)
			}
		}
	}
	return fmt.Sprintf("Unknown device (%s)", label)
}

// PlatformLabel maps GOOS values to display names.
func PlatformLabel(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	case "android":
		return "Android"
	case "ios":
		return "iOS"
	case "":
		return "unknown"
	default:
		return goos
	}
}
