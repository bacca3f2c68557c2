// Package model defines domain entities used by the vault, the sync protocol and repositories.
package model

import "time"

// MaxPreviousKeypairs bounds the retired keypair set kept per keystore.
const MaxPreviousKeypairs = 10

// WrappedKey is an opaque AEAD blob (nonce||ciphertext) holding a private key.
type WrappedKey []byte

// KeypairRecord is an identity keypair whose private half is only stored wrapped.
type KeypairRecord struct {
	PublicKey           string     `json:"publicKey"` // base64 of the Ed25519 public key
	EncryptedPrivateKey WrappedKey `json:"encryptedPrivateKey"`
	RotatedAt           time.Time  `json:"rotatedAt"`
}

// IsZero reports whether the record is empty.
func (k KeypairRecord) IsZero() bool { return k.PublicKey == "" && len(k.EncryptedPrivateKey) == 0 }

// RotationRecord is an immutable entry of the rotation history.
type RotationRecord struct {
	RotationID        string    `json:"rotationId"`
	Timestamp         time.Time `json:"timestamp"`
	Reason            string    `json:"reason"`
	DeviceID          string    `json:"deviceId"`
	DeviceName        string    `json:"deviceName"`
	PreviousPublicKey string    `json:"previousPublicKey"`
	NewPublicKey      string    `json:"newPublicKey"`
	Success           bool      `json:"success"`
}

// SyncRecord is a local audit entry for an applied import. Never exported.
type SyncRecord struct {
	SyncID            string    `json:"syncId"`
	Timestamp         time.Time `json:"timestamp"`
	SourceDeviceID    string    `json:"sourceDeviceId"`
	SourceDeviceName  string    `json:"sourceDeviceName"`
	SyncType          string    `json:"syncType"`
	KeypairsUpdated   int       `json:"keypairsUpdated"`
	KeypairsMerged    int       `json:"keypairsMerged"`
	RotationsAdded    int       `json:"rotationsAdded"`
	ConflictsResolved int       `json:"conflictsResolved"`
	Signature         string    `json:"signature"`
}

// KDFParams are the Argon2id parameters used to derive the vault key from the password.
type KDFParams struct {
	Algorithm string `json:"algorithm"`
	Time      uint32 `json:"time"`
	MemoryKB  uint32 `json:"memoryKb"`
	Threads   uint8  `json:"threads"`
}

// BiometricProfile references platform biometric enrolment. Device-local.
type BiometricProfile struct {
	Enabled    bool      `json:"enabled"`
	Provider   string    `json:"provider"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// VaultSettings are device-local lifecycle preferences.
type VaultSettings struct {
	IdleTimeout       time.Duration `json:"idleTimeout"`
	LockOnSystemSleep bool          `json:"lockOnSystemSleep"`
	LockOnScreenLock  bool          `json:"lockOnScreenLock"`
	LockOnWindowBlur  bool          `json:"lockOnWindowBlur"`
	LockOnAppMinimize bool          `json:"lockOnAppMinimize"`
}

// Keystore is the persisted per-device record of a user's identity keys.
type Keystore struct {
	SchemaVersion int    `json:"schemaVersion"`
	UserID        string `json:"userId"`

	// device-local, never exported
	DeviceID        string    `json:"deviceId"`
	DeviceName      string    `json:"deviceName"`
	Platform        string    `json:"platform"`
	DeviceCreatedAt time.Time `json:"deviceCreatedAt"`

	CurrentKeypair   KeypairRecord    `json:"currentKeypair"`
	PreviousKeypairs []KeypairRecord  `json:"previousKeypairs"`
	RotationHistory  []RotationRecord `json:"rotationHistory"`
	SyncHistory      []SyncRecord     `json:"syncHistory"`

	// device-local secrets and settings, never exported
	Salt             []byte            `json:"salt"`
	KDF              KDFParams         `json:"kdf"`
	BiometricProfile *BiometricProfile `json:"biometricProfile,omitempty"`
	VaultSettings    VaultSettings     `json:"vaultSettings"`

	LastSyncedAt time.Time `json:"lastSyncedAt"`
	LastModified time.Time `json:"lastModified"`
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (k *Keystore) Clone() *Keystore {
	if k == nil {
		return nil
	}
	out := *k
	out.CurrentKeypair = k.CurrentKeypair.clone()
	out.PreviousKeypairs = cloneKeypairs(k.PreviousKeypairs)
	out.RotationHistory = cloneSlice(k.RotationHistory)
	out.SyncHistory = cloneSlice(k.SyncHistory)
	out.Salt = cloneSlice(k.Salt)
	if k.BiometricProfile != nil {
		bp := *k.BiometricProfile
		out.BiometricProfile = &bp
	}
	return &out
}

func (k KeypairRecord) clone() KeypairRecord {
	k.EncryptedPrivateKey = cloneSlice(k.EncryptedPrivateKey)
	return k
}

func cloneSlice[S ~[]E, E any](in S) S {
	if in == nil {
		return nil
	}
	return append(make(S, 0, len(in)), in...)
}

func cloneKeypairs(in []KeypairRecord) []KeypairRecord {
	if in == nil {
		return nil
	}
	out := make([]KeypairRecord, len(in))
	for i := range in {
		out[i] = in[i].clone()
	}
	return out
}

// ExportPayload is the syncable subset of a keystore built for one transfer.
type ExportPayload struct {
	Version                   int              `json:"version"`
	UserID                    string           `json:"userId"`
	EncryptedCurrentKeypair   KeypairRecord    `json:"encryptedCurrentKeypair"`
	EncryptedPreviousKeypairs []KeypairRecord  `json:"encryptedPreviousKeypairs"`
	RotationHistory           []RotationRecord `json:"rotationHistory"`
	ExportedAt                time.Time        `json:"exportedAt"`
	SourceDeviceID            string           `json:"sourceDeviceId"`
	SourceDeviceName          string           `json:"sourceDeviceName"`
	Signature                 string           `json:"signature"`
	Checksum                  string           `json:"checksum"`
}

// EncryptedExportFile is the on-disk encoding of an ExportPayload.
type EncryptedExportFile struct {
	Format              string `json:"format"`
	EncryptionAlgorithm string `json:"encryptionAlgorithm"`
	KDFAlgorithm        string `json:"kdfAlgorithm"`
	KDFIterations       int    `json:"kdfIterations"`
	Salt                string `json:"salt"`
	IV                  string `json:"iv"`
	AuthTag             string `json:"authTag"`
	Ciphertext          string `json:"ciphertext"`
}
