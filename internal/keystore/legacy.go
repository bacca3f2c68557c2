package keystore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

// LegacyKeystoreV1 is the schema written before device metadata and sync history existed.
type LegacyKeystoreV1 struct {
	Version       int              `json:"version"`
	UserID        string           `json:"user_id"`
	DeviceID      string           `json:"device_id,omitempty"`
	Identity      LegacyKey        `json:"identity"`
	RetiredKeys   []LegacyKey      `json:"retired_keys"`
	Rotations     []LegacyRotation `json:"rotations"`
	Salt          []byte           `json:"salt"`
	VaultSettings *LegacySettings  `json:"vault_settings,omitempty"`
	Biometric     *LegacyBiometric `json:"biometric,omitempty"`
	LastSyncedAt  time.Time        `json:"last_synced_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// LegacyKey is a v1 keypair; the private key sits in a polymorphic container.
type LegacyKey struct {
	PublicKey string          `json:"public_key"`
	Container json.RawMessage `json:"key_container"`
	RotatedAt time.Time       `json:"rotated_at"`
}

// LegacyRotation is a v1 rotation entry; id and ok were optional.
type LegacyRotation struct {
	ID         string    `json:"id,omitempty"`
	At         time.Time `json:"at"`
	Reason     string    `json:"reason"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OK         *bool     `json:"ok,omitempty"`
	DeviceID   string    `json:"device_id,omitempty"`
	DeviceName string    `json:"device_name,omitempty"`
}

// LegacySettings are v1 vault settings; idle timeout was stored in seconds.
type LegacySettings struct {
	IdleTimeoutSeconds int  `json:"idle_timeout_seconds"`
	LockOnSleep        bool `json:"lock_on_sleep"`
	LockOnScreenLock   bool `json:"lock_on_screen_lock"`
}

// LegacyBiometric is the v1 biometric flag.
type LegacyBiometric struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider"`
}

// Container kinds of the v1 key container union.
const (
	ContainerSealedV1 = "sealed-v1" // nonce||ciphertext in one field
	ContainerSplitV0  = "split-v0"  // nonce and ciphertext in separate fields
)

// KeyContainer is the tagged union of legacy private-key storage shapes.
type KeyContainer interface {
	// Wrapped returns the uniform nonce||ciphertext form.
	Wrapped() model.WrappedKey
	kind() string
}

// SealedContainer holds nonce||ciphertext.
type SealedContainer struct {
	Sealed []byte `json:"sealed"`
}

func (c SealedContainer) Wrapped() model.WrappedKey {
	return append(model.WrappedKey(nil), c.Sealed...)
}
func (SealedContainer) kind() string { return ContainerSealedV1 }

// SplitContainer holds the nonce and ciphertext separately.
type SplitContainer struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func (c SplitContainer) Wrapped() model.WrappedKey {
	out := make(model.WrappedKey, 0, len(c.Nonce)+len(c.Ciphertext))
	out = append(out, c.Nonce...)
	return append(out, c.Ciphertext...)
}
func (SplitContainer) kind() string { return ContainerSplitV0 }

// DecodeContainer resolves the union by its "kind" tag. Unknown tags are rejected.
func DecodeContainer(raw json.RawMessage) (KeyContainer, error) {
	var tag struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, errs.Validation("decode key container", fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, err))
	}
	switch tag.Kind {
	case ContainerSealedV1:
		var c SealedContainer
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.Validation("decode key container", fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, err))
		}
		return c, nil
	case ContainerSplitV0:
		var c SplitContainer
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, errs.Validation("decode key container", fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, err))
		}
		return c, nil
	default:
		return nil, errs.Validation("decode key container", fmt.Errorf("%w: container kind %q", errs.ErrUnsupportedFormat, tag.Kind))
	}
}

// EncodeContainer is the inverse of DecodeContainer.
func EncodeContainer(c KeyContainer) (json.RawMessage, error) {
	switch v := c.(type) {
	case SealedContainer:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			SealedContainer
		}{v.kind(), v})
	case SplitContainer:
		return json.Marshal(struct {
			Kind string `json:"kind"`
			SplitContainer
		}{v.kind(), v})
	default:
		return nil, fmt.Errorf("unknown container %T", c)
	}
}
