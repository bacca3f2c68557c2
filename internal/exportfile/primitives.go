package exportfile

import (
	"github.com/and161185/keyvault/internal/crypto/clientcrypto"
)

// KeyDeriver stretches the export password and splits the result into purpose keys.
type KeyDeriver interface {
	DeriveKey(password, salt []byte, iterations int) ([]byte, error)
	Subkey(master []byte, context string) ([]byte, error)
}

// AEAD encrypts the payload with a detached tag.
type AEAD interface {
	Seal(key, iv, plaintext []byte) (ciphertext, tag []byte, err error)
	Open(key, iv, ciphertext, tag []byte) ([]byte, error)
}

// MAC signs the canonical payload fields.
type MAC interface {
	Sign(key, data []byte) []byte
	Verify(key, data, sig []byte) bool
}

// Hasher computes the payload checksum.
type Hasher interface {
	Digest(data []byte) string
}

// KeyWrapper protects individual private keys inside the payload.
type KeyWrapper interface {
	Wrap(key, secret []byte) ([]byte, error)
	Unwrap(key, wrapped []byte) ([]byte, error)
}

// Primitives bundles the collaborators the protocol is written against.
type Primitives struct {
	KDF  KeyDeriver
	AEAD AEAD
	MAC  MAC
	Hash Hasher
	Wrap KeyWrapper
	Rand func(n int) ([]byte, error)
}

// DefaultPrimitives are PBKDF2-SHA512 + HKDF-SHA512, AES-256-GCM, HMAC-SHA512, SHA-256
// and XChaCha20-Poly1305 key wrapping.
func DefaultPrimitives() Primitives {
	var s std
	return Primitives{KDF: s, AEAD: s, MAC: s, Hash: s, Wrap: s, Rand: clientcrypto.Rand}
}

func (p Primitives) withDefaults() Primitives {
	d := DefaultPrimitives()
	if p.KDF == nil {
		p.KDF = d.KDF
	}
	if p.AEAD == nil {
		p.AEAD = d.AEAD
	}
	if p.MAC == nil {
		p.MAC = d.MAC
	}
	if p.Hash == nil {
		p.Hash = d.Hash
	}
	if p.Wrap == nil {
		p.Wrap = d.Wrap
	}
	if p.Rand == nil {
		p.Rand = d.Rand
	}
	return p
}

type std struct{}

func (std) DeriveKey(password, salt []byte, iterations int) ([]byte, error) {
	return clientcrypto.DeriveExportMaster(password, salt, iterations), nil
}
func (std) Subkey(master []byte, context string) ([]byte, error) {
	return clientcrypto.DeriveSubkey(master, context)
}
func (std) Seal(key, iv, plaintext []byte) ([]byte, []byte, error) {
	return clientcrypto.SealGCM(key, iv, plaintext)
}
func (std) Open(key, iv, ciphertext, tag []byte) ([]byte, error) {
	return clientcrypto.OpenGCM(key, iv, ciphertext, tag)
}
func (std) Sign(key, data []byte) []byte { return clientcrypto.Sign(key, data) }
func (std) Verify(key, data, sig []byte) bool { return clientcrypto.Verify(key, data, sig) }
func (std) Digest(data []byte) string { return clientcrypto.Digest(data) }
func (std) Wrap(key, secret []byte) ([]byte, error) { return clientcrypto.WrapKey(key, secret) }
func (std) Unwrap(key, wrapped []byte) ([]byte, error) {
	return clientcrypto.UnwrapKey(key, wrapped)
}
