package vault

import (
	"crypto/ed25519"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/and161185/keyvault/internal/errs"
)

// KeypairHandle gives access to the unlocked private key without exposing its bytes.
// It stops working once the vault locks or rotates away from this key.
type KeypairHandle struct {
	publicKey string

	mu  sync.RWMutex
	buf *memguard.LockedBuffer
}

func newHandle(publicKey string, priv []byte) *KeypairHandle {
	// NewBufferFromBytes wipes priv.
	return &KeypairHandle{publicKey: publicKey, buf: memguard.NewBufferFromBytes(priv)}
}

// PublicKey is the base64 Ed25519 public key.
func (h *KeypairHandle) PublicKey() string { return h.publicKey }

// Valid reports whether the private key is still held.
func (h *KeypairHandle) Valid() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf != nil && h.buf.IsAlive()
}

// Sign signs msg with the private key.
func (h *KeypairHandle) Sign(msg []byte) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.buf == nil || !h.buf.IsAlive() {
		return nil, errs.State("sign", errs.ErrLocked)
	}
	return ed25519.Sign(ed25519.PrivateKey(h.buf.Bytes()), msg), nil
}

func (h *KeypairHandle) destroy() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.buf != nil {
		h.buf.Destroy()
		h.buf = nil
	}
}
