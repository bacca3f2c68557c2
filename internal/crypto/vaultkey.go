// Package crypto implements vault key derivation and secret-handling helpers.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id defaults for the vault key (tuned for interactive unlock).
const (
	ArgonTime    uint32 = 3         // iterations
	ArgonMemory  uint32 = 64 * 1024 // 64 MB
	ArgonThreads uint8  = 1
	KEKLen       uint32 = 32
	SaltLen             = 16
)

// KDFParams selects Argon2id cost. Zero fields fall back to the defaults.
type KDFParams struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
}

// Resolved fills zero fields with the defaults.
func (p KDFParams) Resolved() KDFParams {
	if p.Time == 0 {
		p.Time = ArgonTime
	}
	if p.MemoryKB == 0 {
		p.MemoryKB = ArgonMemory
	}
	if p.Threads == 0 {
		p.Threads = ArgonThreads
	}
	return p
}

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// DeriveVaultKEK returns the Argon2id key-encryption key for password and the device salt.
func DeriveVaultKEK(password, salt []byte, p KDFParams) []byte {
	p = p.Resolved()
	return argon2.IDKey(password, salt, p.Time, p.MemoryKB, p.Threads, KEKLen)
}

// Equal compares two secrets in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
