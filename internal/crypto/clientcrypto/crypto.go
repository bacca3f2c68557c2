// Package clientcrypto contains the primitives for key wrapping and the export file format.
package clientcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// Params
const (
	KeyLen       = 32
	MasterLen    = 64
	GCMNonceLen  = 12
	GCMTagLen    = 16
	ExportSalt   = 16
	MinPBKDF2Its = 100_000
)

// HKDF contexts for export sub-keys. Each purpose gets its own key.
const (
	ContextEncrypt = "keyvault/export/v1/encrypt"
	ContextSign    = "keyvault/export/v1/sign"
	ContextWrap    = "keyvault/export/v1/wrap"
)

var (
	ErrShort = errors.New("ciphertext too short")
	ErrOpen  = errors.New("message authentication failed")
)

func Rand(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// WrapKey encrypts key with kek using XChaCha20-Poly1305 and a random nonce prefix.
func WrapKey(kek, key []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return nil, err
	}
	nonce, err := Rand(chacha20poly1305.NonceSizeX)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(key)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, key, nil)...)
	return out, nil
}

// UnwrapKey decrypts a blob produced by WrapKey.
func UnwrapKey(kek, wrapped []byte) ([]byte, error) {
	if len(wrapped) < chacha20poly1305.NonceSizeX {
		return nil, ErrShort
	}
	aead, err := chacha20poly1305.NewX(kek)
	if err != nil {
		return nil, err
	}
	nonce := wrapped[:chacha20poly1305.NonceSizeX]
	ct := wrapped[chacha20poly1305.NonceSizeX:]
	out, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, ErrOpen
	}
	return out, nil
}

// DeriveExportMaster stretches an export password with PBKDF2-SHA512.
func DeriveExportMaster(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, MasterLen, sha512.New)
}

// DeriveSubkey expands master into a purpose-bound key via HKDF-SHA512.
func DeriveSubkey(master []byte, context string) ([]byte, error) {
	r := hkdf.New(sha512.New, master, nil, []byte(context))
	key := make([]byte, KeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// SealGCM encrypts with AES-256-GCM and returns ciphertext and tag separately.
func SealGCM(key, iv, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	if len(iv) != aead.NonceSize() {
		return nil, nil, ErrShort
	}
	sealed := aead.Seal(nil, iv, plaintext, nil)
	cut := len(sealed) - aead.Overhead()
	return sealed[:cut], sealed[cut:], nil
}

// OpenGCM reverses SealGCM.
func OpenGCM(key, iv, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aead.NonceSize() || len(tag) != aead.Overhead() {
		return nil, ErrShort
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	out, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrOpen
	}
	return out, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Sign returns HMAC-SHA512(key, data).
func Sign(key, data []byte) []byte {
	m := hmac.New(sha512.New, key)
	m.Write(data)
	return m.Sum(nil)
}

// Verify checks an HMAC-SHA512 tag in constant time.
func Verify(key, data, sig []byte) bool {
	return hmac.Equal(Sign(key, data), sig)
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
