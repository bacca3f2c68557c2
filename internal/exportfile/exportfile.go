// Package exportfile implements the password-protected identity export format:
// building and sealing a payload on one device, and opening and authenticating it on another.
package exportfile

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/crypto/clientcrypto"
	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/policy"
)

// File format identifiers.
const (
	Format              = "keystore-export-v1"
	EncryptionAlgorithm = "AES-256-GCM"
	KDFAlgorithm        = "PBKDF2-SHA512"
	PayloadVersion      = 1
)

// Protocol limits and defaults.
const (
	MinIterations        = clientcrypto.MinPBKDF2Its
	MaxIterations        = 10_000_000
	DefaultIterations    = 210_000
	DefaultMaxFutureSkew = 5 * time.Minute
	DefaultStaleAfter    = 30 * 24 * time.Hour
)

// Options tune Seal, Open and Verify. The zero value is usable.
type Options struct {
	Iterations    int
	MaxFutureSkew time.Duration
	StaleAfter    time.Duration
	Now           func() time.Time
	Primitives    Primitives
	Log           *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.MaxFutureSkew <= 0 {
		o.MaxFutureSkew = DefaultMaxFutureSkew
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = DefaultStaleAfter
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	o.Primitives = o.Primitives.withDefaults()
	return o
}

// UnwrapFunc returns the plaintext private key of a locally stored keypair.
// The caller of Seal owns the returned buffer only until Seal wipes it.
type UnwrapFunc func(rec model.KeypairRecord) ([]byte, error)

// subkeys are the purpose keys derived from one export password and salt.
type subkeys struct {
	encrypt, sign, wrap []byte
}

func (k *subkeys) wipe() {
	crypto.Wipe(k.encrypt)
	crypto.Wipe(k.sign)
	crypto.Wipe(k.wrap)
}

func deriveSubkeys(p Primitives, password, salt []byte, iterations int) (*subkeys, error) {
	master, err := p.KDF.DeriveKey(password, salt, iterations)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(master)

	var k subkeys
	for _, d := range []struct {
		dst *[]byte
		ctx string
	}{
		{&k.encrypt, clientcrypto.ContextEncrypt},
		{&k.sign, clientcrypto.ContextSign},
		{&k.wrap, clientcrypto.ContextWrap},
	} {
		if *d.dst, err = p.KDF.Subkey(master, d.ctx); err != nil {
			k.wipe()
			return nil, err
		}
	}
	return &k, nil
}

// Seal builds the export payload of ks and encrypts it under password.
// Only the syncable subset of ks is included; every private key is re-wrapped
// under a key derived from the export password.
func Seal(
	ks *model.Keystore, unwrap UnwrapFunc, password, confirm []byte, opts Options,
) (*model.EncryptedExportFile, *model.ExportPayload, error) {
	const op = "export"
	opts = opts.withDefaults()
	p := opts.Primitives

	matches, longEnough := policy.ValidateExportPassword(password, confirm)
	if !matches {
		return nil, nil, errs.Validation(op, errs.ErrPasswordMismatch)
	}
	if !longEnough {
		return nil, nil, errs.Validation(op, errs.ErrPasswordTooShort)
	}
	if opts.Iterations < MinIterations || opts.Iterations > MaxIterations {
		return nil, nil, errs.Validation(op, fmt.Errorf("%w: %d iterations", errs.ErrUnsupportedFormat, opts.Iterations))
	}
	if ks == nil {
		return nil, nil, errs.Integrity(op, errs.ErrNoKeystore)
	}

	salt, err := p.Rand(clientcrypto.ExportSalt)
	if err != nil {
		return nil, nil, err
	}
	iv, err := p.Rand(clientcrypto.GCMNonceLen)
	if err != nil {
		return nil, nil, err
	}
	keys, err := deriveSubkeys(p, password, salt, opts.Iterations)
	if err != nil {
		return nil, nil, err
	}
	defer keys.wipe()

	rewrap := func(rec model.KeypairRecord) (model.KeypairRecord, error) {
		plain, err := unwrap(rec)
		if err != nil {
			return model.KeypairRecord{}, err
		}
		defer crypto.Wipe(plain)
		w, err := p.Wrap.Wrap(keys.wrap, plain)
		if err != nil {
			return model.KeypairRecord{}, err
		}
		return model.KeypairRecord{PublicKey: rec.PublicKey, EncryptedPrivateKey: w, RotatedAt: rec.RotatedAt}, nil
	}

	payload := &model.ExportPayload{
		Version:                   PayloadVersion,
		UserID:                    ks.UserID,
		EncryptedPreviousKeypairs: make([]model.KeypairRecord, 0, len(ks.PreviousKeypairs)),
		RotationHistory:           append([]model.RotationRecord{}, ks.RotationHistory...),
		ExportedAt:                opts.Now().UTC().Truncate(time.Millisecond),
		SourceDeviceID:            ks.DeviceID,
		SourceDeviceName:          ks.DeviceName,
	}
	if payload.EncryptedCurrentKeypair, err = rewrap(ks.CurrentKeypair); err != nil {
		return nil, nil, err
	}
	for _, rec := range ks.PreviousKeypairs {
		w, err := rewrap(rec)
		if err != nil {
			return nil, nil, err
		}
		payload.EncryptedPreviousKeypairs = append(payload.EncryptedPreviousKeypairs, w)
	}

	signed, err := signedBytes(payload)
	if err != nil {
		return nil, nil, err
	}
	payload.Signature = base64.StdEncoding.EncodeToString(p.MAC.Sign(keys.sign, signed))
	sum, err := checksumBytes(payload)
	if err != nil {
		return nil, nil, err
	}
	payload.Checksum = p.Hash.Digest(sum)

	plain, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	defer crypto.Wipe(plain)
	ct, tag, err := p.AEAD.Seal(keys.encrypt, iv, plain)
	if err != nil {
		return nil, nil, err
	}

	b64 := base64.StdEncoding.EncodeToString
	file := &model.EncryptedExportFile{
		Format:              Format,
		EncryptionAlgorithm: EncryptionAlgorithm,
		KDFAlgorithm:        KDFAlgorithm,
		KDFIterations:       opts.Iterations,
		Salt:                b64(salt),
		IV:                  b64(iv),
		AuthTag:             b64(tag),
		Ciphertext:          b64(ct),
	}
	opts.Log.Info("export sealed",
		zap.String("user", ks.UserID),
		zap.String("current_public_key", ks.CurrentKeypair.PublicKey),
		zap.Int("previous", len(payload.EncryptedPreviousKeypairs)),
		zap.Int("rotations", len(payload.RotationHistory)),
		zap.Int("iterations", opts.Iterations))
	return file, payload, nil
}

type signedMetadata struct {
	UserID             string   `json:"userId"`
	SourceDeviceName   string   `json:"sourceDeviceName"`
	CurrentPublicKey   string   `json:"currentPublicKey"`
	PreviousPublicKeys []string `json:"previousPublicKeys"`
	Version            int      `json:"version"`
}

type signedFields struct {
	RotationHistory []model.RotationRecord `json:"rotationHistory"`
	Metadata        signedMetadata         `json:"metadata"`
	ExportedAt      time.Time              `json:"exportedAt"`
	SourceDeviceID  string                 `json:"sourceDeviceId"`
}

// signedBytes is the canonical serialization covered by the signature.
func signedBytes(p *model.ExportPayload) ([]byte, error) {
	prev := make([]string, 0, len(p.EncryptedPreviousKeypairs))
	for _, k := range p.EncryptedPreviousKeypairs {
		prev = append(prev, k.PublicKey)
	}
	history := p.RotationHistory
	if history == nil {
		history = []model.RotationRecord{}
	}
	return json.Marshal(signedFields{
		RotationHistory: history,
		Metadata: signedMetadata{
			UserID:             p.UserID,
			SourceDeviceName:   p.SourceDeviceName,
			CurrentPublicKey:   p.EncryptedCurrentKeypair.PublicKey,
			PreviousPublicKeys: prev,
			Version:            p.Version,
		},
		ExportedAt:     p.ExportedAt.UTC(),
		SourceDeviceID: p.SourceDeviceID,
	})
}

// checksumBytes serializes the payload without its signature and checksum.
func checksumBytes(p *model.ExportPayload) ([]byte, error) {
	return json.Marshal(struct {
		Version                   int                    `json:"version"`
		UserID                    string                 `json:"userId"`
		EncryptedCurrentKeypair   model.KeypairRecord    `json:"encryptedCurrentKeypair"`
		EncryptedPreviousKeypairs []model.KeypairRecord  `json:"encryptedPreviousKeypairs"`
		RotationHistory           []model.RotationRecord `json:"rotationHistory"`
		ExportedAt                time.Time              `json:"exportedAt"`
		SourceDeviceID            string                 `json:"sourceDeviceId"`
		SourceDeviceName          string                 `json:"sourceDeviceName"`
	}{
		p.Version, p.UserID, p.EncryptedCurrentKeypair, p.EncryptedPreviousKeypairs,
		p.RotationHistory, p.ExportedAt.UTC(), p.SourceDeviceID, p.SourceDeviceName,
	})
}
