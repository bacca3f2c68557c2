package exportfile

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/crypto/clientcrypto"
	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
)

// Opened is a decrypted and authenticated payload. Close it to wipe the wrap key.
type Opened struct {
	Payload *model.ExportPayload

	wrapKey []byte
	wrapper KeyWrapper
}

// UnwrapKey returns the plaintext private key of a payload keypair. The caller wipes it.
func (o *Opened) UnwrapKey(rec model.KeypairRecord) ([]byte, error) {
	if o.wrapKey == nil {
		return nil, errs.State("unwrap imported key", errs.ErrLocked)
	}
	plain, err := o.wrapper.Unwrap(o.wrapKey, rec.EncryptedPrivateKey)
	if err != nil {
		return nil, errs.Authentication("unwrap imported key", errs.ErrWrongPasswordOrCorrupt)
	}
	return plain, nil
}

// Close wipes the wrap key. It is safe to call more than once.
func (o *Opened) Close() {
	crypto.Wipe(o.wrapKey)
	o.wrapKey = nil
}

type rawFile struct {
	salt, iv, tag, ct []byte
}

// checkFormat is import step 1.
func checkFormat(f *model.EncryptedExportFile) (*rawFile, error) {
	const op = "import: parse"
	if f == nil {
		return nil, errs.Validation(op, errs.ErrMalformedFile)
	}
	if f.Format != Format || f.EncryptionAlgorithm != EncryptionAlgorithm || f.KDFAlgorithm != KDFAlgorithm {
		return nil, errs.Validation(op, fmt.Errorf("%w: %s/%s/%s", errs.ErrUnsupportedFormat,
			f.Format, f.EncryptionAlgorithm, f.KDFAlgorithm))
	}
	if f.KDFIterations < MinIterations || f.KDFIterations > MaxIterations {
		return nil, errs.Validation(op, fmt.Errorf("%w: %d iterations", errs.ErrUnsupportedFormat, f.KDFIterations))
	}
	var r rawFile
	for _, fld := range []struct {
		name string
		src  string
		dst  *[]byte
	}{
		{"salt", f.Salt, &r.salt},
		{"iv", f.IV, &r.iv},
		{"authTag", f.AuthTag, &r.tag},
		{"ciphertext", f.Ciphertext, &r.ct},
	} {
		b, err := base64.StdEncoding.DecodeString(fld.src)
		if err != nil {
			return nil, errs.Validation(op, fmt.Errorf("%w: %s is not base64", errs.ErrMalformedFile, fld.name))
		}
		*fld.dst = b
	}
	if len(r.salt) < clientcrypto.ExportSalt || len(r.iv) != clientcrypto.GCMNonceLen ||
		len(r.tag) != clientcrypto.GCMTagLen || len(r.ct) == 0 {
		return nil, errs.Validation(op, fmt.Errorf("%w: bad field length", errs.ErrMalformedFile))
	}
	return &r, nil
}

// Open performs import steps 1 to 5: format check, decryption, signature,
// checksum and rotation-chain validation. Any failure leaves nothing behind.
func Open(f *model.EncryptedExportFile, password []byte, opts Options) (*Opened, error) {
	opts = opts.withDefaults()
	p := opts.Primitives

	raw, err := checkFormat(f)
	if err != nil {
		return nil, err
	}

	keys, err := deriveSubkeys(p, password, raw.salt, f.KDFIterations)
	if err != nil {
		return nil, err
	}
	keepWrap := false
	defer func() {
		crypto.Wipe(keys.encrypt)
		crypto.Wipe(keys.sign)
		if !keepWrap {
			crypto.Wipe(keys.wrap)
		}
	}()

	// step 2
	plain, err := p.AEAD.Open(keys.encrypt, raw.iv, raw.ct, raw.tag)
	if err != nil {
		return nil, errs.Authentication("import: decrypt", errs.ErrWrongPasswordOrCorrupt)
	}
	defer crypto.Wipe(plain)
	var payload model.ExportPayload
	if err := json.Unmarshal(plain, &payload); err != nil {
		return nil, errs.Validation("import: decode payload", errs.ErrMalformedFile)
	}
	if payload.Version != PayloadVersion {
		return nil, errs.Validation("import: decode payload",
			fmt.Errorf("%w: payload version %d", errs.ErrUnsupportedFormat, payload.Version))
	}

	// step 3
	signed, err := signedBytes(&payload)
	if err != nil {
		return nil, err
	}
	sig, err := base64.StdEncoding.DecodeString(payload.Signature)
	if err != nil || !p.MAC.Verify(keys.sign, signed, sig) {
		return nil, errs.Authentication("import: verify signature", errs.ErrSignatureMismatch)
	}

	// step 4
	sum, err := checksumBytes(&payload)
	if err != nil {
		return nil, err
	}
	if got := p.Hash.Digest(sum); subtle.ConstantTimeCompare([]byte(got), []byte(payload.Checksum)) != 1 {
		return nil, errs.Authentication("import: verify checksum", errs.ErrChecksumMismatch)
	}

	// step 5
	if err := keystore.ValidateRotationChain(payload.RotationHistory); err != nil {
		return nil, err
	}
	if payload.UserID == "" || payload.EncryptedCurrentKeypair.PublicKey == "" {
		return nil, errs.Validation("import: decode payload", fmt.Errorf("%w: incomplete payload", errs.ErrMalformedFile))
	}

	keepWrap = true
	return &Opened{Payload: &payload, wrapKey: keys.wrap, wrapper: p.Wrap}, nil
}

// Verify performs import steps 6 to 9 against the local keystore.
func Verify(local *model.Keystore, p *model.ExportPayload, opts Options) error {
	opts = opts.withDefaults()

	// step 6
	if local == nil {
		return errs.Integrity("import: local keystore", errs.ErrNoKeystore)
	}
	if local.UserID != p.UserID {
		return errs.Integrity("import: user", errs.ErrUserMismatch)
	}

	// step 7
	imported := make(map[string]struct{}, len(p.RotationHistory))
	for _, r := range p.RotationHistory {
		imported[r.RotationID] = struct{}{}
	}
	missing := 0
	for _, r := range local.RotationHistory {
		if _, ok := imported[r.RotationID]; !ok {
			missing++
		}
	}
	if missing > 0 {
		return errs.Integrity("import: downgrade check",
			fmt.Errorf("%w: %d local rotations missing from import", errs.ErrDowngrade, missing))
	}

	// step 8
	for _, s := range local.SyncHistory {
		if s.Signature != "" && s.Signature == p.Signature {
			return errs.Integrity("import: replay check", errs.ErrReplay)
		}
	}

	// step 9
	now := opts.Now()
	if p.ExportedAt.After(now.Add(opts.MaxFutureSkew)) {
		return errs.Integrity("import: time check",
			fmt.Errorf("%w: exported %s ahead", errs.ErrFutureExport, p.ExportedAt.Sub(now).Round(time.Second)))
	}
	if age := now.Sub(p.ExportedAt); age > opts.StaleAfter {
		opts.Log.Warn("importing old export",
			zap.String("source_device", p.SourceDeviceName),
			zap.Time("exported_at", p.ExportedAt),
			zap.Duration("age", age))
	}
	return nil
}
