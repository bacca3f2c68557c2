package keystore

import (
	"fmt"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

// ValidateRotationChain checks that ids are unique, timestamps never decrease and
// every successful rotation names the key it produced.
func ValidateRotationChain(history []model.RotationRecord) error {
	const op = "validate rotation chain"
	seen := make(map[string]struct{}, len(history))
	for i, r := range history {
		if r.RotationID == "" {
			return errs.Integrity(op, fmt.Errorf("%w: rotation %d has no id", errs.ErrRotationChain, i))
		}
		if _, dup := seen[r.RotationID]; dup {
			return errs.Integrity(op, fmt.Errorf("%w: duplicate rotation id %s", errs.ErrRotationChain, r.RotationID))
		}
		seen[r.RotationID] = struct{}{}
		if i > 0 && r.Timestamp.Before(history[i-1].Timestamp) {
			return errs.Integrity(op, fmt.Errorf("%w: rotation %s is out of order", errs.ErrRotationChain, r.RotationID))
		}
		if r.Success && r.NewPublicKey == "" {
			return errs.Integrity(op, fmt.Errorf("%w: rotation %s has no new public key", errs.ErrRotationChain, r.RotationID))
		}
	}
	return nil
}

// Validate checks every structural invariant of a keystore.
func Validate(ks *model.Keystore) error {
	const op = "validate keystore"
	if ks == nil {
		return errs.Integrity(op, errs.ErrNoKeystore)
	}
	if ks.SchemaVersion != CurrentSchemaVersion {
		return errs.Validation(op, fmt.Errorf("%w: schema version %d", errs.ErrUnsupportedFormat, ks.SchemaVersion))
	}
	if ks.UserID == "" {
		return errs.Validation(op, fmt.Errorf("%w: empty user id", errs.ErrMalformedFile))
	}
	if ks.CurrentKeypair.PublicKey == "" || len(ks.CurrentKeypair.EncryptedPrivateKey) == 0 {
		return errs.Validation(op, fmt.Errorf("%w: missing current keypair", errs.ErrMalformedFile))
	}
	if err := ValidateRotationChain(ks.RotationHistory); err != nil {
		return err
	}
	if n := len(ks.PreviousKeypairs); n > model.MaxPreviousKeypairs {
		return errs.Integrity(op, fmt.Errorf("%w: %d previous keypairs", errs.ErrRotationChain, n))
	}
	seen := make(map[string]struct{}, len(ks.PreviousKeypairs))
	for i, k := range ks.PreviousKeypairs {
		if k.PublicKey == ks.CurrentKeypair.PublicKey {
			return errs.Integrity(op, fmt.Errorf("%w: current key listed as previous", errs.ErrRotationChain))
		}
		if _, dup := seen[k.PublicKey]; dup {
			return errs.Integrity(op, fmt.Errorf("%w: duplicate previous key %s", errs.ErrRotationChain, k.PublicKey))
		}
		seen[k.PublicKey] = struct{}{}
		if i > 0 && KeyTime(ks.RotationHistory, k).After(KeyTime(ks.RotationHistory, ks.PreviousKeypairs[i-1])) {
			return errs.Integrity(op, fmt.Errorf("%w: previous keypairs not newest-first", errs.ErrRotationChain))
		}
	}
	return nil
}
