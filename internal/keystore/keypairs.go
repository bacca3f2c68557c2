package keystore

import (
	"sort"
	"time"

	"github.com/and161185/keyvault/internal/model"
)

// SortHistory orders rotations ascending by timestamp, breaking ties by rotation id.
func SortHistory(h []model.RotationRecord) {
	sort.SliceStable(h, func(i, j int) bool {
		if !h[i].Timestamp.Equal(h[j].Timestamp) {
			return h[i].Timestamp.Before(h[j].Timestamp)
		}
		return h[i].RotationID < h[j].RotationID
	})
}

// FindRotationByNewKey returns the latest successful rotation that produced publicKey.
func FindRotationByNewKey(history []model.RotationRecord, publicKey string) (model.RotationRecord, bool) {
	var (
		found model.RotationRecord
		ok    bool
	)
	if publicKey == "" {
		return found, false
	}
	for _, r := range history {
		if !r.Success || r.NewPublicKey != publicKey {
			continue
		}
		if !ok || r.Timestamp.After(found.Timestamp) {
			found, ok = r, true
		}
	}
	return found, ok
}

// KeyTime is the time a keypair was produced: the timestamp of its rotation record,
// or the record's own RotatedAt when no rotation produced it.
func KeyTime(history []model.RotationRecord, k model.KeypairRecord) time.Time {
	if r, ok := FindRotationByNewKey(history, k.PublicKey); ok {
		return r.Timestamp
	}
	return k.RotatedAt
}

// DemoteKeypair stamps k as retired at `at` unless it already carries a retirement time.
func DemoteKeypair(k model.KeypairRecord, at time.Time) model.KeypairRecord {
	out := model.KeypairRecord{
		PublicKey:           k.PublicKey,
		EncryptedPrivateKey: append(model.WrappedKey(nil), k.EncryptedPrivateKey...),
		RotatedAt:           k.RotatedAt,
	}
	if out.RotatedAt.IsZero() {
		out.RotatedAt = at
	}
	return out
}

// NormalizePrevious dedupes by public key (first occurrence wins), drops currentPublicKey,
// orders newest-first by KeyTime and keeps at most model.MaxPreviousKeypairs.
func NormalizePrevious(in []model.KeypairRecord, currentPublicKey string, history []model.RotationRecord) []model.KeypairRecord {
	seen := make(map[string]struct{}, len(in))
	out := make([]model.KeypairRecord, 0, len(in))
	for _, k := range in {
		if k.PublicKey == "" || k.PublicKey == currentPublicKey {
			continue
		}
		if _, dup := seen[k.PublicKey]; dup {
			continue
		}
		seen[k.PublicKey] = struct{}{}
		out = append(out, k)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return KeyTime(history, out[i]).After(KeyTime(history, out[j]))
	})
	if len(out) > model.MaxPreviousKeypairs {
		out = out[:model.MaxPreviousKeypairs]
	}
	return out
}
