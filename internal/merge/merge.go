// Package merge reconciles a local keystore with an authenticated import payload.
//
// Merge is pure: the same local keystore, payload and time always produce the same result.
package merge

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
)

// SyncTypeImport marks sync records written by an import.
const SyncTypeImport = "import"

var syncNS = uuid.Must(uuid.FromString("a3e7f2b4-1c5d-4e8f-9a60-7b2c3d4e5f61"))

// Stats summarises what a merge changed.
type Stats struct {
	KeypairsUpdated   int
	KeypairsMerged    int
	RotationsAdded    int
	ConflictsResolved int
	Conflicted        bool
}

// Merge returns a new keystore; local and in are not modified. Private keys in `in`
// must already be wrapped under the local vault key.
func Merge(local *model.Keystore, in *model.ExportPayload, now time.Time) (*model.Keystore, Stats) {
	var st Stats
	out := local.Clone()

	history := unionHistory(local.RotationHistory, in.RotationHistory)
	st.RotationsAdded = len(history) - len(unionHistory(local.RotationHistory, nil))

	current, demoted, updated, conflicted := resolveCurrent(local.CurrentKeypair, in.EncryptedCurrentKeypair, history, now)
	if updated {
		st.KeypairsUpdated = 1
	}
	if conflicted {
		st.Conflicted = true
		st.ConflictsResolved = 1
	}

	pool := make([]model.KeypairRecord, 0, len(local.PreviousKeypairs)+len(in.EncryptedPreviousKeypairs)+1)
	pool = append(pool, local.PreviousKeypairs...)
	pool = append(pool, in.EncryptedPreviousKeypairs...)
	if !demoted.IsZero() {
		pool = append(pool, demoted)
	}
	previous := cloneRecords(keystore.NormalizePrevious(pool, current.PublicKey, history))

	known := make(map[string]struct{}, len(local.PreviousKeypairs)+1)
	known[local.CurrentKeypair.PublicKey] = struct{}{}
	for _, k := range local.PreviousKeypairs {
		known[k.PublicKey] = struct{}{}
	}
	for _, k := range previous {
		if _, ok := known[k.PublicKey]; !ok {
			st.KeypairsMerged++
		}
	}

	out.CurrentKeypair = cloneRecord(current)
	out.PreviousKeypairs = previous
	out.RotationHistory = history
	out.SyncHistory = append(out.SyncHistory, model.SyncRecord{
		SyncID:            uuid.NewV5(syncNS, in.Signature).String(),
		Timestamp:         now,
		SourceDeviceID:    in.SourceDeviceID,
		SourceDeviceName:  in.SourceDeviceName,
		SyncType:          SyncTypeImport,
		KeypairsUpdated:   st.KeypairsUpdated,
		KeypairsMerged:    st.KeypairsMerged,
		RotationsAdded:    st.RotationsAdded,
		ConflictsResolved: st.ConflictsResolved,
		Signature:         in.Signature,
	})
	out.LastSyncedAt = now
	out.LastModified = now
	return out, st
}

// resolveCurrent picks the current keypair. When both keys were produced by a known
// rotation the later rotation wins and equal timestamps keep local; otherwise local is
// kept. The losing keypair is always returned for demotion.
func resolveCurrent(local, imported model.KeypairRecord, history []model.RotationRecord, now time.Time) (
	current, demoted model.KeypairRecord, updated, conflicted bool,
) {
	if local.PublicKey == imported.PublicKey || imported.PublicKey == "" {
		return local, model.KeypairRecord{}, false, false
	}
	lr, lok := keystore.FindRotationByNewKey(history, local.PublicKey)
	ir, iok := keystore.FindRotationByNewKey(history, imported.PublicKey)
	if lok && iok && ir.Timestamp.After(lr.Timestamp) {
		return imported, keystore.DemoteKeypair(local, now), true, true
	}
	return local, keystore.DemoteKeypair(imported, now), false, true
}

// unionHistory dedupes by rotation id, first occurrence wins, and sorts ascending.
func unionHistory(a, b []model.RotationRecord) []model.RotationRecord {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]model.RotationRecord, 0, len(a)+len(b))
	for _, src := range [][]model.RotationRecord{a, b} {
		for _, r := range src {
			if _, dup := seen[r.RotationID]; dup {
				continue
			}
			seen[r.RotationID] = struct{}{}
			out = append(out, r)
		}
	}
	keystore.SortHistory(out)
	return out
}

func cloneRecord(k model.KeypairRecord) model.KeypairRecord {
	k.EncryptedPrivateKey = append(model.WrappedKey(nil), k.EncryptedPrivateKey...)
	return k
}

func cloneRecords(in []model.KeypairRecord) []model.KeypairRecord {
	out := make([]model.KeypairRecord, len(in))
	for i := range in {
		out[i] = cloneRecord(in[i])
	}
	return out
}
