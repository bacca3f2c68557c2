// Package keystore defines the versioned on-disk keystore schema, its one-way migration
// from older versions, and the invariants every stored keystore satisfies.
package keystore

import (
	"encoding/json"
	"fmt"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

// CurrentSchemaVersion is the schema written by this build.
const CurrentSchemaVersion = 2

// KDFArgon2id names the vault key derivation.
const KDFArgon2id = "argon2id"

type versionHeader struct {
	SchemaVersion int `json:"schemaVersion"`
	Version       int `json:"version"`
}

// Decode parses a stored keystore of any supported version using the default migrator.
// migrated reports whether the document was upgraded and should be written back.
func Decode(raw []byte) (ks *model.Keystore, migrated bool, err error) {
	return DefaultMigrator().Decode(raw)
}

// Decode parses raw and migrates it to CurrentSchemaVersion.
func (m *Migrator) Decode(raw []byte) (*model.Keystore, bool, error) {
	var hdr versionHeader
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return nil, false, errs.Validation("decode keystore", fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, err))
	}
	switch {
	case hdr.SchemaVersion == CurrentSchemaVersion:
		var ks model.Keystore
		if err := json.Unmarshal(raw, &ks); err != nil {
			return nil, false, errs.Validation("decode keystore", fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, err))
		}
		out, changed := m.MigrateKeystore(&ks)
		return out, changed, nil
	case hdr.SchemaVersion == 0 && hdr.Version == 1:
		var legacy LegacyKeystoreV1
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, false, errs.Validation("decode keystore", fmt.Errorf("%w: %v", errs.ErrUnsupportedFormat, err))
		}
		ks, err := m.MigrateV1(&legacy)
		if err != nil {
			return nil, false, err
		}
		return ks, true, nil
	default:
		return nil, false, errs.Validation("decode keystore",
			fmt.Errorf("%w: schema version %d", errs.ErrUnsupportedFormat, max(hdr.SchemaVersion, hdr.Version)))
	}
}

// Encode serializes a current-version keystore.
func Encode(ks *model.Keystore) ([]byte, error) {
	if ks.SchemaVersion != CurrentSchemaVersion {
		return nil, errs.Validation("encode keystore", fmt.Errorf("%w: schema version %d", errs.ErrUnsupportedFormat, ks.SchemaVersion))
	}
	return json.MarshalIndent(ks, "", "  ")
}
