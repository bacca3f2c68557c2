package keystore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
)

const legacyDoc = `{
  "version": 1,
  "user_id": "user-1",
  "identity": {
    "public_key": "pk-2",
    "key_container": {"kind": "sealed-v1", "sealed": "AQIDBAU="},
    "rotated_at": "2025-02-01T00:00:00Z"
  },
  "retired_keys": [
    {"public_key": "pk-1", "key_container": {"kind": "split-v0", "nonce": "AQI=", "ciphertext": "AwQ="}, "rotated_at": "2025-02-01T00:00:00Z"}
  ],
  "rotations": [
    {"at": "2025-02-01T00:00:00Z", "reason": "scheduled", "from": "pk-1", "to": "pk-2"}
  ],
  "salt": "c2FsdHNhbHRzYWx0c2FsdA==",
  "vault_settings": {"idle_timeout_seconds": 120, "lock_on_sleep": true, "lock_on_screen_lock": false},
  "biometric": {"enabled": true, "provider": "touchid"},
  "created_at": "2025-01-01T00:00:00Z",
  "updated_at": "2025-02-01T00:00:00Z"
}`

func TestDecode_MigratesV1(t *testing.T) {
	t.Parallel()

	ks, migrated, err := fixedMigrator().Decode([]byte(legacyDoc))
	require.NoError(t, err)
	require.True(t, migrated)

	require.Equal(t, CurrentSchemaVersion, ks.SchemaVersion)
	require.Equal(t, "user-1", ks.UserID)
	require.Equal(t, "dev-fixed", ks.DeviceID)
	require.Equal(t, "alpha (Linux)", ks.DeviceName)
	require.Equal(t, "linux", ks.Platform)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ks.DeviceCreatedAt)

	require.Equal(t, "pk-2", ks.CurrentKeypair.PublicKey)
	require.Equal(t, model.WrappedKey{1, 2, 3, 4, 5}, ks.CurrentKeypair.EncryptedPrivateKey)
	require.Len(t, ks.PreviousKeypairs, 1)
	require.Equal(t, model.WrappedKey{1, 2, 3, 4}, ks.PreviousKeypairs[0].EncryptedPrivateKey)

	require.Len(t, ks.RotationHistory, 1)
	r := ks.RotationHistory[0]
	require.NotEmpty(t, r.RotationID)
	require.True(t, r.Success)
	require.Equal(t, "pk-1", r.PreviousPublicKey)

	require.Equal(t, 2*time.Minute, ks.VaultSettings.IdleTimeout)
	require.True(t, ks.VaultSettings.LockOnSystemSleep)
	require.False(t, ks.VaultSettings.LockOnScreenLock)
	require.NotNil(t, ks.BiometricProfile)
	require.Equal(t, "touchid", ks.BiometricProfile.Provider)
	require.Equal(t, []byte("saltsaltsaltsalt"), ks.Salt)
	require.Equal(t, DefaultKDF(), ks.KDF)

	require.NoError(t, Validate(ks))
}

func TestDecode_LegacyRotationIDsAreDeterministic(t *testing.T) {
	t.Parallel()

	a, _, err := fixedMigrator().Decode([]byte(legacyDoc))
	require.NoError(t, err)
	b, _, err := noHostMigrator().Decode([]byte(legacyDoc))
	require.NoError(t, err)
	require.Equal(t, a.RotationHistory[0].RotationID, b.RotationHistory[0].RotationID)
	require.Equal(t, "Unknown device (macOS)", b.DeviceName)
}

func TestDecode_CurrentIsIdempotent(t *testing.T) {
	t.Parallel()

	m := fixedMigrator()
	ks, _, err := m.Decode([]byte(legacyDoc))
	require.NoError(t, err)

	raw, err := Encode(ks)
	require.NoError(t, err)

	again, migrated, err := m.Decode(raw)
	require.NoError(t, err)
	require.False(t, migrated)

	raw2, err := Encode(again)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(raw2))

	same, changed := m.MigrateKeystore(again)
	require.False(t, changed)
	require.Equal(t, again, same)
	require.NotSame(t, again, same)
}

func TestMigrateKeystore_BackfillsDevice(t *testing.T) {
	t.Parallel()

	in := &model.Keystore{SchemaVersion: CurrentSchemaVersion, UserID: "u"}
	out, changed := fixedMigrator().MigrateKeystore(in)
	require.True(t, changed)
	require.Equal(t, "dev-fixed", out.DeviceID)
	require.Equal(t, "alpha (Linux)", out.DeviceName)
	require.Equal(t, t0, out.DeviceCreatedAt)
	require.Equal(t, DefaultIdleTimeout, out.VaultSettings.IdleTimeout)
	require.Empty(t, in.DeviceID, "input must not be mutated")
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"future version": `{"schemaVersion": 9}`,
		"no version":     `{"user_id": "x"}`,
		"not json":       `{`,
		"unknown container": `{"version":1,"user_id":"u","identity":{"public_key":"p",
			"key_container":{"kind":"hsm-v9"}}}`,
	} {
		_, _, err := fixedMigrator().Decode([]byte(doc))
		require.Error(t, err, name)
		require.ErrorIs(t, err, errs.ErrUnsupportedFormat, name)
		require.Equal(t, errs.KindValidation, errs.KindOf(err), name)
	}
}

func TestContainer_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range []KeyContainer{
		SealedContainer{Sealed: []byte{9, 8, 7}},
		SplitContainer{Nonce: []byte{1}, Ciphertext: []byte{2, 3}},
	} {
		raw, err := EncodeContainer(c)
		require.NoError(t, err)

		var tag struct{ Kind string }
		require.NoError(t, json.Unmarshal(raw, &tag))
		require.Equal(t, c.kind(), tag.Kind)

		back, err := DecodeContainer(raw)
		require.NoError(t, err)
		require.Equal(t, c, back)
		require.Equal(t, c.Wrapped(), back.Wrapped())
	}
}

func TestEncode_RejectsOldVersion(t *testing.T) {
	t.Parallel()

	_, err := Encode(&model.Keystore{SchemaVersion: 1})
	require.ErrorIs(t, err, errs.ErrUnsupportedFormat)
}

func TestPlatformLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Windows", PlatformLabel("windows"))
	require.Equal(t, "freebsd", PlatformLabel("freebsd"))
	require.Equal(t, "box (Windows)", DeviceName(func() (string, error) { return " box ", nil }, "windows"))
}
