package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func sample() *model.Keystore {
	t0 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return &model.Keystore{
		SchemaVersion:   keystore.CurrentSchemaVersion,
		UserID:          "user-1",
		DeviceID:        "dev-1",
		DeviceName:      "alpha (Linux)",
		Platform:        "linux",
		DeviceCreatedAt: t0,
		CurrentKeypair:  model.KeypairRecord{PublicKey: "pk-1", EncryptedPrivateKey: model.WrappedKey("wrapped"), RotatedAt: t0},
		Salt:            []byte("0123456789abcdef"),
		KDF:             keystore.DefaultKDF(),
		VaultSettings:   keystore.DefaultVaultSettings(),
	}
}

func encoded(t *testing.T, ks *model.Keystore) []byte {
	t.Helper()
	raw, err := keystore.Encode(ks)
	require.NoError(t, err)
	return raw
}

func TestKeystoreRepo_Get_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(encoded(t, sample())))

	ks, err := r.Get(context.Background(), "default")
	require.NoError(t, err)
	require.Equal(t, "pk-1", ks.CurrentKeypair.PublicKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

// captureDoc matches any []byte argument and keeps it.
type captureDoc struct{ doc *[]byte }

func (c captureDoc) Match(v any) bool {
	b, ok := v.([]byte)
	if ok {
		*c.doc = b
	}
	return ok
}

func TestKeystoreRepo_Get_PersistsMigration(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	legacy := []byte(`{"version":1,"user_id":"user-1",
	  "identity":{"public_key":"pk-1","key_container":{"kind":"split-v0","nonce":"AQI=","ciphertext":"AwQ="}},
	  "salt":"MDEyMzQ1Njc4OWFiY2RlZg=="}`)
	var written []byte

	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(legacy))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1 FOR UPDATE`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(legacy))
	mock.ExpectExec(`UPDATE keystores SET`).
		WithArgs("default", "user-1", keystore.CurrentSchemaVersion, captureDoc{&written}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	first, err := r.Get(context.Background(), "default")
	require.NoError(t, err)
	require.NotEmpty(t, first.DeviceID)
	require.NoError(t, mock.ExpectationsWereMet())

	stored, migrated, err := keystore.Decode(written)
	require.NoError(t, err)
	require.False(t, migrated)
	require.Equal(t, first.DeviceID, stored.DeviceID)

	// the upgraded document reads back without another write
	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(written))
	second, err := r.Get(context.Background(), "default")
	require.NoError(t, err)
	require.Equal(t, first.DeviceID, second.DeviceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreRepo_Get_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	mock.ExpectQuery(`SELECT document FROM keystores`).
		WithArgs("default").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Get(context.Background(), "default")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestKeystoreRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)
	ks := sample()

	mock.ExpectExec(`INSERT INTO keystores \(vault_id, user_id, schema_version, document\)`).
		WithArgs("default", "user-1", keystore.CurrentSchemaVersion, encoded(t, ks)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(context.Background(), "default", ks))

	mock.ExpectExec(`INSERT INTO keystores`).
		WithArgs("default", "user-1", keystore.CurrentSchemaVersion, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(context.Background(), "default", ks), errs.ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreRepo_Create_Invalid(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	ks := sample()
	ks.CurrentKeypair = model.KeypairRecord{}
	err := r.Create(context.Background(), "default", ks)
	require.Equal(t, errs.KindValidation, errs.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreRepo_Update_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1 FOR UPDATE`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(encoded(t, sample())))
	want := sample()
	want.DeviceName = "renamed"
	mock.ExpectExec(`UPDATE keystores SET user_id=\$2, schema_version=\$3, document=\$4, updated_at=now\(\)`).
		WithArgs("default", "user-1", keystore.CurrentSchemaVersion, encoded(t, want)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	out, err := r.Update(context.Background(), "default", func(ks *model.Keystore) (*model.Keystore, error) {
		ks.DeviceName = "renamed"
		return ks, nil
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", out.DeviceName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreRepo_Update_UserIDImmutable(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1 FOR UPDATE`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(encoded(t, sample())))
	mock.ExpectRollback()

	_, err := r.Update(context.Background(), "default", func(ks *model.Keystore) (*model.Keystore, error) {
		ks.UserID = "intruder"
		return ks, nil
	})
	require.ErrorIs(t, err, errs.ErrUserIDImmutable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreRepo_Update_FnErrorRollsBack(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1 FOR UPDATE`).
		WithArgs("default").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(encoded(t, sample())))
	mock.ExpectRollback()

	_, err := r.Update(context.Background(), "default", func(*model.Keystore) (*model.Keystore, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeystoreRepo_Update_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewKeystoreRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT document FROM keystores WHERE vault_id=\$1 FOR UPDATE`).
		WithArgs("default").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := r.Update(context.Background(), "default", func(ks *model.Keystore) (*model.Keystore, error) { return ks, nil })
	require.ErrorIs(t, err, errs.ErrNotFound)
}
