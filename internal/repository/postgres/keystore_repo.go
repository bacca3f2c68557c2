package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/repository"
)

// KeystoreRepo implements KeystoreRepository on the keystores table.
type KeystoreRepo struct {
	db       *DB
	migrator *keystore.Migrator
}

var _ repository.KeystoreRepository = (*KeystoreRepo)(nil)

// NewKeystoreRepo constructs a keystore repository.
func NewKeystoreRepo(db *DB) *KeystoreRepo {
	return &KeystoreRepo{db: db, migrator: keystore.DefaultMigrator()}
}

// Get selects and decodes the vault document. Documents of an older schema are
// migrated and written back in an Update transaction.
func (r *KeystoreRepo) Get(ctx context.Context, vaultID string) (*model.Keystore, error) {
	const q = `SELECT document FROM keystores WHERE vault_id=$1`
	var doc []byte
	if err := r.db.Pool.QueryRow(ctx, q, vaultID).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	ks, migrated, err := r.migrator.Decode(doc)
	if err != nil || !migrated {
		return ks, err
	}
	// Persist the upgrade; otherwise every read would backfill a fresh device id.
	return r.Update(ctx, vaultID, func(cur *model.Keystore) (*model.Keystore, error) { return cur, nil })
}

// Create inserts the first document of a vault.
func (r *KeystoreRepo) Create(ctx context.Context, vaultID string, ks *model.Keystore) error {
	if err := repository.CheckWrite(nil, ks); err != nil {
		return err
	}
	doc, err := keystore.Encode(ks)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO keystores (vault_id, user_id, schema_version, document)
VALUES ($1, $2, $3, $4)`
	_, err = r.db.Pool.Exec(ctx, q, vaultID, ks.UserID, ks.SchemaVersion, doc)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Update locks the row, applies fn and writes the whole document back in one transaction.
func (r *KeystoreRepo) Update(
	ctx context.Context, vaultID string, fn repository.UpdateFunc,
) (out *model.Keystore, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			out, err = nil, e
		}
	}()

	const sel = `SELECT document FROM keystores WHERE vault_id=$1 FOR UPDATE`
	const upd = `
UPDATE keystores SET user_id=$2, schema_version=$3, document=$4, updated_at=now()
WHERE vault_id=$1`

	var doc []byte
	if err = tx.QueryRow(ctx, sel, vaultID).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	cur, _, err := r.migrator.Decode(doc)
	if err != nil {
		return nil, err
	}
	next, err := fn(cur.Clone())
	if err != nil {
		return nil, err
	}
	if err = repository.CheckWrite(cur, next); err != nil {
		return nil, err
	}
	raw, err := keystore.Encode(next)
	if err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, upd, vaultID, next.UserID, next.SchemaVersion, raw); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}
