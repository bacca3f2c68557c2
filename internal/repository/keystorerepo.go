// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"fmt"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
)

// UpdateFunc receives a private copy of the stored keystore and returns the keystore to write.
// Returning an error aborts the update and leaves storage untouched.
type UpdateFunc func(current *model.Keystore) (*model.Keystore, error)

// KeystoreRepository stores one keystore document per vault.
type KeystoreRepository interface {
	// Get loads the keystore, migrating older schemas in memory. Missing vaults yield errs.ErrNotFound.
	Get(ctx context.Context, vaultID string) (*model.Keystore, error)
	// Create stores the first keystore of a vault. Existing vaults yield errs.ErrAlreadyExists.
	Create(ctx context.Context, vaultID string, ks *model.Keystore) error
	// Update runs fn as a read-modify-write critical section and returns what was written.
	Update(ctx context.Context, vaultID string, fn UpdateFunc) (*model.Keystore, error)
}

// CheckWrite validates next before it replaces prev (nil for creation).
func CheckWrite(prev, next *model.Keystore) error {
	if err := keystore.Validate(next); err != nil {
		return err
	}
	if prev != nil && prev.UserID != "" && prev.UserID != next.UserID {
		return errs.Integrity("write keystore", fmt.Errorf("%w: %s", errs.ErrUserIDImmutable, prev.UserID))
	}
	return nil
}
