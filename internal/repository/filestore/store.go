// Package filestore keeps keystores as JSON documents on the local file system.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/repository"
)

const lockRetry = 25 * time.Millisecond

var vaultIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Store implements repository.KeystoreRepository in a directory.
// Writers are serialised by an in-process mutex and an flock on <vault>.lock.
type Store struct {
	dir      string
	migrator *keystore.Migrator
	log      *zap.Logger

	mu sync.Mutex
}

var _ repository.KeystoreRepository = (*Store)(nil)

// New creates dir (0700) if needed.
func New(dir string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, migrator: keystore.DefaultMigrator(), log: log}, nil
}

// WithMigrator replaces the migrator used when reading documents.
func (s *Store) WithMigrator(m *keystore.Migrator) *Store {
	s.migrator = m
	return s
}

// Path returns the document path of vaultID.
func (s *Store) Path(vaultID string) string {
	return filepath.Join(s.dir, vaultID+".keystore.json")
}

func (s *Store) lockPath(vaultID string) string {
	return filepath.Join(s.dir, vaultID+".lock")
}

func checkVaultID(vaultID string) error {
	if !vaultIDRe.MatchString(vaultID) {
		return errs.Validation("vault id", fmt.Errorf("%w: %q", errs.ErrMalformedFile, vaultID))
	}
	return nil
}

// Get reads and decodes the vault document. A document that needed migration is
// written back first so that backfilled device metadata is stable across reads.
func (s *Store) Get(ctx context.Context, vaultID string) (*model.Keystore, error) {
	if err := checkVaultID(vaultID); err != nil {
		return nil, err
	}
	ks, migrated, err := s.read(vaultID)
	if err != nil || !migrated {
		return ks, err
	}
	out, err := s.Update(ctx, vaultID, func(cur *model.Keystore) (*model.Keystore, error) { return cur, nil })
	if err != nil {
		s.log.Warn("persist migrated keystore", zap.String("vault", vaultID), zap.Error(err))
		return ks, nil
	}
	return out, nil
}

// Create writes the first document of a vault.
func (s *Store) Create(ctx context.Context, vaultID string, ks *model.Keystore) error {
	if err := checkVaultID(vaultID); err != nil {
		return err
	}
	if err := repository.CheckWrite(nil, ks); err != nil {
		return err
	}
	unlock, err := s.lock(ctx, vaultID)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := os.Stat(s.Path(vaultID)); err == nil {
		return errs.ErrAlreadyExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return s.write(vaultID, ks)
}

// Update reads, applies fn and writes back under the vault lock.
func (s *Store) Update(ctx context.Context, vaultID string, fn repository.UpdateFunc) (*model.Keystore, error) {
	if err := checkVaultID(vaultID); err != nil {
		return nil, err
	}
	unlock, err := s.lock(ctx, vaultID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cur, migrated, err := s.read(vaultID)
	if err != nil {
		return nil, err
	}
	if migrated {
		s.log.Info("keystore migrated", zap.String("vault", vaultID), zap.Int("schema", keystore.CurrentSchemaVersion))
	}
	next, err := fn(cur.Clone())
	if err != nil {
		return nil, err
	}
	if err := repository.CheckWrite(cur, next); err != nil {
		return nil, err
	}
	if err := s.write(vaultID, next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

func (s *Store) read(vaultID string) (*model.Keystore, bool, error) {
	raw, err := os.ReadFile(s.Path(vaultID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, errs.ErrNotFound
		}
		return nil, false, err
	}
	return s.migrator.Decode(raw)
}

func (s *Store) write(vaultID string, ks *model.Keystore) (err error) {
	raw, err := keystore.Encode(ks)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, vaultID+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(vaultID))
}

func (s *Store) lock(ctx context.Context, vaultID string) (func(), error) {
	s.mu.Lock()
	fl := flock.New(s.lockPath(vaultID))
	ok, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil || !ok {
		s.mu.Unlock()
		if err == nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("lock vault %s: %w", vaultID, err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.log.Warn("unlock vault file", zap.String("vault", vaultID), zap.Error(err))
		}
		s.mu.Unlock()
	}, nil
}
