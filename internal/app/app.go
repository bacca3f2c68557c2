// Package app wires a loaded configuration into a vault manager and its service.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/config"
	"github.com/and161185/keyvault/internal/limiter"
	"github.com/and161185/keyvault/internal/migrate"
	"github.com/and161185/keyvault/internal/repository"
	"github.com/and161185/keyvault/internal/repository/filestore"
	"github.com/and161185/keyvault/internal/repository/postgres"
	"github.com/and161185/keyvault/internal/service"
	"github.com/and161185/keyvault/internal/vault"
)

// Vault is one opened vault with everything it depends on.
type Vault struct {
	Manager *vault.Manager
	Service *service.VaultServiceImpl
	Backend string

	closers []func()
}

// Open picks the store from cfg: Postgres when a DSN is configured, the
// directory store otherwise. Postgres migrations run before the pool is used.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, opts ...service.Option) (*Vault, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Vault{}

	var (
		repo repository.KeystoreRepository
		lim  limiter.Limiter
	)
	if cfg.DSN != "" {
		if err := migrate.Up(ctx, cfg.DSN, log); err != nil {
			return nil, fmt.Errorf("migrate up: %w", err)
		}
		db, err := postgres.New(ctx, cfg.DSN, 0)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		v.closers = append(v.closers, db.Close)
		repo = postgres.NewKeystoreRepo(db)
		lim = limiter.NewPG(db.Pool, cfg.Limiter.Window, cfg.Limiter.MaxFailures, cfg.Limiter.BlockFor)
		v.Backend = "postgres"
	} else {
		st, err := filestore.New(cfg.StoreDir, log.Named("store"))
		if err != nil {
			return nil, err
		}
		repo = st
		lim = limiter.NewMemory(cfg.Limiter.Window, cfg.Limiter.MaxFailures, cfg.Limiter.BlockFor)
		v.Backend = "file"
	}

	v.Manager = vault.New(repo, cfg.VaultID, cfg.Vault(), log.Named("vault"), vault.WithLimiter(lim))
	v.Service = service.NewVaultService(v.Manager, log.Named("service"), opts...)
	return v, nil
}

// Close locks the vault and releases the store.
func (v *Vault) Close() {
	v.Service.Close()
	for i := len(v.closers) - 1; i >= 0; i-- {
		v.closers[i]()
	}
}
