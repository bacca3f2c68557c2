package vault

import (
	"time"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/exportfile"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/limiter"
	"github.com/and161185/keyvault/internal/model"
)

// Failure delay bounds applied to every failed unlock.
const (
	DefaultFailureDelayMin = 100 * time.Millisecond
	DefaultFailureDelayMax = 300 * time.Millisecond
)

// LockPolicy selects which security events lock the vault.
type LockPolicy struct {
	SystemSleep bool
	ScreenLock  bool
	WindowBlur  bool
	AppMinimize bool
}

// DefaultLockPolicy locks on sleep and screen lock only.
func DefaultLockPolicy() LockPolicy {
	return LockPolicy{SystemSleep: true, ScreenLock: true}
}

// Config holds the defaults used when a vault is created and the protocol tunables.
// Once a keystore exists its stored VaultSettings take precedence for idle timeout and lock policy.
type Config struct {
	IdleTimeout      time.Duration
	LockPolicy       LockPolicy
	KDF              crypto.KDFParams
	ExportIterations int
	MaxFutureSkew    time.Duration
	StaleAfter       time.Duration
	FailureDelayMin  time.Duration
	FailureDelayMax  time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:      keystore.DefaultIdleTimeout,
		LockPolicy:       DefaultLockPolicy(),
		ExportIterations: exportfile.DefaultIterations,
		MaxFutureSkew:    exportfile.DefaultMaxFutureSkew,
		StaleAfter:       exportfile.DefaultStaleAfter,
		FailureDelayMin:  DefaultFailureDelayMin,
		FailureDelayMax:  DefaultFailureDelayMax,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ExportIterations == 0 {
		c.ExportIterations = d.ExportIterations
	}
	if c.MaxFutureSkew <= 0 {
		c.MaxFutureSkew = d.MaxFutureSkew
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = d.StaleAfter
	}
	if c.FailureDelayMin <= 0 {
		c.FailureDelayMin = d.FailureDelayMin
	}
	if c.FailureDelayMax < c.FailureDelayMin {
		c.FailureDelayMax = c.FailureDelayMin
	}
	return c
}

func (c Config) settings() model.VaultSettings {
	return model.VaultSettings{
		IdleTimeout:       c.IdleTimeout,
		LockOnSystemSleep: c.LockPolicy.SystemSleep,
		LockOnScreenLock:  c.LockPolicy.ScreenLock,
		LockOnWindowBlur:  c.LockPolicy.WindowBlur,
		LockOnAppMinimize: c.LockPolicy.AppMinimize,
	}
}

func policyOf(s model.VaultSettings) LockPolicy {
	return LockPolicy{
		SystemSleep: s.LockOnSystemSleep,
		ScreenLock:  s.LockOnScreenLock,
		WindowBlur:  s.LockOnWindowBlur,
		AppMinimize: s.LockOnAppMinimize,
	}
}

// Option customises a Manager.
type Option func(*Manager)

// WithLimiter throttles failed unlocks.
func WithLimiter(l limiter.Limiter) Option { return func(m *Manager) { m.lim = l } }

// WithClock replaces time.Now for timestamps written to the keystore.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithMigrator sets the host environment used to fill device metadata on creation.
func WithMigrator(mg *keystore.Migrator) Option { return func(m *Manager) { m.migrator = mg } }

// WithExportPrimitives swaps the export protocol primitives.
func WithExportPrimitives(p exportfile.Primitives) Option {
	return func(m *Manager) { m.prims = p }
}
