// Package config loads keyvault settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/exportfile"
	"github.com/and161185/keyvault/internal/limiter"
	"github.com/and161185/keyvault/internal/vault"
)

// Config is the file and flag configuration shared by keyvault and keyvaultd.
type Config struct {
	VaultID     string        `yaml:"vault_id"`
	StoreDir    string        `yaml:"store_dir"`
	DSN         string        `yaml:"dsn"` // when set, Postgres store and limiter are used
	Socket      string        `yaml:"socket"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	LockOn      LockOn        `yaml:"lock_on"`
	KDF         KDF           `yaml:"kdf"`
	Export      Export        `yaml:"export"`
	Limiter     Limiter       `yaml:"limiter"`
	LogLevel    string        `yaml:"log_level"`
}

// LockOn mirrors vault.LockPolicy.
type LockOn struct {
	SystemSleep bool `yaml:"system_sleep"`
	ScreenLock  bool `yaml:"screen_lock"`
	WindowBlur  bool `yaml:"window_blur"`
	AppMinimize bool `yaml:"app_minimize"`
}

// KDF holds Argon2id cost for new vaults and password changes.
type KDF struct {
	ArgonTime     uint32 `yaml:"argon_time"`
	ArgonMemoryKB uint32 `yaml:"argon_memory_kb"`
	ArgonThreads  uint8  `yaml:"argon_threads"`
}

// Export tunes the export protocol.
type Export struct {
	Iterations    int           `yaml:"iterations"`
	MaxFutureSkew time.Duration `yaml:"max_future_skew"`
	StaleAfter    time.Duration `yaml:"stale_after"`
}

// Limiter tunes unlock throttling.
type Limiter struct {
	MaxFailures int           `yaml:"max_failures"`
	Window      time.Duration `yaml:"window"`
	BlockFor    time.Duration `yaml:"block_for"`
}

// Dir is the per-user configuration directory.
func Dir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "keyvault")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keyvault")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string { return filepath.Join(Dir(), "config.yaml") }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		VaultID:     "default",
		StoreDir:    filepath.Join(Dir(), "store"),
		Socket:      filepath.Join(Dir(), "keyvaultd.sock"),
		IdleTimeout: 5 * time.Minute,
		LockOn:      LockOn{SystemSleep: true, ScreenLock: true},
		KDF: KDF{
			ArgonTime:     crypto.ArgonTime,
			ArgonMemoryKB: crypto.ArgonMemory,
			ArgonThreads:  crypto.ArgonThreads,
		},
		Export: Export{
			Iterations:    exportfile.DefaultIterations,
			MaxFutureSkew: exportfile.DefaultMaxFutureSkew,
			StaleAfter:    exportfile.DefaultStaleAfter,
		},
		Limiter: Limiter{
			MaxFailures: limiter.DefaultMaxFailures,
			Window:      limiter.DefaultWindow,
			BlockFor:    limiter.DefaultMaxBlock,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults; an empty
// path means DefaultPath. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.StoreDir = expandHome(cfg.StoreDir)
	cfg.Socket = expandHome(cfg.Socket)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML with owner-only permissions.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate rejects settings the vault cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.VaultID == "" {
		problems = append(problems, "vault_id is required")
	}
	if c.DSN == "" && c.StoreDir == "" {
		problems = append(problems, "store_dir or dsn is required")
	}
	if c.IdleTimeout <= 0 {
		problems = append(problems, "idle_timeout must be positive")
	}
	if c.Export.Iterations < exportfile.MinIterations || c.Export.Iterations > exportfile.MaxIterations {
		problems = append(problems, fmt.Sprintf("export.iterations must be within [%d, %d]",
			exportfile.MinIterations, exportfile.MaxIterations))
	}
	if c.Export.MaxFutureSkew < 0 || c.Export.StaleAfter < 0 {
		problems = append(problems, "export durations must not be negative")
	}
	if c.KDF.ArgonTime == 0 || c.KDF.ArgonMemoryKB < 8*1024 || c.KDF.ArgonThreads == 0 {
		problems = append(problems, "kdf: argon_time and argon_threads must be positive and argon_memory_kb at least 8192")
	}
	if c.Limiter.MaxFailures <= 0 || c.Limiter.Window <= 0 || c.Limiter.BlockFor <= 0 {
		problems = append(problems, "limiter values must be positive")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, "log_level: "+err.Error())
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Vault converts the file settings into the vault manager configuration.
func (c *Config) Vault() vault.Config {
	vc := vault.DefaultConfig()
	vc.IdleTimeout = c.IdleTimeout
	vc.LockPolicy = vault.LockPolicy{
		SystemSleep: c.LockOn.SystemSleep,
		ScreenLock:  c.LockOn.ScreenLock,
		WindowBlur:  c.LockOn.WindowBlur,
		AppMinimize: c.LockOn.AppMinimize,
	}
	vc.KDF = crypto.KDFParams{Time: c.KDF.ArgonTime, MemoryKB: c.KDF.ArgonMemoryKB, Threads: c.KDF.ArgonThreads}
	vc.ExportIterations = c.Export.Iterations
	vc.MaxFutureSkew = c.Export.MaxFutureSkew
	vc.StaleAfter = c.Export.StaleAfter
	return vc
}

// Logger builds a production zap logger at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
