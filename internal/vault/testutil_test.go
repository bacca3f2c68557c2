package vault

import (
	"context"
	"crypto/ed25519"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/keyvault/internal/crypto"
	"github.com/and161185/keyvault/internal/crypto/clientcrypto"
	"github.com/and161185/keyvault/internal/exportfile"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/repository"
	"github.com/and161185/keyvault/internal/repository/filestore"
)

const (
	strongPassword = "Tr0ub4dor&3-horse"
	fairPassword   = "Abcdefgh123!"
	exportPassword = "export-pass-1"
	testVault      = "default"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock { return &fakeClock{t: t0} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// testConfig keeps Argon2id cheap; the failure delay stays at its production bounds.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.KDF = crypto.KDFParams{Time: 1, MemoryKB: 8 * 1024, Threads: 1}
	cfg.ExportIterations = exportfile.MinIterations
	return cfg
}

func deviceMigrator(host, id string, clock *fakeClock) *keystore.Migrator {
	return &keystore.Migrator{
		Hostname: func() (string, error) { return host, nil },
		Now:      clock.Now,
		GOOS:     "linux",
		NewID:    func() (string, error) { return id, nil },
	}
}

type device struct {
	store *filestore.Store
	mgr   *Manager
	clock *fakeClock
}

func newDevice(t *testing.T, host string, clock *fakeClock, cfg Config, opts ...Option) *device {
	t.Helper()
	log := zaptest.NewLogger(t)
	mg := deviceMigrator(host, "dev-"+host, clock)
	store, err := filestore.New(t.TempDir(), log)
	require.NoError(t, err)
	store.WithMigrator(mg)
	opts = append([]Option{WithClock(clock.Now), WithMigrator(mg)}, opts...)
	m := New(store, testVault, cfg, log, opts...)
	t.Cleanup(m.Close)
	return &device{store: store, mgr: m, clock: clock}
}

func newTestManager(t *testing.T, opts ...Option) *device {
	return newDevice(t, "alpha", newClock(), testConfig(), opts...)
}

func unlock(t *testing.T, m *Manager, password, userID string) UnlockResult {
	t.Helper()
	res := m.UnlockWithPassword(context.Background(), []byte(password), userID)
	require.NoError(t, res.Err)
	require.True(t, res.Success)
	return res
}

func stored(t *testing.T, repo repository.KeystoreRepository) *model.Keystore {
	t.Helper()
	ks, err := repo.Get(context.Background(), testVault)
	require.NoError(t, err)
	return ks
}

// seedKeystore writes a keystore protected by password without going through the
// creation policy.
func seedKeystore(t *testing.T, repo repository.KeystoreRepository, password, userID string) *model.Keystore {
	t.Helper()
	salt := []byte("0123456789abcdef")
	p := testConfig().KDF
	kek := crypto.DeriveVaultKEK([]byte(password), salt, p)
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	wrapped, err := clientcrypto.WrapKey(kek, priv)
	require.NoError(t, err)
	ks := &model.Keystore{
		SchemaVersion:    keystore.CurrentSchemaVersion,
		UserID:           userID,
		DeviceID:         "dev-seed",
		DeviceName:       "seed (Linux)",
		Platform:         "linux",
		DeviceCreatedAt:  t0,
		CurrentKeypair:   model.KeypairRecord{PublicKey: encodePublic(pub), EncryptedPrivateKey: wrapped, RotatedAt: t0},
		PreviousKeypairs: []model.KeypairRecord{},
		RotationHistory:  []model.RotationRecord{},
		SyncHistory:      []model.SyncRecord{},
		Salt:             salt,
		KDF:              model.KDFParams{Algorithm: keystore.KDFArgon2id, Time: p.Time, MemoryKB: p.MemoryKB, Threads: p.Threads},
		VaultSettings:    keystore.DefaultVaultSettings(),
		LastModified:     t0,
	}
	require.NoError(t, repo.Create(context.Background(), testVault, ks))
	return ks
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func record(m *Manager) *recorder {
	r := &recorder{}
	m.Subscribe(func(e Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *recorder) reasons() []Reason {
	var out []Reason
	for _, e := range r.all() {
		out = append(out, e.Reason)
	}
	return out
}

// gatedRepo blocks Get until released so a test can observe the Unlocking state.
type gatedRepo struct {
	repository.KeystoreRepository
	entered chan struct{}
	release chan struct{}
}

func newGatedRepo(inner repository.KeystoreRepository) *gatedRepo {
	return &gatedRepo{KeystoreRepository: inner, entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedRepo) Get(ctx context.Context, vaultID string) (*model.Keystore, error) {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.release
	return g.KeystoreRepository.Get(ctx, vaultID)
}

func nopLogger() *zap.Logger { return zap.NewNop() }
