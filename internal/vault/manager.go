// Package vault implements the identity vault lifecycle: unlocking with a password,
// holding the private key only while unlocked, idle auto-lock and the operations
// (rotation, export, import) that require an unlocked vault.
package vault

import (
	"crypto/ed25519"
	"encoding/base64"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/exportfile"
	"github.com/and161185/keyvault/internal/keystore"
	"github.com/and161185/keyvault/internal/limiter"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/repository"
)

// Manager owns one vault. Create it with New; there is no package-level instance.
type Manager struct {
	repo     repository.KeystoreRepository
	vaultID  string
	cfg      Config
	log      *zap.Logger
	lim      limiter.Limiter
	now      func() time.Time
	migrator *keystore.Migrator
	prims    exportfile.Primitives

	// opMu serialises unlock, export, import, rotation and password change.
	opMu sync.Mutex

	mu             sync.Mutex
	state          State
	gen            uint64
	handle         *KeypairHandle
	userID         string
	settings       model.VaultSettings
	lastActivity   time.Time
	lastLockReason Reason
	timer          *time.Timer
	timerGen       uint64

	keyMu sync.RWMutex
	kek   *memguard.LockedBuffer

	obsMu     sync.Mutex
	observers map[int]func(Event)
	nextObs   int
}

// New constructs a locked Manager for vaultID.
func New(repo repository.KeystoreRepository, vaultID string, cfg Config, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	m := &Manager{
		repo:      repo,
		vaultID:   vaultID,
		cfg:       cfg,
		log:       log.With(zap.String("vault", vaultID)),
		lim:       limiter.Nop{},
		now:       time.Now,
		migrator:  keystore.DefaultMigrator(),
		settings:  cfg.settings(),
		observers: map[int]func(Event){},
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// VaultID returns the id the manager was created for.
func (m *Manager) VaultID() string { return m.vaultID }

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn for lifecycle events. Events are delivered synchronously
// on the goroutine that caused them; fn must not block.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.obsMu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	m.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.obsMu.Lock()
			delete(m.observers, id)
			m.obsMu.Unlock()
		})
	}
}

func (m *Manager) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	m.obsMu.Lock()
	fns := make([]func(Event), 0, len(m.observers))
	for i := 0; i < m.nextObs; i++ {
		if fn, ok := m.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	m.obsMu.Unlock()

	for _, e := range events {
		for _, fn := range fns {
			fn(e)
		}
	}
}

// transitionLocked moves to next and returns the event to publish. Caller holds mu.
func (m *Manager) transitionLocked(next State, reason Reason) Event {
	prev := m.state
	m.state = next
	return Event{Type: EventStateChanged, PreviousState: prev, NewState: next, Reason: reason, Timestamp: m.now()}
}

// Lock wipes key material and moves to Locked. It reports false when already locked.
func (m *Manager) Lock(reason Reason) bool {
	m.mu.Lock()
	events := m.lockLocked(reason)
	m.mu.Unlock()
	m.emit(events...)
	return len(events) > 0
}

func (m *Manager) lockLocked(reason Reason) []Event {
	if m.state == Locked {
		return nil
	}
	m.gen++
	m.stopTimerLocked()
	m.handle.destroy()
	m.handle = nil
	m.keyMu.Lock()
	if m.kek != nil {
		m.kek.Destroy()
		m.kek = nil
	}
	m.keyMu.Unlock()
	m.lastLockReason = reason

	ev := m.transitionLocked(Locked, reason)
	m.log.Info("vault locked", zap.String("reason", string(reason)), zap.String("from", ev.PreviousState.String()))
	events := []Event{ev}
	if reason == ReasonIdleTimeout {
		events = append(events, Event{
			Type: EventIdleTimeout, PreviousState: ev.PreviousState, NewState: Locked, Reason: reason, Timestamp: ev.Timestamp,
		})
	}
	return events
}

// Close locks the vault for shutdown.
func (m *Manager) Close() { m.Lock(ReasonShutdown) }

// RecordActivity restarts the idle timer. It does nothing unless unlocked.
func (m *Manager) RecordActivity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Unlocked {
		return
	}
	m.lastActivity = m.now()
	m.startTimerLocked()
}

func (m *Manager) startTimerLocked() {
	m.stopTimerLocked()
	m.timerGen++
	g := m.timerGen
	d := m.settings.IdleTimeout
	if d <= 0 {
		d = m.cfg.IdleTimeout
	}
	m.timer = time.AfterFunc(d, func() { m.onIdle(g) })
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// onIdle fires from the timer goroutine. A stale generation means activity or a lock
// happened after the timer was armed.
func (m *Manager) onIdle(g uint64) {
	m.mu.Lock()
	if m.timerGen != g || m.state != Unlocked {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	events := m.lockLocked(ReasonIdleTimeout)
	m.mu.Unlock()
	m.emit(events...)
}

// SecurityEvent is a platform signal that may lock the vault.
type SecurityEvent string

const (
	SecuritySystemSleep SecurityEvent = "system_sleep"
	SecurityScreenLock  SecurityEvent = "screen_lock"
	SecurityWindowBlur  SecurityEvent = "window_blur"
	SecurityAppMinimize SecurityEvent = "app_minimize"
)

// OnSystemSleep locks when the policy asks for it.
func (m *Manager) OnSystemSleep() bool { return m.handleSecurity(SecuritySystemSleep) }

// OnScreenLock locks when the policy asks for it.
func (m *Manager) OnScreenLock() bool { return m.handleSecurity(SecurityScreenLock) }

// OnWindowBlur locks when the policy asks for it.
func (m *Manager) OnWindowBlur() bool { return m.handleSecurity(SecurityWindowBlur) }

// OnAppMinimize locks when the policy asks for it.
func (m *Manager) OnAppMinimize() bool { return m.handleSecurity(SecurityAppMinimize) }

// HandleSecurityEvent dispatches ev by name and reports whether the vault locked.
func (m *Manager) HandleSecurityEvent(ev SecurityEvent) (bool, error) {
	switch ev {
	case SecuritySystemSleep, SecurityScreenLock, SecurityWindowBlur, SecurityAppMinimize:
		return m.handleSecurity(ev), nil
	default:
		return false, errs.Validation("security event", errs.ErrUnsupportedFormat)
	}
}

func (m *Manager) handleSecurity(ev SecurityEvent) bool {
	m.mu.Lock()
	p := policyOf(m.settings)
	m.mu.Unlock()

	var lock bool
	switch ev {
	case SecuritySystemSleep:
		lock = p.SystemSleep
	case SecurityScreenLock:
		lock = p.ScreenLock
	case SecurityWindowBlur:
		lock = p.WindowBlur
	case SecurityAppMinimize:
		lock = p.AppMinimize
	}
	if !lock {
		return false
	}
	return m.Lock(Reason(ev))
}

// Keypair returns the handle of the current keypair.
func (m *Manager) Keypair() (*KeypairHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Unlocked || m.handle == nil {
		return nil, errs.State("keypair", errs.ErrLocked)
	}
	return m.handle, nil
}

// PublicKey returns the current public key while unlocked.
func (m *Manager) PublicKey() (string, error) {
	h, err := m.Keypair()
	if err != nil {
		return "", err
	}
	return h.PublicKey(), nil
}

// Sign signs msg with the current private key and counts as activity.
func (m *Manager) Sign(msg []byte) ([]byte, error) {
	h, err := m.Keypair()
	if err != nil {
		return nil, err
	}
	sig, err := h.Sign(msg)
	if err != nil {
		return nil, err
	}
	m.RecordActivity()
	return sig, nil
}

// beginOp checks that the vault is unlocked and takes the operation slot.
// The returned generation detects a lock that happens while the operation runs.
func (m *Manager) beginOp(op string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Unlocked {
		return 0, errs.State(op, errs.ErrLocked)
	}
	if !m.opMu.TryLock() {
		return 0, errs.State(op, errs.ErrBusy)
	}
	return m.gen, nil
}

func (m *Manager) endOp() {
	m.opMu.Unlock()
	m.RecordActivity()
}

// kekCopy returns a copy of the vault key. The caller wipes it.
func (m *Manager) kekCopy(op string) ([]byte, error) {
	m.keyMu.RLock()
	defer m.keyMu.RUnlock()
	if m.kek == nil || !m.kek.IsAlive() {
		return nil, errs.State(op, errs.ErrLocked)
	}
	return append([]byte(nil), m.kek.Bytes()...), nil
}

// swapHandle installs a new current key if the vault is still in generation gen.
func (m *Manager) swapHandle(gen uint64, publicKey string, priv []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Unlocked || m.gen != gen {
		memguard.WipeBytes(priv)
		return errs.State("swap key", errs.ErrLocked)
	}
	old := m.handle
	m.handle = newHandle(publicKey, priv)
	old.destroy()
	return nil
}

func encodePublic(pub ed25519.PublicKey) string {
	return base64.StdEncoding.EncodeToString(pub)
}

// checkKeypair confirms that priv is the private half of publicKey.
func checkKeypair(publicKey string, priv []byte) bool {
	if len(priv) != ed25519.PrivateKeySize {
		return false
	}
	pub, ok := ed25519.PrivateKey(priv).Public().(ed25519.PublicKey)
	return ok && encodePublic(pub) == publicKey
}
