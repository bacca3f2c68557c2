// Package service adapts the vault manager for the daemon and the CLI.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/keyvault/internal/errs"
	"github.com/and161185/keyvault/internal/model"
	"github.com/and161185/keyvault/internal/vault"
)

// VaultService defines the operations exposed by keyvault binaries.
type VaultService interface {
	// Unlock opens (or creates) the vault and issues a session token.
	Unlock(ctx context.Context, password []byte, userID string) (UnlockOutcome, error)
	// ValidateSession checks a token issued by Unlock and returns the user id.
	ValidateSession(token string) (string, error)
	Lock(reason vault.Reason) bool
	Status(ctx context.Context) (vault.Snapshot, error)
	History(ctx context.Context) (vault.History, error)
	RecordActivity()
	SecurityEvent(kind string) (bool, error)
	Rotate(ctx context.Context, reason string) (model.RotationRecord, error)
	Sign(msg []byte) ([]byte, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	SetVaultSettings(ctx context.Context, settings model.VaultSettings) error
	Export(ctx context.Context, password, confirm []byte) (name string, data []byte, err error)
	ExportToFile(ctx context.Context, password, confirm []byte, dest string) (string, error)
	Import(ctx context.Context, data, password []byte) (vault.ImportResult, error)
	ImportFromFile(ctx context.Context, path string, password []byte) (vault.ImportResult, error)
	Subscribe(fn func(vault.Event)) (unsubscribe func())
}

// UnlockOutcome is the public part of a successful unlock.
type UnlockOutcome struct {
	Session   Session
	UserID    string
	PublicKey string
	Created   bool
	Warnings  []string
}

var _ VaultService = (*VaultServiceImpl)(nil)

// VaultServiceImpl implements VaultService over a single vault.Manager.
type VaultServiceImpl struct {
	mgr      *vault.Manager
	sessions *sessions
	log      *zap.Logger
	unsub    func()
}

// Option customises VaultServiceImpl.
type Option func(*VaultServiceImpl)

// WithSessionTTL sets the maximum session lifetime.
func WithSessionTTL(d time.Duration) Option {
	return func(s *VaultServiceImpl) {
		if d > 0 {
			s.sessions.ttl = d
		}
	}
}

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *VaultServiceImpl) { s.sessions.now = now }
}

// NewVaultService wraps mgr. Sessions die with every lock of the vault.
func NewVaultService(mgr *vault.Manager, log *zap.Logger, opts ...Option) *VaultServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	s := &VaultServiceImpl{
		mgr:      mgr,
		sessions: &sessions{vaultID: mgr.VaultID(), ttl: DefaultSessionTTL, now: time.Now},
		log:      log,
	}
	for _, o := range opts {
		o(s)
	}
	s.unsub = mgr.Subscribe(func(e vault.Event) {
		if e.NewState == vault.Locked {
			s.sessions.drop()
		}
	})
	return s
}

// Close detaches from the manager and locks the vault.
func (s *VaultServiceImpl) Close() {
	s.unsub()
	s.sessions.drop()
	s.mgr.Close()
}

// Unlock returns the manager's error unchanged on failure.
func (s *VaultServiceImpl) Unlock(ctx context.Context, password []byte, userID string) (UnlockOutcome, error) {
	res := s.mgr.UnlockWithPassword(ctx, password, userID)
	if res.Err != nil {
		return UnlockOutcome{Warnings: res.Warnings}, res.Err
	}
	st, err := s.mgr.Status(ctx)
	if err != nil {
		return UnlockOutcome{}, err
	}
	s.sessions.ensure()
	sess, err := s.sessions.issue(st.UserID)
	if err != nil {
		return UnlockOutcome{}, err
	}
	if s.mgr.State() != vault.Unlocked {
		s.sessions.drop()
		return UnlockOutcome{}, errs.State("unlock", errs.ErrLocked)
	}
	return UnlockOutcome{
		Session:   sess,
		UserID:    st.UserID,
		PublicKey: res.Keypair.PublicKey(),
		Created:   res.Created,
		Warnings:  res.Warnings,
	}, nil
}

func (s *VaultServiceImpl) ValidateSession(token string) (string, error) {
	return s.sessions.validate(token)
}

func (s *VaultServiceImpl) Lock(reason vault.Reason) bool {
	if reason == "" {
		reason = vault.ReasonManual
	}
	return s.mgr.Lock(reason)
}

func (s *VaultServiceImpl) Status(ctx context.Context) (vault.Snapshot, error) {
	return s.mgr.Status(ctx)
}

func (s *VaultServiceImpl) History(ctx context.Context) (vault.History, error) {
	return s.mgr.History(ctx)
}

func (s *VaultServiceImpl) RecordActivity() { s.mgr.RecordActivity() }

// SecurityEvent reports whether kind locked the vault.
func (s *VaultServiceImpl) SecurityEvent(kind string) (bool, error) {
	return s.mgr.HandleSecurityEvent(vault.SecurityEvent(kind))
}

func (s *VaultServiceImpl) Rotate(ctx context.Context, reason string) (model.RotationRecord, error) {
	return s.mgr.Rotate(ctx, reason)
}

func (s *VaultServiceImpl) Sign(msg []byte) ([]byte, error) { return s.mgr.Sign(msg) }

func (s *VaultServiceImpl) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	return s.mgr.ChangePassword(ctx, oldPassword, newPassword)
}

func (s *VaultServiceImpl) SetVaultSettings(ctx context.Context, settings model.VaultSettings) error {
	return s.mgr.SetVaultSettings(ctx, settings)
}

func (s *VaultServiceImpl) Subscribe(fn func(vault.Event)) func() { return s.mgr.Subscribe(fn) }
