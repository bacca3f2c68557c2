package service

import (
	"errors"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/keyvault/internal/errs"
)

// DefaultSessionTTL bounds a daemon session even if the vault stays unlocked.
const DefaultSessionTTL = 12 * time.Hour

// Session is issued on a successful unlock.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// sessions signs daemon tokens with a random key that lives only while the vault is unlocked.
type sessions struct {
	vaultID string
	ttl     time.Duration
	now     func() time.Time

	mu  sync.Mutex
	key *memguard.LockedBuffer
}

// ensure creates the signing key unless one is live. Tokens issued earlier in the
// same unlocked period stay valid.
func (s *sessions) ensure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		s.key = memguard.NewBufferRandom(32)
	}
}

// drop forgets the signing key.
func (s *sessions) drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		s.key.Destroy()
		s.key = nil
	}
}

// issue creates a signed HS256 JWT for userID.
func (s *sessions) issue(userID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return Session{}, errs.State("issue session", errs.ErrLocked)
	}
	jti, err := uuid.NewV4()
	if err != nil {
		return Session{}, err
	}
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        jti.String(),
		Subject:   userID,
		Audience:  jwt.ClaimStrings{s.vaultID},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key.Bytes())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: signed, ExpiresAt: exp}, nil
}

// validate verifies token and returns its subject.
func (s *sessions) validate(token string) (string, error) {
	const op = "session"
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		return "", errs.Authentication(op, errs.ErrUnauthorized)
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.key.Bytes(), nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(30*time.Second),
		jwt.WithAudience(s.vaultID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", errs.Authentication(op, errs.ErrUnauthorized)
	}
	return claims.Subject, nil
}
