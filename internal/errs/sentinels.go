// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Storage sentinels.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict indicates a concurrent writer changed the record first.
	ErrVersionConflict = errors.New("version conflict")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., vault already initialized).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUserIDImmutable indicates an attempt to change a keystore's user id after it was set.
	ErrUserIDImmutable = errors.New("keystore user id is write-once")
)

// Validation sentinels. Safe to show to the user.
var (
	ErrWeakPassword      = errors.New("password does not meet the strength policy")
	ErrPasswordMismatch  = errors.New("password confirmation does not match")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMalformedFile     = errors.New("malformed export file")
)

// Authentication sentinels. Messages stay generic to avoid oracles.
var (
	ErrWrongPasswordOrCorrupt = errors.New("wrong password or corrupted file")
	ErrSignatureMismatch      = errors.New("export file failed authentication")
	ErrChecksumMismatch       = errors.New("export file is corrupted")
	ErrUnauthorized           = errors.New("unauthorized")

	// ErrRateLimited indicates unlock attempts are temporarily blocked.
	ErrRateLimited = errors.New("rate limited")
)

// Integrity sentinels. They point at a possible attack rather than a user mistake.
var (
	ErrRotationChain = errors.New("rotation history integrity violation")
	ErrNoKeystore    = errors.New("no local keystore")
	ErrUserMismatch  = errors.New("keystore belongs to a different user")
	ErrDowngrade     = errors.New("import is missing local rotations")
	ErrReplay        = errors.New("export was already applied")
	ErrFutureExport  = errors.New("export timestamp is in the future")
)

// State sentinels. Programmer-facing.
var (
	ErrLocked           = errors.New("vault is locked")
	ErrUnlockInProgress = errors.New("unlock already in progress")
	ErrBusy             = errors.New("another vault operation is in flight")
)
