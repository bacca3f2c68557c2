// Package limiter throttles repeated failed vault unlocks.
package limiter

import (
	"context"
	"time"
)

// Defaults match the unlock backoff ladder 1s, 2s, 4s … 32s.
const (
	DefaultMaxFailures = 5
	DefaultWindow      = 15 * time.Minute
	DefaultMaxBlock    = 32 * time.Second
	baseDelay          = time.Second
)

// Limiter controls unlock attempts and temporary lockouts per vault.
type Limiter interface {
	// Allow reports whether an unlock is currently allowed and an optional retry-after.
	Allow(ctx context.Context, vaultID string) (bool, time.Duration, error)
	// Success resets counters after a successful unlock.
	Success(ctx context.Context, vaultID string) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, vaultID string) (bool, time.Duration, error)
}

// Backoff is the block imposed after the fails-th consecutive failure.
// It is zero below maxFails, then doubles from one second up to maxBlock.
func Backoff(fails, maxFails int, maxBlock time.Duration) time.Duration {
	if fails < maxFails {
		return 0
	}
	shift := fails - maxFails
	if shift > 30 {
		return maxBlock
	}
	d := baseDelay << shift
	if d > maxBlock {
		d = maxBlock
	}
	return d
}

// Nop never blocks.
type Nop struct{}

func (Nop) Allow(context.Context, string) (bool, time.Duration, error)   { return true, 0, nil }
func (Nop) Success(context.Context, string) error                        { return nil }
func (Nop) Failure(context.Context, string) (bool, time.Duration, error) { return false, 0, nil }
