package limiter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PG is a PostgreSQL-backed limiter shared by every process using the same database.
type PG struct {
	pool     pgxQuerier
	window   time.Duration
	maxFails int
	maxBlock time.Duration
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a PostgreSQL-backed limiter. q is usually a *pgxpool.Pool.
func NewPG(q pgxQuerier, window time.Duration, maxFails int, maxBlock time.Duration) *PG {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxFails <= 0 {
		maxFails = DefaultMaxFailures
	}
	if maxBlock <= 0 {
		maxBlock = DefaultMaxBlock
	}
	return &PG{pool: q, window: window, maxFails: maxFails, maxBlock: maxBlock}
}

// Allow reports whether unlock is currently allowed and a retry-after duration.
func (l *PG) Allow(ctx context.Context, vaultID string) (bool, time.Duration, error) {
	const q = `SELECT blocked_until FROM unlock_limiter WHERE vault_id=$1`
	var blockedUntil time.Time
	err := l.pool.QueryRow(ctx, q, vaultID).Scan(&blockedUntil)
	switch {
	case err == nil:
		if d := time.Until(blockedUntil); d > 0 {
			return false, d, nil
		}
		return true, 0, nil
	case errors.Is(err, pgx.ErrNoRows):
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success resets counters for the vault.
func (l *PG) Success(ctx context.Context, vaultID string) error {
	const q = `
INSERT INTO unlock_limiter (vault_id, fail_count, blocked_until, updated_at)
VALUES ($1,0,'epoch',now())
ON CONFLICT (vault_id)
DO UPDATE SET fail_count=0, blocked_until='epoch', updated_at=now()`
	_, err := l.pool.Exec(ctx, q, vaultID)
	return err
}

// Failure records a failed attempt; may set a block until a future time.
func (l *PG) Failure(ctx context.Context, vaultID string) (bool, time.Duration, error) {
	now := time.Now()

	const q = `
INSERT INTO unlock_limiter (vault_id, fail_count, blocked_until, updated_at)
VALUES ($1,1,'epoch',now())
ON CONFLICT (vault_id) DO UPDATE
SET
  fail_count = CASE WHEN EXCLUDED.updated_at - unlock_limiter.updated_at > $2::interval THEN 1 ELSE unlock_limiter.fail_count + 1 END,
  updated_at = now()
RETURNING fail_count`
	var fails int
	if err := l.pool.QueryRow(ctx, q, vaultID, l.window).Scan(&fails); err != nil {
		return false, 0, err
	}
	d := Backoff(fails, l.maxFails, l.maxBlock)
	if d == 0 {
		return false, 0, nil
	}
	const upd = `UPDATE unlock_limiter SET blocked_until=$2 WHERE vault_id=$1`
	if _, err := l.pool.Exec(ctx, upd, vaultID, now.Add(d)); err != nil {
		return false, 0, err
	}
	return true, d, nil
}
