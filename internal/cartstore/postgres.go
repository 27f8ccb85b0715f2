package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps carts in the carts table, one row per token with the
// lines as jsonb. Rows past expires_at read as empty and are purged
// opportunistically on writes.
type Postgres struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewPostgres(pool *pgxpool.Pool, ttl time.Duration) *Postgres {
	return &Postgres{pool: pool, ttl: ttl}
}

func (p *Postgres) Get(ctx context.Context, token string) ([]Line, error) {
	const q = `
SELECT lines
FROM carts
WHERE token = $1 AND expires_at > now()
`
	var raw []byte
	err := p.pool.QueryRow(ctx, q, token).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart store: get %s: %w", token, err)
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("cart store: decode %s: %w", token, err)
	}
	return lines, nil
}

func (p *Postgres) Put(ctx context.Context, token string, lines []Line) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart store: encode %s: %w", token, err)
	}
	const q = `
INSERT INTO carts (token, lines, expires_at)
VALUES ($1, $2, now() + make_interval(secs => $3))
ON CONFLICT (token) DO UPDATE
SET lines = EXCLUDED.lines,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()
`
	if _, err := p.pool.Exec(ctx, q, token, raw, p.ttl.Seconds()); err != nil {
		return fmt.Errorf("cart store: put %s: %w", token, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, token string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM carts WHERE token = $1`, token); err != nil {
		return fmt.Errorf("cart store: delete %s: %w", token, err)
	}
	return nil
}

// PurgeExpired removes rows whose TTL has lapsed. Meant to be run
// periodically by the operator or a cron, not on the request path.
func (p *Postgres) PurgeExpired(ctx context.Context) (int64, error) {
	cmd, err := p.pool.Exec(ctx, `DELETE FROM carts WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("cart store: purge expired: %w", err)
	}
	return cmd.RowsAffected(), nil
}
