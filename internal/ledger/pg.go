package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSink mirrors audit entries into the audit_log table. The dispatcher never
// reads this table back; it exists so balance history survives a restart even
// though entity state does not.
type PgSink struct {
	pool *pgxpool.Pool
}

// NewPgSink creates a Postgres-backed sink.
func NewPgSink(pool *pgxpool.Pool) *PgSink {
	return &PgSink{pool: pool}
}

func (s *PgSink) Append(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO audit_log (id, account_id, type, amount, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.AccountID, e.Type, e.Amount, e.Message, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
