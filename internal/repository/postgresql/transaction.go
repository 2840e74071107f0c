package postgresql

import (
	"context"
	"fmt"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/domain/attendance"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// WithTransaction executes fn inside a database transaction. The open
// transaction is carried in the context so repository methods called from
// fn run against it. Any error from fn rolls back everything.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns the context's transaction when present, otherwise the
// pool. Repositories work transparently inside and outside transactions.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

type recordLocker struct {
	db *database.DB
}

// NewRecordLocker serializes attendance mutations per record key with a
// transaction-scoped advisory lock, so two racing transitions on the same
// (user, business, work date) are ordered and the loser observes the
// winner's committed state.
func NewRecordLocker(db *database.DB) attendance.RecordLocker {
	return &recordLocker{db: db}
}

// WithRecordLock implements attendance.RecordLocker.
func (l *recordLocker) WithRecordLock(ctx context.Context, key attendance.RecordKey, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, l.db)
		if _, err := q.Exec(txCtx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key.String()); err != nil {
			return fmt.Errorf("acquire record lock: %w", err)
		}
		return fn(txCtx)
	})
}
