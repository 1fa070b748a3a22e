package db

import (
	"context"

	"github.com/stackos/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// The ambient transaction travels on the context: every repository resolves
// its connection through Conn, so nested writers join the transaction opened
// by the outermost RunInTransaction call without it being passed explicitly.
// The context is per call chain; concurrent operations never see each other's
// transaction.

type txContextKey struct{}

// txContext carries the open transaction and the queue of effects to run
// after it commits.
type txContext struct {
	tx      *gorm.DB
	effects *[]func()
}

func activeTx(ctx context.Context) (*txContext, bool) {
	tc, ok := ctx.Value(txContextKey{}).(*txContext)
	return tc, ok
}

// TxFromContext returns the transaction active on this call chain, if any.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	if tc, ok := activeTx(ctx); ok {
		return tc.tx, true
	}
	return nil, false
}

// Conn returns the active transaction, or fallback when none is open.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// RunInTransaction runs fn inside a transaction. If one is already active on
// ctx, fn joins it and commit/rollback stay with the outermost caller.
// Otherwise a new transaction is opened; on success it is committed and the
// effects queued via AfterCommit during fn run once, in order, outside the
// transaction. On error or panic the transaction is rolled back and no
// effect runs.
func RunInTransaction(ctx context.Context, db *gorm.DB, fn func(ctx context.Context, tx *gorm.DB) error) error {
	if tc, ok := activeTx(ctx); ok {
		return fn(ctx, tc.tx)
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	effects := make([]func(), 0)
	txCtx := context.WithValue(ctx, txContextKey{}, &txContext{tx: tx, effects: &effects})

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction", err)
		return err
	}
	committed = true

	for _, effect := range effects {
		effect()
	}
	return nil
}

// RunRead runs fn against the active transaction when one is open, so reads
// inside a write operation see its uncommitted rows. Outside a transaction
// fn gets a plain connection; nothing is committed or rolled back.
func RunRead(ctx context.Context, db *gorm.DB, fn func(ctx context.Context, conn *gorm.DB) error) error {
	return fn(ctx, Conn(ctx, db))
}

// AfterCommit queues effect to run after the ambient transaction commits.
// Outside any transaction the effect runs immediately.
func AfterCommit(ctx context.Context, effect func()) {
	if tc, ok := activeTx(ctx); ok {
		*tc.effects = append(*tc.effects, effect)
		return
	}
	effect()
}
