package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stackos/catalog-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTxTest(t *testing.T) *gorm.DB {
	database, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { CleanupTestDB(database) })
	return database
}

func countTags(t *testing.T, database *gorm.DB) int64 {
	var count int64
	require.NoError(t, database.Model(&model.Tag{}).Count(&count).Error)
	return count
}

func TestRunInTransactionCommitPersists(t *testing.T) {
	database := setupTxTest(t)

	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		return tx.Create(&model.Tag{Value: "wool"}).Error
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), countTags(t, database))
}

func TestRunInTransactionErrorRollsBackEverything(t *testing.T) {
	database := setupTxTest(t)

	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.Create(&model.Tag{Value: "wool"}).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Tag{Value: "cotton"}).Error; err != nil {
			return err
		}
		return errors.New("late failure")
	})
	require.EqualError(t, err, "late failure")

	assert.Equal(t, int64(0), countTags(t, database))
}

func TestRunInTransactionPanicRollsBack(t *testing.T) {
	database := setupTxTest(t)

	func() {
		defer func() {
			require.NotNil(t, recover())
		}()
		_ = RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
			if err := tx.Create(&model.Tag{Value: "wool"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	}()

	assert.Equal(t, int64(0), countTags(t, database))
}

func TestRunInTransactionNestedCallJoinsOuter(t *testing.T) {
	database := setupTxTest(t)

	var outerTx *gorm.DB
	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		outerTx = tx
		return RunInTransaction(ctx, database, func(ctx context.Context, innerTx *gorm.DB) error {
			assert.Same(t, outerTx, innerTx)
			return innerTx.Create(&model.Tag{Value: "wool"}).Error
		})
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), countTags(t, database))
}

func TestRunInTransactionInnerErrorRollsBackOuterWrites(t *testing.T) {
	database := setupTxTest(t)

	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.Create(&model.Tag{Value: "outer"}).Error; err != nil {
			return err
		}
		return RunInTransaction(ctx, database, func(ctx context.Context, tx *gorm.DB) error {
			if err := tx.Create(&model.Tag{Value: "inner"}).Error; err != nil {
				return err
			}
			return errors.New("inner failure")
		})
	})
	require.EqualError(t, err, "inner failure")

	// The inner call joined the outer transaction, so both writes are gone.
	assert.Equal(t, int64(0), countTags(t, database))
}

func TestConnReturnsTransactionWhenActive(t *testing.T) {
	database := setupTxTest(t)

	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		assert.Same(t, tx, Conn(ctx, database))
		return nil
	})
	require.NoError(t, err)
}

func TestConnFallsBackOutsideTransaction(t *testing.T) {
	database := setupTxTest(t)

	conn := Conn(context.Background(), database)
	require.NotNil(t, conn)
	assert.NoError(t, conn.Create(&model.Tag{Value: "wool"}).Error)
}

func TestRunReadSeesUncommittedRows(t *testing.T) {
	database := setupTxTest(t)

	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.Create(&model.Tag{Value: "wool"}).Error; err != nil {
			return err
		}
		return RunRead(ctx, database, func(ctx context.Context, conn *gorm.DB) error {
			var count int64
			if err := conn.Model(&model.Tag{}).Count(&count).Error; err != nil {
				return err
			}
			assert.Equal(t, int64(1), count)
			return nil
		})
	})
	require.NoError(t, err)
}

func TestAfterCommitRunsOnceInOrderAfterCommit(t *testing.T) {
	database := setupTxTest(t)

	var order []string
	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		AfterCommit(ctx, func() { order = append(order, "first") })
		AfterCommit(ctx, func() { order = append(order, "second") })
		// Nothing may run before the transaction commits.
		assert.Empty(t, order)
		AfterCommit(ctx, func() { order = append(order, "third") })
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestAfterCommitSkippedOnRollback(t *testing.T) {
	database := setupTxTest(t)

	ran := false
	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		AfterCommit(ctx, func() { ran = true })
		return errors.New("abort")
	})
	require.Error(t, err)

	assert.False(t, ran)
}

func TestAfterCommitFromNestedCallRunsAfterOutermostCommit(t *testing.T) {
	database := setupTxTest(t)

	var order []string
	err := RunInTransaction(context.Background(), database, func(ctx context.Context, tx *gorm.DB) error {
		if err := RunInTransaction(ctx, database, func(ctx context.Context, tx *gorm.DB) error {
			AfterCommit(ctx, func() { order = append(order, "nested") })
			return nil
		}); err != nil {
			return err
		}
		// The inner call returned but the effect waits for the outer commit.
		assert.Empty(t, order)
		AfterCommit(ctx, func() { order = append(order, "outer") })
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"nested", "outer"}, order)
}

func TestAfterCommitOutsideTransactionRunsImmediately(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func() { ran = true })
	assert.True(t, ran)
}
