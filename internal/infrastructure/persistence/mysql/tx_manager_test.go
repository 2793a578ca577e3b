package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

func TestTxManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	ledger := NewLedgerRepository(db)
	txManager := NewTxManager(db)
	ctx := context.Background()

	item := seedItem(t, db, 5, 3)
	boom := errors.New("boom")

	err := txManager.Transaction(ctx, func(ctx context.Context) error {
		locked, err := items.LockByID(ctx, item.ID)
		if err != nil {
			return err
		}
		change := inventory.NewQuantityChange(locked.ID, nil, locked.Quantity, 1, "")
		if err := ledger.Record(ctx, change); err != nil {
			return err
		}
		locked.Quantity = 1
		if err := items.UpdateQuantity(ctx, locked); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// 回滚后数量和台账都没有变化
	found, err := items.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Quantity)

	records, err := ledger.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTxManager_NestedReusesOuter(t *testing.T) {
	db := newTestDB(t)
	items := NewItemRepository(db)
	txManager := NewTxManager(db)
	ctx := context.Background()
	item := seedItem(t, db, 5, 3)

	err := txManager.Transaction(ctx, func(ctx context.Context) error {
		return txManager.Transaction(ctx, func(ctx context.Context) error {
			item.Quantity = 4
			item.LastUpdated = time.Now()
			return items.UpdateQuantity(ctx, item)
		})
	})
	require.NoError(t, err)

	found, err := items.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)
}

func TestLedgerRepository_AppendOnly(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerRepository(db)
	ctx := context.Background()
	item := seedItem(t, db, 5, 3)

	for _, q := range []int{3, 3, 0} {
		change := inventory.NewQuantityChange(item.ID, nil, item.Quantity, q, "")
		require.NoError(t, ledger.Record(ctx, change))
		assert.NotZero(t, change.ID)
		item.Quantity = q
	}

	records, err := ledger.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// 倒序
	assert.Equal(t, 3, records[0].OldQuantity)
	assert.Equal(t, 0, records[0].NewQuantity)
	assert.Equal(t, inventory.DefaultChangeReason, records[0].Reason)
	assert.Equal(t, 5, records[2].OldQuantity)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(apperrors.ErrConcurrentUpdate.WithCause(errors.New("deadlock"))))
	assert.True(t, IsRetryable(inventory.ErrConcurrentUpdate))
	assert.False(t, IsRetryable(inventory.ErrItemNotFound))
	assert.False(t, IsRetryable(nil))
}

func TestWrapDBError(t *testing.T) {
	err := wrapDBError(errors.New("database is locked"), "x")
	assert.ErrorIs(t, err, apperrors.ErrConcurrentUpdate)

	err = wrapDBError(errors.New("connection refused"), "查询失败")
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
}
