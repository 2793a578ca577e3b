package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 嵌套调用复用外层事务
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内的所有Repository操作都在同一事务中执行,返回error时ROLLBACK,返回nil时COMMIT
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    item, err := itemRepo.LockByID(ctx, itemID)
//	    if err != nil {
//	        return err
//	    }
//	    if err := ledgerRepo.Record(ctx, change); err != nil {
//	        return err // 自动回滚
//	    }
//	    return itemRepo.UpdateQuantity(ctx, item)
//	})
//
// 提交阶段的死锁/锁超时转换为ErrConcurrentUpdate
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		// 已在事务中,直接复用外层事务
		return fn(ctx)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
	if err != nil && !apperrors.IsAppError(err) && isConflictError(err) {
		return apperrors.ErrConcurrentUpdate.WithCause(err)
	}
	return err
}

// IsRetryable 是否可以用最新状态重试
func IsRetryable(err error) bool {
	return errors.Is(err, apperrors.ErrConcurrentUpdate)
}
