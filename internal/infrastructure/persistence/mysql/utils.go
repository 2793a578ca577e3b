package mysql

import (
	"context"
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// MySQL错误码
const (
	mysqlErrLockWaitTimeout = 1205 // Lock wait timeout exceeded
	mysqlErrDeadlock        = 1213 // Deadlock found when trying to get lock
)

// isDuplicateError 判断是否为唯一索引冲突错误
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isConflictError 判断是否为并发冲突（死锁、锁等待超时、SQLite忙）
func isConflictError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// wrapDBError 数据库错误转换为业务错误
// 并发冲突转换为ErrConcurrentUpdate，其余为StorageError
func wrapDBError(err error, message string) error {
	if isConflictError(err) {
		return apperrors.ErrConcurrentUpdate.WithCause(err)
	}
	return apperrors.WrapDB(err, message)
}

// txKey 事务DB在context中的key
type txKey struct{}

// dbFromContext 从context获取事务DB,如果没有则使用默认DB
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// stringPtr 空串转换为nil
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// stringValue nil转换为空串
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// datatypesSlice 照片路径转换为JSON列,nil写入为[]
func datatypesSlice(paths []string) datatypes.JSONSlice[string] {
	if paths == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](paths)
}
