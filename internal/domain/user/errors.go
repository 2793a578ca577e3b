package user

import (
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound      = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户名已存在")
	ErrInvalidRole       = apperrors.New(apperrors.ErrCodeInvalidParams, "角色必须是operator或manager")
	ErrInvalidName       = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名不能为空")
	ErrInvalidUsername   = apperrors.New(apperrors.ErrCodeInvalidParams, "管理员必须设置用户名")
	ErrWeakPassword      = apperrors.New(apperrors.ErrCodeInvalidParams, "密码强度不足（需8-20位，包含字母和数字）")
	ErrOperatorPassword  = apperrors.New(apperrors.ErrCodeInvalidParams, "保洁员不需要设置用户名和密码")
)
