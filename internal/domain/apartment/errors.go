package apartment

import (
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// 公寓领域错误定义
var (
	ErrApartmentNotFound = apperrors.New(apperrors.ErrCodeApartmentNotFound, "公寓不存在")
	ErrNameDuplicate     = apperrors.New(apperrors.ErrCodeDuplicateEntry, "公寓名称已存在")
	ErrInvalidName       = apperrors.New(apperrors.ErrCodeInvalidParams, "公寓名称不能为空")
)
