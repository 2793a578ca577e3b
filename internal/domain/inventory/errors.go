package inventory

import (
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrItemNotFound 物品不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeItemNotFound, "库存物品不存在")

	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrAlertNotFound 告警不存在
	ErrAlertNotFound = apperrors.New(apperrors.ErrCodeAlertNotFound, "告警不存在")

	// ErrInvalidQuantity 数量非法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量不能为负数")

	// ErrInvalidName 名称为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空")

	// ErrInvalidAlertKind 告警类型非法
	ErrInvalidAlertKind = apperrors.New(apperrors.ErrCodeInvalidParams, "告警类型必须是low_stock、missing_item或checklist_issue")

	// ErrInvalidSeverity 告警级别非法
	ErrInvalidSeverity = apperrors.New(apperrors.ErrCodeInvalidParams, "告警级别必须是low、medium或high")

	// ErrInvalidAlertMessage 告警内容为空
	ErrInvalidAlertMessage = apperrors.New(apperrors.ErrCodeInvalidParams, "告警内容不能为空")

	// ErrCategoryDuplicate 分类名称已存在
	ErrCategoryDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")

	// ErrAlertAlreadyOpen 已存在未处理告警
	ErrAlertAlreadyOpen = apperrors.New(apperrors.ErrCodeAlertAlreadyOpen, "该物品已存在同类型的未处理告警")

	// ErrAlertAlreadyResolved 告警已处理
	ErrAlertAlreadyResolved = apperrors.New(apperrors.ErrCodeAlertResolved, "告警已处理")

	// ErrItemHasOpenAlerts 存在未处理告警的物品不能删除
	ErrItemHasOpenAlerts = apperrors.New(apperrors.ErrCodeItemHasOpenAlerts, "物品存在未处理告警，请先处理")

	// ErrConcurrentUpdate 并发更新冲突，调用方可用最新状态重试一次
	ErrConcurrentUpdate = apperrors.ErrConcurrentUpdate
)
