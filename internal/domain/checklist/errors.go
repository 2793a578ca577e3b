package checklist

import (
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
)

// 清单领域错误定义
var (
	ErrChecklistNotFound   = apperrors.New(apperrors.ErrCodeChecklistNotFound, "清单不存在")
	ErrTemplateNotFound    = apperrors.New(apperrors.ErrCodeTemplateNotFound, "没有可用的清单模板")
	ErrTaskNotFound        = apperrors.New(apperrors.ErrCodeTaskNotFound, "任务不存在")
	ErrInvalidTaskType     = apperrors.New(apperrors.ErrCodeInvalidParams, "任务类型必须是checkbox、yes_no、photo或text")
	ErrInvalidYesNoValue   = apperrors.New(apperrors.ErrCodeInvalidParams, "是/否任务的值必须是yes或no")
	ErrInvalidTemplateName = apperrors.New(apperrors.ErrCodeInvalidParams, "模板名称不能为空")
	ErrInvalidTaskTitle    = apperrors.New(apperrors.ErrCodeInvalidParams, "任务标题不能为空")
	ErrPhotoNotAllowed     = apperrors.New(apperrors.ErrCodeInvalidParams, "只有拍照任务可以上传照片")
	ErrInvalidPhotoType    = apperrors.New(apperrors.ErrCodeInvalidFileType, "只支持jpeg、png、webp格式的图片")
	ErrPhotoTooLarge       = apperrors.New(apperrors.ErrCodeFileTooLarge, "图片超过大小限制")
	ErrEmptyPhoto          = apperrors.New(apperrors.ErrCodeInvalidParams, "图片内容为空")
)
