package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appchecklist "github.com/xiebiao/aptcare/internal/application/checklist"
	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/infrastructure/config"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
	"github.com/xiebiao/aptcare/pkg/response"
)

// multipartOverhead multipart边界和表单头的余量
const multipartOverhead = 1 << 20

// TaskHandler 清单任务
type TaskHandler struct {
	tasks    *appchecklist.TaskUseCase
	maxBytes int64
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(tasks *appchecklist.TaskUseCase, cfg *config.Config) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		maxBytes: cfg.Upload.MaxBytes(),
	}
}

// List 清单任务（按order_index）
// @Summary      清单任务列表
// @Tags         清单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "清单ID"
// @Success      200 {object} response.Response{data=[]checklist.TaskInfo}
// @Router       /api/v1/checklists/{id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tasks)
}

// Update 修改任务结果
// @Summary      修改任务
// @Tags         清单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "任务ID"
// @Param        request body dto.UpdateTaskRequest true "任务结果"
// @Success      200 {object} response.Response{data=checklist.TaskInfo}
// @Failure      200 {object} response.Response "40408任务不存在 / 40900 yes_no任务的值只能是yes或no"
// @Router       /api/v1/checklists/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.tasks.Update(c.Request.Context(), appchecklist.UpdateTaskRequest{
		TaskID:    id,
		Completed: req.Completed,
		Value:     req.Value,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// UploadPhoto 上传任务照片
// @Summary      上传任务照片
// @Description  仅photo类型任务，支持jpeg/png/webp
// @Tags         清单
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "任务ID"
// @Param        file formData file true "照片"
// @Success      200 {object} response.Response{data=checklist.TaskInfo}
// @Failure      200 {object} response.Response "40014文件类型不支持 / 40015文件过大"
// @Router       /api/v1/checklists/tasks/{id}/upload [post]
func (h *TaskHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// 1. 限制请求体大小
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, checklist.ErrPhotoTooLarge)
			return
		}
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "缺少上传文件file")
		return
	}
	if fh.Size > h.maxBytes {
		response.Error(c, checklist.ErrPhotoTooLarge)
		return
	}

	// 2. 保存并记录到任务
	f, err := fh.Open()
	if err != nil {
		response.Error(c, apperrors.ErrStorageError.WithCause(err))
		return
	}
	defer f.Close()

	info, err := h.tasks.UploadPhoto(c.Request.Context(), id, f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
