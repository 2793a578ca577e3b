package checklist

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/pkg/metrics"
)

// PhotoStorage 照片存储
type PhotoStorage interface {
	// Save 保存照片并返回访问路径，校验类型和大小
	Save(ctx context.Context, r io.Reader) (string, error)
	// Remove 删除照片
	Remove(ctx context.Context, path string) error
}

// TaskUseCase 清单任务用例
type TaskUseCase struct {
	repo      checklist.Repository
	storage   PhotoStorage
	txManager *mysql.TxManager
}

// NewTaskUseCase 创建任务用例
func NewTaskUseCase(repo checklist.Repository, storage PhotoStorage, txManager *mysql.TxManager) *TaskUseCase {
	return &TaskUseCase{
		repo:      repo,
		storage:   storage,
		txManager: txManager,
	}
}

// List 清单的任务（按order_index升序）
func (uc *TaskUseCase) List(ctx context.Context, checklistID uint) ([]TaskInfo, error) {
	if _, err := uc.repo.FindByID(ctx, checklistID, false); err != nil {
		return nil, err
	}
	tasks, err := uc.repo.ListTasks(ctx, checklistID)
	if err != nil {
		return nil, err
	}
	return ToTaskInfos(tasks), nil
}

// UpdateTaskRequest 修改任务结果请求
type UpdateTaskRequest struct {
	TaskID    uint
	Completed *bool
	Value     *string
	Notes     *string
}

// Update 修改任务结果
func (uc *TaskUseCase) Update(ctx context.Context, req UpdateTaskRequest) (*TaskInfo, error) {
	var task *checklist.TaskResponse
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		task, err = uc.repo.LockTask(txCtx, req.TaskID)
		if err != nil {
			return err
		}
		if err := task.Update(req.Completed, req.Value, req.Notes); err != nil {
			return err
		}
		return uc.repo.UpdateTask(txCtx, task)
	})
	if err != nil {
		return nil, err
	}

	info := ToTaskInfo(task)
	return &info, nil
}

// UploadPhoto 上传任务照片
// 1. 只有拍照任务可以上传
// 2. 先落盘再写库，写库失败时删除文件
func (uc *TaskUseCase) UploadPhoto(ctx context.Context, taskID uint, r io.Reader) (*TaskInfo, error) {
	task, err := uc.repo.FindTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.TaskType != checklist.TaskPhoto {
		return nil, checklist.ErrPhotoNotAllowed
	}

	photoPath, err := uc.storage.Save(ctx, r)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		task, err = uc.repo.LockTask(txCtx, taskID)
		if err != nil {
			return err
		}
		task.AddPhoto(photoPath)
		return uc.repo.UpdateTask(txCtx, task)
	})
	if err != nil {
		if rmErr := uc.storage.Remove(ctx, photoPath); rmErr != nil {
			zap.L().Warn("回收照片失败", zap.String("path", photoPath), zap.Error(rmErr))
		}
		return nil, err
	}
	metrics.RecordPhotoUploaded()

	info := ToTaskInfo(task)
	return &info, nil
}
