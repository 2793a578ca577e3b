package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
)

// checklistRepository 保洁清单仓储实现
// 设计说明:
// 1. 清单与任务结果一起创建(GORM关联写入,同一事务)
// 2. 任务结果按order_index排序加载
type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository 创建清单仓储
func NewChecklistRepository(db *gorm.DB) checklist.Repository {
	return &checklistRepository{db: db}
}

// Create 创建清单及其任务结果
func (r *checklistRepository) Create(ctx context.Context, c *checklist.Checklist) error {
	model := toChecklistModel(c)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return wrapDBError(err, "创建清单失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	for i := range model.Tasks {
		c.Tasks[i].ID = model.Tasks[i].ID
		c.Tasks[i].ChecklistID = model.ID
	}
	return nil
}

// FindByID 根据ID查找清单
func (r *checklistRepository) FindByID(ctx context.Context, id uint, withTasks bool) (*checklist.Checklist, error) {
	query := r.getDB(ctx)
	if withTasks {
		query = query.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, id ASC")
		})
	}

	var model ChecklistModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checklist.ErrChecklistNotFound
		}
		return nil, wrapDBError(err, "查询清单失败")
	}
	return toChecklistEntity(&model), nil
}

// List 分页查询清单
func (r *checklistRepository) List(ctx context.Context, params checklist.ListParams) ([]*checklist.Checklist, int64, error) {
	query := r.getDB(ctx).Model(&ChecklistModel{})

	if params.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *params.ApartmentID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}
	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("date <= ?", *params.To)
	}

	// 1. 统计总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapDBError(err, "统计清单失败")
	}

	// 2. 分页查询
	query = query.Order("date DESC, id DESC")
	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * params.PageSize).Limit(params.PageSize)
	}

	var models []ChecklistModel
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, wrapDBError(err, "查询清单列表失败")
	}

	list := make([]*checklist.Checklist, len(models))
	for i := range models {
		list[i] = toChecklistEntity(&models[i])
	}
	return list, total, nil
}

// Update 更新清单状态与备注
func (r *checklistRepository) Update(ctx context.Context, c *checklist.Checklist) error {
	err := r.getDB(ctx).Model(&ChecklistModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"completed":    c.Completed,
			"completed_at": c.CompletedAt,
			"notes":        c.Notes,
		}).Error
	if err != nil {
		return wrapDBError(err, "更新清单失败")
	}
	return nil
}

// Count 统计公寓清单数
func (r *checklistRepository) Count(ctx context.Context, apartmentID uint, completed *bool) (int64, error) {
	query := r.getDB(ctx).Model(&ChecklistModel{}).Where("apartment_id = ?", apartmentID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapDBError(err, "统计清单失败")
	}
	return count, nil
}

// ListTasks 查询清单任务
func (r *checklistRepository) ListTasks(ctx context.Context, checklistID uint) ([]checklist.TaskResponse, error) {
	var models []TaskResponseModel
	err := r.getDB(ctx).
		Where("checklist_id = ?", checklistID).
		Order("order_index ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, wrapDBError(err, "查询清单任务失败")
	}

	tasks := make([]checklist.TaskResponse, len(models))
	for i := range models {
		tasks[i] = toTaskResponseEntity(&models[i])
	}
	return tasks, nil
}

// FindTask 根据ID查找任务结果
func (r *checklistRepository) FindTask(ctx context.Context, id uint) (*checklist.TaskResponse, error) {
	var model TaskResponseModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checklist.ErrTaskNotFound
		}
		return nil, wrapDBError(err, "查询任务失败")
	}
	task := toTaskResponseEntity(&model)
	return &task, nil
}

// LockTask 加行锁查询任务结果（追加照片时使用）
func (r *checklistRepository) LockTask(ctx context.Context, id uint) (*checklist.TaskResponse, error) {
	var model TaskResponseModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, checklist.ErrTaskNotFound
		}
		return nil, wrapDBError(err, "查询任务失败")
	}
	task := toTaskResponseEntity(&model)
	return &task, nil
}

// UpdateTask 更新任务结果
func (r *checklistRepository) UpdateTask(ctx context.Context, task *checklist.TaskResponse) error {
	err := r.getDB(ctx).Model(&TaskResponseModel{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"completed":   task.Completed,
			"value":       task.Value,
			"notes":       task.Notes,
			"photo_paths": datatypesSlice(task.PhotoPaths),
			"updated_at":  task.UpdatedAt,
		}).Error
	if err != nil {
		return wrapDBError(err, "更新任务失败")
	}
	return nil
}

func (r *checklistRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toChecklistModel(c *checklist.Checklist) *ChecklistModel {
	tasks := make([]TaskResponseModel, len(c.Tasks))
	for i, t := range c.Tasks {
		tasks[i] = TaskResponseModel{
			TaskTemplateID: t.TaskTemplateID,
			Title:          t.Title,
			TaskType:       string(t.TaskType),
			Required:       t.Required,
			OrderIndex:     t.OrderIndex,
			Completed:      t.Completed,
			Value:          t.Value,
			Notes:          t.Notes,
			PhotoPaths:     datatypesSlice(t.PhotoPaths),
		}
	}

	return &ChecklistModel{
		ID:          c.ID,
		ApartmentID: c.ApartmentID,
		UserID:      c.UserID,
		TemplateID:  c.TemplateID,
		Date:        c.Date,
		Completed:   c.Completed,
		CompletedAt: c.CompletedAt,
		Notes:       c.Notes,
		Tasks:       tasks,
	}
}

func toChecklistEntity(m *ChecklistModel) *checklist.Checklist {
	var tasks []checklist.TaskResponse
	if m.Tasks != nil {
		tasks = make([]checklist.TaskResponse, len(m.Tasks))
		for i := range m.Tasks {
			tasks[i] = toTaskResponseEntity(&m.Tasks[i])
		}
	}

	return &checklist.Checklist{
		ID:          m.ID,
		ApartmentID: m.ApartmentID,
		UserID:      m.UserID,
		TemplateID:  m.TemplateID,
		Date:        m.Date,
		Completed:   m.Completed,
		CompletedAt: m.CompletedAt,
		Notes:       m.Notes,
		Tasks:       tasks,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toTaskResponseEntity(m *TaskResponseModel) checklist.TaskResponse {
	photos := make([]string, len(m.PhotoPaths))
	copy(photos, m.PhotoPaths)

	return checklist.TaskResponse{
		ID:             m.ID,
		ChecklistID:    m.ChecklistID,
		TaskTemplateID: m.TaskTemplateID,
		Title:          m.Title,
		TaskType:       checklist.TaskType(m.TaskType),
		Required:       m.Required,
		OrderIndex:     m.OrderIndex,
		Completed:      m.Completed,
		Value:          m.Value,
		Notes:          m.Notes,
		PhotoPaths:     photos,
		UpdatedAt:      m.UpdatedAt,
	}
}
