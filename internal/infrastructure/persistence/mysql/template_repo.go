package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/checklist"
)

// templateRepository 清单模板仓储实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(db *gorm.DB) checklist.TemplateRepository {
	return &templateRepository{db: db}
}

// Create 创建模板及其任务
func (r *templateRepository) Create(ctx context.Context, t *checklist.Template) error {
	tasks := make([]TaskTemplateModel, len(t.Tasks))
	for i, task := range t.Tasks {
		tasks[i] = TaskTemplateModel{
			Title:       task.Title,
			Description: task.Description,
			TaskType:    string(task.TaskType),
			Required:    task.Required,
			OrderIndex:  task.OrderIndex,
		}
	}
	model := &ChecklistTemplateModel{
		Name:        t.Name,
		Description: t.Description,
		ApartmentID: t.ApartmentID,
		IsActive:    t.IsActive,
		Tasks:       tasks,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return wrapDBError(err, "创建清单模板失败")
	}

	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	for i := range model.Tasks {
		t.Tasks[i].ID = model.Tasks[i].ID
		t.Tasks[i].TemplateID = model.ID
	}
	return nil
}

// FindByID 根据ID查找模板
func (r *templateRepository) FindByID(ctx context.Context, id uint) (*checklist.Template, error) {
	var model ChecklistTemplateModel
	if err := r.withTasks(ctx).First(&model, id).Error; err != nil {
		return nil, r.translate(err)
	}
	return toTemplateEntity(&model), nil
}

// FindForApartment 查找公寓可用模板
// 1. 公寓专属的启用模板(多个时取最新)
// 2. 否则使用通用模板
// 3. 都没有返回ErrTemplateNotFound
func (r *templateRepository) FindForApartment(ctx context.Context, apartmentID uint) (*checklist.Template, error) {
	var model ChecklistTemplateModel
	err := r.withTasks(ctx).
		Where("apartment_id = ? AND is_active = ?", apartmentID, true).
		Order("id DESC").
		First(&model).Error
	if err == nil {
		return toTemplateEntity(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapDBError(err, "查询清单模板失败")
	}

	err = r.withTasks(ctx).
		Where("apartment_id IS NULL AND is_active = ?", true).
		Order("id ASC").
		First(&model).Error
	if err != nil {
		return nil, r.translate(err)
	}
	return toTemplateEntity(&model), nil
}

// List 查询模板
func (r *templateRepository) List(ctx context.Context, apartmentID *uint) ([]*checklist.Template, error) {
	query := r.withTasks(ctx)
	if apartmentID != nil {
		query = query.Where("apartment_id = ? OR apartment_id IS NULL", *apartmentID)
	}

	var models []ChecklistTemplateModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询清单模板列表失败")
	}

	list := make([]*checklist.Template, len(models))
	for i := range models {
		list[i] = toTemplateEntity(&models[i])
	}
	return list, nil
}

func (r *templateRepository) withTasks(ctx context.Context) *gorm.DB {
	return r.getDB(ctx).Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC, id ASC")
	})
}

func (r *templateRepository) translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return checklist.ErrTemplateNotFound
	}
	return wrapDBError(err, "查询清单模板失败")
}

func (r *templateRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func toTemplateEntity(m *ChecklistTemplateModel) *checklist.Template {
	tasks := make([]checklist.TaskTemplate, len(m.Tasks))
	for i, t := range m.Tasks {
		tasks[i] = checklist.TaskTemplate{
			ID:          t.ID,
			TemplateID:  t.TemplateID,
			Title:       t.Title,
			Description: t.Description,
			TaskType:    checklist.TaskType(t.TaskType),
			Required:    t.Required,
			OrderIndex:  t.OrderIndex,
		}
	}

	return &checklist.Template{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ApartmentID: m.ApartmentID,
		IsActive:    m.IsActive,
		Tasks:       tasks,
		CreatedAt:   m.CreatedAt,
	}
}
