package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// categoryRepository 物品分类仓储实现
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) inventory.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create 创建分类
func (r *categoryRepository) Create(ctx context.Context, c *inventory.Category) error {
	model := &CategoryModel{
		Name:         c.Name,
		Description:  c.Description,
		IsConsumable: c.IsConsumable,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return inventory.ErrCategoryDuplicate
		}
		return wrapDBError(err, "创建分类失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找分类
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Category, error) {
	var model CategoryModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.translate(err)
	}
	return toCategoryEntity(&model), nil
}

// FindByName 根据名称查找分类
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*inventory.Category, error) {
	var model CategoryModel
	if err := r.getDB(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, r.translate(err)
	}
	return toCategoryEntity(&model), nil
}

// List 全部分类
func (r *categoryRepository) List(ctx context.Context) ([]*inventory.Category, error) {
	var models []CategoryModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询分类列表失败")
	}
	list := make([]*inventory.Category, len(models))
	for i := range models {
		list[i] = toCategoryEntity(&models[i])
	}
	return list, nil
}

func (r *categoryRepository) translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.ErrCategoryNotFound
	}
	return wrapDBError(err, "查询分类失败")
}

func (r *categoryRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func toCategoryEntity(m *CategoryModel) *inventory.Category {
	return &inventory.Category{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		IsConsumable: m.IsConsumable,
		CreatedAt:    m.CreatedAt,
	}
}
