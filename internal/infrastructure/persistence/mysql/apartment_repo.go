package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
)

// apartmentRepository 公寓仓储实现
type apartmentRepository struct {
	db *gorm.DB
}

// NewApartmentRepository 创建公寓仓储
func NewApartmentRepository(db *gorm.DB) apartment.Repository {
	return &apartmentRepository{db: db}
}

// Create 创建公寓
func (r *apartmentRepository) Create(ctx context.Context, a *apartment.Apartment) error {
	model := &ApartmentModel{
		Name:        a.Name,
		Address:     a.Address,
		Description: a.Description,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apartment.ErrNameDuplicate
		}
		return wrapDBError(err, "创建公寓失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找公寓
func (r *apartmentRepository) FindByID(ctx context.Context, id uint) (*apartment.Apartment, error) {
	var model ApartmentModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apartment.ErrApartmentNotFound
		}
		return nil, wrapDBError(err, "查询公寓失败")
	}
	return toApartmentEntity(&model), nil
}

// List 全部公寓
func (r *apartmentRepository) List(ctx context.Context) ([]*apartment.Apartment, error) {
	var models []ApartmentModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询公寓列表失败")
	}

	list := make([]*apartment.Apartment, len(models))
	for i := range models {
		list[i] = toApartmentEntity(&models[i])
	}
	return list, nil
}

// Update 更新公寓
// 调用方需先确认公寓存在（MySQL未修改任何值时RowsAffected为0）
func (r *apartmentRepository) Update(ctx context.Context, a *apartment.Apartment) error {
	result := r.getDB(ctx).Model(&ApartmentModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"name":        a.Name,
			"address":     a.Address,
			"description": a.Description,
		})

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return apartment.ErrNameDuplicate
		}
		return wrapDBError(result.Error, "更新公寓失败")
	}
	return nil
}

// Delete 删除公寓（软删除）
func (r *apartmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&ApartmentModel{}, id)
	if result.Error != nil {
		return wrapDBError(result.Error, "删除公寓失败")
	}
	if result.RowsAffected == 0 {
		return apartment.ErrApartmentNotFound
	}
	return nil
}

func (r *apartmentRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// toApartmentEntity GORM模型 → 领域实体
func toApartmentEntity(model *ApartmentModel) *apartment.Apartment {
	return &apartment.Apartment{
		ID:          model.ID,
		Name:        model.Name,
		Address:     model.Address,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
