package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// itemRepository 库存物品仓储实现
// 设计说明:
// 1. 实现domain/inventory/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 所有方法都通过getDB(ctx)参与调用方事务
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建库存物品仓储
func NewItemRepository(db *gorm.DB) inventory.ItemRepository {
	return &itemRepository{db: db}
}

// Create 创建物品
func (r *itemRepository) Create(ctx context.Context, item *inventory.Item) error {
	model := toItemModel(item)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return wrapDBError(err, "创建库存物品失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找物品
func (r *itemRepository) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	var model InventoryItemModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		return nil, r.translate(err, "查询库存物品失败")
	}
	return toItemEntity(&model), nil
}

// LockByID 悲观锁查询物品
// SELECT * FROM inventory_items WHERE id = ? FOR UPDATE
// 必须使用getDB(ctx)从context获取事务DB,否则锁在语句结束后立即释放
// SQLite方言会忽略FOR UPDATE,由单连接保证事务串行
func (r *itemRepository) LockByID(ctx context.Context, id uint) (*inventory.Item, error) {
	var model InventoryItemModel
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		return nil, r.translate(err, "锁定库存物品失败")
	}
	return toItemEntity(&model), nil
}

// List 按条件查询物品
func (r *itemRepository) List(ctx context.Context, params inventory.ListParams) ([]*inventory.Item, error) {
	query := r.getDB(ctx).Model(&InventoryItemModel{})

	if params.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *params.ApartmentID)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.LowStock {
		query = query.Where("quantity <= min_quantity")
	}

	var models []InventoryItemModel
	if err := query.Order("apartment_id ASC, id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询库存物品列表失败")
	}
	return toItemEntities(models), nil
}

// ListToRestock 需要补货的物品
// 按数量升序,数量相同按ID升序(保证结果稳定)
func (r *itemRepository) ListToRestock(ctx context.Context, apartmentID *uint) ([]*inventory.Item, error) {
	query := r.getDB(ctx).Model(&InventoryItemModel{}).Where("quantity <= min_quantity")
	if apartmentID != nil {
		query = query.Where("apartment_id = ?", *apartmentID)
	}

	var models []InventoryItemModel
	if err := query.Order("quantity ASC, id ASC").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询待补货物品失败")
	}
	return toItemEntities(models), nil
}

// UpdateQuantity 写入新数量
// 只更新数量相关字段,其他字段不受影响
func (r *itemRepository) UpdateQuantity(ctx context.Context, item *inventory.Item) error {
	err := r.getDB(ctx).Model(&InventoryItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":        item.Quantity,
			"last_updated":    item.LastUpdated,
			"last_updated_by": item.LastUpdatedBy,
		}).Error
	if err != nil {
		return wrapDBError(err, "更新库存数量失败")
	}
	return nil
}

// Update 更新除数量外的字段
func (r *itemRepository) Update(ctx context.Context, item *inventory.Item) error {
	err := r.getDB(ctx).Model(&InventoryItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":         item.Name,
			"description":  item.Description,
			"min_quantity": item.MinQuantity,
			"unit":         item.Unit,
			"category_id":  item.CategoryID,
		}).Error
	if err != nil {
		return wrapDBError(err, "更新库存物品失败")
	}
	return nil
}

// Delete 删除物品(软删除)
func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&InventoryItemModel{}, id)
	if result.Error != nil {
		return wrapDBError(result.Error, "删除库存物品失败")
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) translate(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventory.ErrItemNotFound
	}
	return wrapDBError(err, message)
}

func (r *itemRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toItemModel(item *inventory.Item) *InventoryItemModel {
	return &InventoryItemModel{
		ID:            item.ID,
		ApartmentID:   item.ApartmentID,
		CategoryID:    item.CategoryID,
		Name:          item.Name,
		Description:   item.Description,
		Quantity:      item.Quantity,
		MinQuantity:   item.MinQuantity,
		Unit:          item.Unit,
		LastUpdated:   item.LastUpdated,
		LastUpdatedBy: item.LastUpdatedBy,
	}
}

// toItemEntity GORM模型 → 领域实体
func toItemEntity(model *InventoryItemModel) *inventory.Item {
	return &inventory.Item{
		ID:            model.ID,
		ApartmentID:   model.ApartmentID,
		CategoryID:    model.CategoryID,
		Name:          model.Name,
		Description:   model.Description,
		Quantity:      model.Quantity,
		MinQuantity:   model.MinQuantity,
		Unit:          model.Unit,
		LastUpdated:   model.LastUpdated,
		LastUpdatedBy: model.LastUpdatedBy,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func toItemEntities(models []InventoryItemModel) []*inventory.Item {
	items := make([]*inventory.Item, len(models))
	for i := range models {
		items[i] = toItemEntity(&models[i])
	}
	return items
}
