package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// ledgerRepository 数量变更台账实现
// 只有INSERT和SELECT,没有UPDATE/DELETE
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建台账仓储
func NewLedgerRepository(db *gorm.DB) inventory.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Record 追加一条变更记录
func (r *ledgerRepository) Record(ctx context.Context, change *inventory.QuantityChange) error {
	model := &InventoryHistoryModel{
		ItemID:      change.ItemID,
		ActorID:     change.ActorID,
		OldQuantity: change.OldQuantity,
		NewQuantity: change.NewQuantity,
		Reason:      change.Reason,
		CreatedAt:   change.CreatedAt,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return wrapDBError(err, "写入库存台账失败")
	}

	change.ID = model.ID
	change.CreatedAt = model.CreatedAt
	return nil
}

// ListByItem 物品变更历史（按时间倒序）
// 同一物品的变更在行锁下串行写入，自增ID与写入顺序一致
func (r *ledgerRepository) ListByItem(ctx context.Context, itemID uint) ([]*inventory.QuantityChange, error) {
	var models []InventoryHistoryModel
	err := r.getDB(ctx).
		Where("item_id = ?", itemID).
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, wrapDBError(err, "查询库存台账失败")
	}

	records := make([]*inventory.QuantityChange, len(models))
	for i, m := range models {
		records[i] = &inventory.QuantityChange{
			ID:          m.ID,
			ItemID:      m.ItemID,
			ActorID:     m.ActorID,
			OldQuantity: m.OldQuantity,
			NewQuantity: m.NewQuantity,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt,
		}
	}
	return records, nil
}

func (r *ledgerRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
