package inventory

import "time"

// QuantityChange 数量变更台账记录
// 只追加、不修改、不删除
type QuantityChange struct {
	ID          uint
	ItemID      uint
	ActorID     *uint // 操作人，仅存储不校验
	OldQuantity int
	NewQuantity int
	Reason      string
	CreatedAt   time.Time
}

// DefaultChangeReason 未填写原因时的默认值
const DefaultChangeReason = "手动更新"

// NewQuantityChange 创建台账记录
func NewQuantityChange(itemID uint, actorID *uint, oldQty, newQty int, reason string) *QuantityChange {
	if reason == "" {
		reason = DefaultChangeReason
	}
	return &QuantityChange{
		ItemID:      itemID,
		ActorID:     actorID,
		OldQuantity: oldQty,
		NewQuantity: newQty,
		Reason:      reason,
		CreatedAt:   time.Now(),
	}
}
