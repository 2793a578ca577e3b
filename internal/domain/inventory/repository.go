package inventory

import (
	"context"
)

// ItemRepository 库存物品仓储接口
type ItemRepository interface {
	// Create 创建物品
	Create(ctx context.Context, item *Item) error

	// FindByID 根据ID查找物品
	// 如果不存在，返回ErrItemNotFound
	FindByID(ctx context.Context, id uint) (*Item, error)

	// LockByID 加行锁查询物品（SELECT ... FOR UPDATE）
	// 必须在事务中调用
	LockByID(ctx context.Context, id uint) (*Item, error)

	// List 按条件查询物品
	List(ctx context.Context, params ListParams) ([]*Item, error)

	// ListToRestock 查询需要补货的物品，按数量升序、ID升序
	ListToRestock(ctx context.Context, apartmentID *uint) ([]*Item, error)

	// UpdateQuantity 写入新数量及最后更新信息
	UpdateQuantity(ctx context.Context, item *Item) error

	// Update 更新除数量外的字段
	Update(ctx context.Context, item *Item) error

	// Delete 删除物品（软删除）
	Delete(ctx context.Context, id uint) error
}

// LedgerRepository 数量变更台账
// 只提供追加和查询，不提供修改删除
type LedgerRepository interface {
	// Record 追加一条记录
	Record(ctx context.Context, change *QuantityChange) error

	// ListByItem 查询物品的变更历史（按时间倒序）
	ListByItem(ctx context.Context, itemID uint) ([]*QuantityChange, error)
}

// AlertRepository 告警仓储接口
type AlertRepository interface {
	// Create 创建告警
	// 关联物品且同类型已有未处理告警时返回ErrAlertAlreadyOpen
	Create(ctx context.Context, alert *Alert) error

	// CreateIfAbsent 不存在同物品同类型的未处理告警时创建
	// 返回是否实际创建，冲突由数据库唯一约束兜底
	CreateIfAbsent(ctx context.Context, alert *Alert) (bool, error)

	// FindOpen 查找物品指定类型的未处理告警，不存在返回nil
	FindOpen(ctx context.Context, itemID uint, kind AlertKind) (*Alert, error)

	// FindByID 根据ID查找告警
	FindByID(ctx context.Context, id uint) (*Alert, error)

	// CountOpenByItem 统计物品的未处理告警数
	CountOpenByItem(ctx context.Context, itemID uint) (int64, error)

	// List 按条件查询告警（按创建时间倒序）
	List(ctx context.Context, params AlertListParams) ([]*Alert, error)

	// Resolve 标记告警已处理
	Resolve(ctx context.Context, alert *Alert) error
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}
