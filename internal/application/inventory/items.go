package inventory

import (
	"context"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
)

// ItemUseCase 库存物品用例
// 数量修改统一委托给ApplyQuantityChangeUseCase
type ItemUseCase struct {
	itemRepo      inventory.ItemRepository
	categoryRepo  inventory.CategoryRepository
	ledgerRepo    inventory.LedgerRepository
	alertRepo     inventory.AlertRepository
	apartmentRepo apartment.Repository
	quantity      *ApplyQuantityChangeUseCase
	txManager     *mysql.TxManager
}

// NewItemUseCase 创建物品用例
func NewItemUseCase(
	itemRepo inventory.ItemRepository,
	categoryRepo inventory.CategoryRepository,
	ledgerRepo inventory.LedgerRepository,
	alertRepo inventory.AlertRepository,
	apartmentRepo apartment.Repository,
	quantity *ApplyQuantityChangeUseCase,
	txManager *mysql.TxManager,
) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:      itemRepo,
		categoryRepo:  categoryRepo,
		ledgerRepo:    ledgerRepo,
		alertRepo:     alertRepo,
		apartmentRepo: apartmentRepo,
		quantity:      quantity,
		txManager:     txManager,
	}
}

// CreateItemRequest 创建物品请求
type CreateItemRequest struct {
	ApartmentID uint
	CategoryID  uint
	Name        string
	Description string
	Quantity    int
	MinQuantity int
	Unit        string
}

// Create 创建物品
// 初始数量不写台账，也不触发告警
func (uc *ItemUseCase) Create(ctx context.Context, req CreateItemRequest) (*ItemInfo, error) {
	// 1. 领域校验
	item, err := inventory.NewItem(req.ApartmentID, req.CategoryID, req.Name, req.Unit, req.Description, req.Quantity, req.MinQuantity)
	if err != nil {
		return nil, err
	}

	// 2. 关联校验
	if _, err := uc.apartmentRepo.FindByID(ctx, req.ApartmentID); err != nil {
		return nil, err
	}
	if _, err := uc.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	info := ToItemInfo(item)
	return &info, nil
}

// Get 查询物品
func (uc *ItemUseCase) Get(ctx context.Context, id uint) (*ItemInfo, error) {
	item, err := uc.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToItemInfo(item)
	return &info, nil
}

// List 按条件查询物品
func (uc *ItemUseCase) List(ctx context.Context, params inventory.ListParams) ([]ItemInfo, error) {
	items, err := uc.itemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return ToItemInfos(items), nil
}

// UpdateItemRequest 修改物品请求（PUT /inventory/items/:id）
type UpdateItemRequest struct {
	ItemID   uint
	Quantity *int // 不为nil时执行数量变更
	Changes  inventory.ItemChanges
	ActorID  *uint
	Reason   string
}

// Update 修改物品
// 1. 所有字段在事务开始前校验
// 2. 带quantity时先执行数量变更（按变更前的阈值判断告警），其余字段在同一事务内写入
// 3. 不带quantity时只做普通更新
func (uc *ItemUseCase) Update(ctx context.Context, req UpdateItemRequest) (*QuantityChangeInfo, error) {
	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, inventory.ErrInvalidQuantity
	}
	if err := req.Changes.Validate(); err != nil {
		return nil, err
	}

	applyChanges := func(ctx context.Context, item *inventory.Item) error {
		if req.Changes.IsEmpty() {
			return nil
		}
		if req.Changes.CategoryID != nil {
			if _, err := uc.categoryRepo.FindByID(ctx, *req.Changes.CategoryID); err != nil {
				return err
			}
		}
		if err := item.ApplyChanges(req.Changes); err != nil {
			return err
		}
		return uc.itemRepo.Update(ctx, item)
	}

	if req.Quantity != nil {
		snapshot, err := uc.quantity.run(ctx, QuantityChangeRequest{
			ItemID:      req.ItemID,
			NewQuantity: *req.Quantity,
			ActorID:     req.ActorID,
			Reason:      req.Reason,
		}, applyChanges)
		if err != nil {
			return nil, err
		}
		return toQuantityChangeInfo(snapshot), nil
	}

	var item *inventory.Item
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		item, err = uc.itemRepo.LockByID(txCtx, req.ItemID)
		if err != nil {
			return err
		}
		return applyChanges(txCtx, item)
	})
	if err != nil {
		return nil, err
	}
	return &QuantityChangeInfo{Item: ToItemInfo(item), OldQuantity: item.Quantity}, nil
}

// Delete 删除物品
// 存在未处理告警时拒绝删除，台账保留
func (uc *ItemUseCase) Delete(ctx context.Context, id uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.itemRepo.LockByID(txCtx, id); err != nil {
			return err
		}
		open, err := uc.alertRepo.CountOpenByItem(txCtx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return inventory.ErrItemHasOpenAlerts
		}
		return uc.itemRepo.Delete(txCtx, id)
	})
}

// History 物品变更历史（按时间倒序）
func (uc *ItemUseCase) History(ctx context.Context, itemID uint) ([]HistoryInfo, error) {
	if _, err := uc.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	records, err := uc.ledgerRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	list := make([]HistoryInfo, len(records))
	for i, r := range records {
		list[i] = HistoryInfo{
			ID:          r.ID,
			ItemID:      r.ItemID,
			UserID:      r.ActorID,
			OldQuantity: r.OldQuantity,
			NewQuantity: r.NewQuantity,
			Reason:      r.Reason,
			CreatedAt:   r.CreatedAt,
		}
	}
	return list, nil
}
