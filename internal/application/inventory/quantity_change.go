package inventory

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/aptcare/pkg/metrics"
	"github.com/xiebiao/aptcare/pkg/tracing"
)

// ApplyQuantityChangeUseCase 库存数量变更用例
// 这是唯一修改物品数量的入口：写台账、判断告警、写入新数量在同一个事务里
type ApplyQuantityChangeUseCase struct {
	itemRepo   inventory.ItemRepository
	ledgerRepo inventory.LedgerRepository
	alertRepo  inventory.AlertRepository
	txManager  *mysql.TxManager
}

// NewApplyQuantityChangeUseCase 创建数量变更用例
func NewApplyQuantityChangeUseCase(
	itemRepo inventory.ItemRepository,
	ledgerRepo inventory.LedgerRepository,
	alertRepo inventory.AlertRepository,
	txManager *mysql.TxManager,
) *ApplyQuantityChangeUseCase {
	return &ApplyQuantityChangeUseCase{
		itemRepo:   itemRepo,
		ledgerRepo: ledgerRepo,
		alertRepo:  alertRepo,
		txManager:  txManager,
	}
}

// QuantityChangeRequest 数量变更请求
type QuantityChangeRequest struct {
	ItemID      uint
	NewQuantity int
	ActorID     *uint  // 操作人，只存储不校验
	Reason      string // 为空时使用默认原因
}

// afterChange 在同一事务内、数量写入之后执行
type afterChange func(ctx context.Context, item *inventory.Item) error

// Execute 执行数量变更
//
// 并发问题：同一物品两个请求同时修改
// 错误实现：先查数量和告警，再分别写入，两个请求都看到"没有未处理告警"，产生重复告警
// 正确实现：
//  1. SELECT ... FOR UPDATE 锁定物品行（同一物品的变更串行执行）
//  2. 追加台账
//  3. 判断阈值，INSERT告警（open_key唯一索引兜底，重复时不插入）
//  4. 写入新数量
//  5. COMMIT释放锁
//
// 死锁/锁超时返回ErrConcurrentUpdate，用最新状态重试一次
func (uc *ApplyQuantityChangeUseCase) Execute(ctx context.Context, req QuantityChangeRequest) (*inventory.ItemSnapshot, error) {
	return uc.run(ctx, req, nil)
}

func (uc *ApplyQuantityChangeUseCase) run(ctx context.Context, req QuantityChangeRequest, after afterChange) (snapshot *inventory.ItemSnapshot, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "inventory", "ApplyQuantityChange")
	span.SetAttributes(
		attribute.Int64("item.id", int64(req.ItemID)),
		attribute.Int("quantity.new", req.NewQuantity),
	)
	defer func() {
		tracing.EndSpan(span, err)
		metrics.RecordQuantityChange(resultLabel(err), time.Since(start))
	}()

	// 1. 事务开始前校验
	if req.NewQuantity < 0 {
		return nil, inventory.ErrInvalidQuantity
	}

	// 2. 执行事务，冲突时重试一次
	snapshot, err = uc.apply(ctx, req, after)
	if mysql.IsRetryable(err) {
		metrics.RecordQuantityChangeRetry()
		zap.L().Warn("库存数量变更冲突，重试",
			zap.Uint("item_id", req.ItemID),
			zap.Error(err),
		)
		snapshot, err = uc.apply(ctx, req, after)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("quantity.old", snapshot.OldQuantity),
		attribute.Bool("alert.created", snapshot.AlertCreated),
	)
	if snapshot.AlertCreated {
		metrics.RecordAlertCreated(string(snapshot.Alert.Kind), string(snapshot.Alert.Severity))
	}
	return snapshot, nil
}

func (uc *ApplyQuantityChangeUseCase) apply(ctx context.Context, req QuantityChangeRequest, after afterChange) (*inventory.ItemSnapshot, error) {
	var snapshot *inventory.ItemSnapshot

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定物品
		item, err := uc.itemRepo.LockByID(txCtx, req.ItemID)
		if err != nil {
			return err
		}
		oldQuantity := item.Quantity

		// 2. 追加台账
		change := inventory.NewQuantityChange(item.ID, req.ActorID, oldQuantity, req.NewQuantity, req.Reason)
		if err := uc.ledgerRepo.Record(txCtx, change); err != nil {
			return err
		}

		// 3. 判断告警（用变更前的物品状态）
		var alert *inventory.Alert
		created := false
		if draft := inventory.Evaluate(*item, req.NewQuantity); draft != nil {
			alert = draft.ToAlert(*item)
			created, err = uc.alertRepo.CreateIfAbsent(txCtx, alert)
			if err != nil {
				return err
			}
			if !created {
				alert = nil
			}
		}

		// 4. 写入新数量
		if err := item.SetQuantity(req.NewQuantity, req.ActorID, change.CreatedAt); err != nil {
			return err
		}
		if err := uc.itemRepo.UpdateQuantity(txCtx, item); err != nil {
			return err
		}

		if after != nil {
			if err := after(txCtx, item); err != nil {
				return err
			}
		}

		snapshot = &inventory.ItemSnapshot{
			Item:         *item,
			OldQuantity:  oldQuantity,
			RecordID:     change.ID,
			Alert:        alert,
			AlertCreated: created,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// resultLabel 指标result标签
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case mysql.IsRetryable(err):
		return "conflict"
	case errors.Is(err, inventory.ErrItemNotFound):
		return "not_found"
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return "invalid"
	default:
		return "error"
	}
}
