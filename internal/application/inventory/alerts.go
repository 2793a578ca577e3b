package inventory

import (
	"context"
	"time"

	"github.com/xiebiao/aptcare/internal/domain/apartment"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/aptcare/pkg/errors"
	"github.com/xiebiao/aptcare/pkg/metrics"
)

// AlertUseCase 告警用例
// 告警只能显式处理，数量回升不会自动处理
type AlertUseCase struct {
	alertRepo     inventory.AlertRepository
	itemRepo      inventory.ItemRepository
	apartmentRepo apartment.Repository
	txManager     *mysql.TxManager
}

// NewAlertUseCase 创建告警用例
func NewAlertUseCase(
	alertRepo inventory.AlertRepository,
	itemRepo inventory.ItemRepository,
	apartmentRepo apartment.Repository,
	txManager *mysql.TxManager,
) *AlertUseCase {
	return &AlertUseCase{
		alertRepo:     alertRepo,
		itemRepo:      itemRepo,
		apartmentRepo: apartmentRepo,
		txManager:     txManager,
	}
}

// CreateAlertRequest 手动创建告警
type CreateAlertRequest struct {
	ApartmentID uint
	ItemID      *uint
	Kind        string
	Severity    string
	Message     string
}

// Create 手动创建告警
// 关联物品时同样受"同物品同类型只有一条未处理告警"约束
func (uc *AlertUseCase) Create(ctx context.Context, req CreateAlertRequest) (*AlertInfo, error) {
	// 1. 枚举校验
	kind, err := inventory.ParseAlertKind(req.Kind)
	if err != nil {
		return nil, err
	}
	severity := inventory.SeverityMedium
	if req.Severity != "" {
		if severity, err = inventory.ParseSeverity(req.Severity); err != nil {
			return nil, err
		}
	}

	alert, err := inventory.NewAlert(req.ApartmentID, req.ItemID, kind, severity, req.Message)
	if err != nil {
		return nil, err
	}

	// 2. 关联校验
	if _, err := uc.apartmentRepo.FindByID(ctx, req.ApartmentID); err != nil {
		return nil, err
	}
	if req.ItemID != nil {
		item, err := uc.itemRepo.FindByID(ctx, *req.ItemID)
		if err != nil {
			return nil, err
		}
		if item.ApartmentID != req.ApartmentID {
			return nil, apperrors.Invalid("物品不属于该公寓")
		}
	}

	// 3. 持久化（唯一索引冲突返回ErrAlertAlreadyOpen）
	if err := uc.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	metrics.RecordAlertCreated(string(alert.Kind), string(alert.Severity))

	info := ToAlertInfo(alert)
	return &info, nil
}

// List 按条件查询告警
func (uc *AlertUseCase) List(ctx context.Context, params inventory.AlertListParams) ([]AlertInfo, error) {
	alerts, err := uc.alertRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return ToAlertInfos(alerts), nil
}

// Resolve 处理告警
// 已处理的告警返回ErrAlertAlreadyResolved，不覆盖第一次的处理时间
func (uc *AlertUseCase) Resolve(ctx context.Context, id uint) (*AlertInfo, error) {
	var alert *inventory.Alert
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		alert, err = uc.alertRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := alert.Resolve(time.Now()); err != nil {
			return err
		}
		return uc.alertRepo.Resolve(txCtx, alert)
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAlertResolved()

	info := ToAlertInfo(alert)
	return &info, nil
}
