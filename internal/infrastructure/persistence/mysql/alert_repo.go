package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/aptcare/internal/domain/inventory"
)

// alertRepository 告警仓储实现
// 设计说明:
// 1. open_key唯一索引保证同一物品同一类型最多一条未处理告警
// 2. CreateIfAbsent使用 INSERT ... ON CONFLICT DO NOTHING
//    (MySQL为 ON DUPLICATE KEY UPDATE id=id),并发插入时不会报错也不会重复
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository 创建告警仓储
func NewAlertRepository(db *gorm.DB) inventory.AlertRepository {
	return &alertRepository{db: db}
}

// Create 创建告警
func (r *alertRepository) Create(ctx context.Context, a *inventory.Alert) error {
	model := toAlertModel(a)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return inventory.ErrAlertAlreadyOpen
		}
		return wrapDBError(err, "创建告警失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	return nil
}

// CreateIfAbsent 不存在同物品同类型未处理告警时创建
func (r *alertRepository) CreateIfAbsent(ctx context.Context, a *inventory.Alert) (bool, error) {
	model := toAlertModel(a)

	result := r.getDB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if result.Error != nil {
		return false, wrapDBError(result.Error, "创建告警失败")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	return true, nil
}

// FindOpen 查找物品的未处理告警
func (r *alertRepository) FindOpen(ctx context.Context, itemID uint, kind inventory.AlertKind) (*inventory.Alert, error) {
	var model AlertModel
	err := r.getDB(ctx).
		Where("open_key = ?", inventory.OpenKey(itemID, kind)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapDBError(err, "查询告警失败")
	}
	return toAlertEntity(&model), nil
}

// FindByID 根据ID查找告警
func (r *alertRepository) FindByID(ctx context.Context, id uint) (*inventory.Alert, error) {
	var model AlertModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrAlertNotFound
		}
		return nil, wrapDBError(err, "查询告警失败")
	}
	return toAlertEntity(&model), nil
}

// CountOpenByItem 统计物品的未处理告警
func (r *alertRepository) CountOpenByItem(ctx context.Context, itemID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&AlertModel{}).
		Where("item_id = ? AND resolved = ?", itemID, false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDBError(err, "统计告警失败")
	}
	return count, nil
}

// List 按条件查询告警（按创建时间倒序）
func (r *alertRepository) List(ctx context.Context, params inventory.AlertListParams) ([]*inventory.Alert, error) {
	query := r.getDB(ctx).Model(&AlertModel{})
	if params.ApartmentID != nil {
		query = query.Where("apartment_id = ?", *params.ApartmentID)
	}
	if params.Resolved != nil {
		query = query.Where("resolved = ?", *params.Resolved)
	}
	query = query.Order("created_at DESC, id DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var models []AlertModel
	if err := query.Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询告警列表失败")
	}

	alerts := make([]*inventory.Alert, len(models))
	for i := range models {
		alerts[i] = toAlertEntity(&models[i])
	}
	return alerts, nil
}

// Resolve 标记告警已处理,同时释放open_key
// 条件更新 resolved = false,重复处理不会覆盖第一次的处理时间
func (r *alertRepository) Resolve(ctx context.Context, a *inventory.Alert) error {
	result := r.getDB(ctx).Model(&AlertModel{}).
		Where("id = ? AND resolved = ?", a.ID, false).
		Updates(map[string]interface{}{
			"resolved":    true,
			"resolved_at": a.ResolvedAt,
			"open_key":    gorm.Expr("NULL"),
		})
	if result.Error != nil {
		return wrapDBError(result.Error, "处理告警失败")
	}
	if result.RowsAffected == 0 {
		return inventory.ErrAlertAlreadyResolved
	}
	return nil
}

func (r *alertRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toAlertModel(a *inventory.Alert) *AlertModel {
	return &AlertModel{
		ID:          a.ID,
		ApartmentID: a.ApartmentID,
		ItemID:      a.ItemID,
		Kind:        string(a.Kind),
		Message:     a.Message,
		Severity:    string(a.Severity),
		Resolved:    a.Resolved,
		OpenKey:     stringPtr(a.OpenKey()),
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
	}
}

func toAlertEntity(m *AlertModel) *inventory.Alert {
	return &inventory.Alert{
		ID:          m.ID,
		ApartmentID: m.ApartmentID,
		ItemID:      m.ItemID,
		Kind:        inventory.AlertKind(m.Kind),
		Message:     m.Message,
		Severity:    inventory.Severity(m.Severity),
		Resolved:    m.Resolved,
		CreatedAt:   m.CreatedAt,
		ResolvedAt:  m.ResolvedAt,
	}
}
